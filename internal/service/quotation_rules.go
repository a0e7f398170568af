package service

import (
	"strings"
	"time"

	"aman-backend/internal/models"
	"aman-backend/pkg/validator"
)

const quotationDateLayout = "2006-01-02"

// BudgetBand is one of the fixed budget ranges the quote form offers.
type BudgetBand struct {
	Value string `json:"value"`
	From  int    `json:"from"`
	To    int    `json:"to"`
}

var budgetBands = []BudgetBand{
	{Value: "under-5k", From: 0, To: 5000},
	{Value: "5k-10k", From: 5000, To: 10000},
	{Value: "10k-25k", From: 10000, To: 25000},
	{Value: "25k-50k", From: 25000, To: 50000},
	{Value: "over-50k", From: 50000, To: 0},
}

func BudgetBands() []BudgetBand {
	out := make([]BudgetBand, len(budgetBands))
	copy(out, budgetBands)
	return out
}

func budgetBand(value string) (BudgetBand, bool) {
	for _, band := range budgetBands {
		if band.Value == value {
			return band, true
		}
	}
	return BudgetBand{}, false
}

// ValidateQuotation checks a raw quote submission against the full rule set.
// Every rule is evaluated; violations are collected per field instead of
// stopping at the first one. An empty map means the form is valid.
func ValidateQuotation(form models.QuotationForm) map[string]string {
	errs := map[string]string{}

	if len(strings.TrimSpace(form.FullName)) < 3 {
		errs["full_name"] = "full name must be at least 3 characters"
	}
	if len(strings.TrimSpace(form.Phone)) < 6 {
		errs["phone"] = "phone must be at least 6 characters"
	}
	if strings.TrimSpace(form.ServiceID) == "" {
		errs["service_id"] = "service is required"
	}

	if email := strings.TrimSpace(form.Email); email != "" && !validator.ValidateEmail(email) {
		errs["email"] = "email address is not valid"
	}
	if company := strings.TrimSpace(form.CompanyName); company != "" && len(company) < 2 {
		errs["company_name"] = "company name must be at least 2 characters"
	}
	if desc := strings.TrimSpace(form.ProjectDescription); desc != "" && len(desc) < 10 {
		errs["project_description"] = "project description must be at least 10 characters"
	}
	if budget := strings.TrimSpace(form.BudgetRange); budget != "" {
		if _, ok := budgetBand(budget); !ok {
			errs["budget_range"] = "budget range is not one of the offered bands"
		}
	}

	var start, end *time.Time
	if raw := strings.TrimSpace(form.StartDate); raw != "" {
		parsed, err := time.Parse(quotationDateLayout, raw)
		if err != nil {
			errs["start_date"] = "start date is not a valid date"
		} else {
			start = &parsed
		}
	}
	if raw := strings.TrimSpace(form.EndDate); raw != "" {
		parsed, err := time.Parse(quotationDateLayout, raw)
		if err != nil {
			errs["end_date"] = "end date is not a valid date"
		} else {
			end = &parsed
		}
	}
	if start != nil && end != nil && end.Before(*start) {
		errs["end_date"] = "end date must not be before the start date"
	}

	return errs
}
