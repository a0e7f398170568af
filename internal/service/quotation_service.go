package service

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"aman-backend/internal/models"
	"aman-backend/internal/repository"
	"aman-backend/pkg/validator"
)

type QuotationService struct {
	repo     repository.QuotationRepository
	services repository.ServiceRepository
}

func NewQuotationService(repo repository.QuotationRepository, services repository.ServiceRepository) *QuotationService {
	if repo == nil {
		return nil
	}
	return &QuotationService{repo: repo, services: services}
}

// Submit validates the raw form and creates the quotation request. Field
// violations come back in the map with a nil error; only infrastructure
// failures populate the error. Optional fields left empty are simply not set
// on the stored record.
func (s *QuotationService) Submit(form models.QuotationForm) (*models.QuotationRequest, map[string]string, error) {
	errs := ValidateQuotation(form)

	var serviceID uint
	if raw := strings.TrimSpace(form.ServiceID); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			errs["service_id"] = "service reference is not valid"
		} else if s.services != nil {
			if _, lookupErr := s.services.GetByID(uint(parsed)); lookupErr != nil {
				if errors.Is(lookupErr, gorm.ErrRecordNotFound) {
					errs["service_id"] = "service does not exist"
				} else {
					return nil, nil, lookupErr
				}
			} else {
				serviceID = uint(parsed)
			}
		} else {
			serviceID = uint(parsed)
		}
	}

	if len(errs) > 0 {
		return nil, errs, nil
	}

	req := &models.QuotationRequest{
		FullName:  strings.TrimSpace(form.FullName),
		Phone:     strings.TrimSpace(form.Phone),
		ServiceID: serviceID,
		Status:    models.QuotationNew,
	}

	if email := strings.TrimSpace(form.Email); email != "" {
		req.Email = email
	}
	if company := strings.TrimSpace(form.CompanyName); company != "" {
		req.CompanyName = company
	}
	if desc := strings.TrimSpace(form.ProjectDescription); desc != "" {
		req.ProjectDescription = validator.SanitizeString(desc)
	}
	if band, ok := budgetBand(strings.TrimSpace(form.BudgetRange)); ok {
		req.BudgetFrom = band.From
		req.BudgetTo = band.To
	}
	if duration := strings.TrimSpace(form.ExpectedDuration); duration != "" {
		req.ExpectedDuration = duration
	}
	if raw := strings.TrimSpace(form.StartDate); raw != "" {
		parsed, _ := time.Parse(quotationDateLayout, raw)
		req.StartDate = &parsed
	}
	if raw := strings.TrimSpace(form.EndDate); raw != "" {
		parsed, _ := time.Parse(quotationDateLayout, raw)
		req.EndDate = &parsed
	}

	if err := s.repo.Create(req); err != nil {
		return nil, nil, err
	}

	return req, nil, nil
}

func (s *QuotationService) List(status string) ([]models.QuotationRequest, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return s.repo.List()
	}
	return s.repo.ListByStatus(models.QuotationStatus(status))
}

func (s *QuotationService) GetByID(id uint) (*models.QuotationRequest, error) {
	return s.repo.GetByID(id)
}

func (s *QuotationService) UpdateStatus(id uint, status string) (*models.QuotationRequest, error) {
	switch models.QuotationStatus(status) {
	case models.QuotationNew, models.QuotationReviewed, models.QuotationClosed:
	default:
		return nil, errors.New("unknown quotation status")
	}

	req, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	req.Status = models.QuotationStatus(status)
	if err := s.repo.Update(req); err != nil {
		return nil, err
	}
	return req, nil
}
