package service

import (
	"testing"

	"gorm.io/gorm"

	"aman-backend/internal/models"
	"aman-backend/internal/repository"
)

type memoryQuotationRepository struct {
	created []models.QuotationRequest
	nextID  uint
}

func (m *memoryQuotationRepository) Create(req *models.QuotationRequest) error {
	m.nextID++
	req.ID = m.nextID
	m.created = append(m.created, *req)
	return nil
}

func (m *memoryQuotationRepository) List() ([]models.QuotationRequest, error) {
	return m.created, nil
}

func (m *memoryQuotationRepository) ListByStatus(status models.QuotationStatus) ([]models.QuotationRequest, error) {
	var out []models.QuotationRequest
	for _, req := range m.created {
		if req.Status == status {
			out = append(out, req)
		}
	}
	return out, nil
}

func (m *memoryQuotationRepository) GetByID(id uint) (*models.QuotationRequest, error) {
	for i := range m.created {
		if m.created[i].ID == id {
			return &m.created[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryQuotationRepository) Update(req *models.QuotationRequest) error {
	for i := range m.created {
		if m.created[i].ID == req.ID {
			m.created[i] = *req
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

var _ repository.QuotationRepository = (*memoryQuotationRepository)(nil)

type memoryServiceRepository struct {
	services map[uint]models.Service
}

func (m *memoryServiceRepository) List(activeOnly bool) ([]models.Service, error) {
	var out []models.Service
	for _, svc := range m.services {
		if !activeOnly || svc.Active {
			out = append(out, svc)
		}
	}
	return out, nil
}

func (m *memoryServiceRepository) GetBySlug(slug string) (*models.Service, error) {
	for _, svc := range m.services {
		if svc.Slug == slug {
			copied := svc
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryServiceRepository) GetByID(id uint) (*models.Service, error) {
	if svc, ok := m.services[id]; ok {
		return &svc, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryServiceRepository) Create(service *models.Service) error {
	if m.services == nil {
		m.services = map[uint]models.Service{}
	}
	service.ID = uint(len(m.services) + 1)
	m.services[service.ID] = *service
	return nil
}

func (m *memoryServiceRepository) Update(service *models.Service) error {
	m.services[service.ID] = *service
	return nil
}

func (m *memoryServiceRepository) Delete(id uint) error {
	delete(m.services, id)
	return nil
}

func (m *memoryServiceRepository) NextOrder() (int, error) {
	return len(m.services) + 1, nil
}

var _ repository.ServiceRepository = (*memoryServiceRepository)(nil)

func newQuotationFixture() (*QuotationService, *memoryQuotationRepository) {
	repo := &memoryQuotationRepository{}
	services := &memoryServiceRepository{services: map[uint]models.Service{
		1: {ID: 1, Slug: "pentest", Active: true},
	}}
	return NewQuotationService(repo, services), repo
}

func TestQuotationSubmit_RejectsUnknownService(t *testing.T) {
	service, repo := newQuotationFixture()

	form := validQuotationForm()
	form.ServiceID = "99"

	created, errs, err := service.Submit(form)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if created != nil {
		t.Fatal("nothing should be created for an unknown service")
	}
	if _, ok := errs["service_id"]; !ok {
		t.Fatalf("expected service_id error, got %v", errs)
	}
	if len(repo.created) != 0 {
		t.Fatal("no partial submission may occur")
	}
}

func TestQuotationSubmit_OmitsEmptyOptionals(t *testing.T) {
	service, repo := newQuotationFixture()

	created, errs, err := service.Submit(validQuotationForm())
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if len(errs) != 0 {
		t.Fatalf("expected valid form, got %v", errs)
	}
	if created == nil || created.ID == 0 {
		t.Fatal("expected a created quotation")
	}
	if created.Email != "" || created.CompanyName != "" || created.StartDate != nil || created.EndDate != nil {
		t.Fatalf("empty optionals must stay unset: %+v", created)
	}
	if created.Status != models.QuotationNew {
		t.Fatalf("new quotations start in status new, got %s", created.Status)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected exactly one stored request, got %d", len(repo.created))
	}
}

func TestQuotationSubmit_MapsBudgetBandAndSanitizesDescription(t *testing.T) {
	service, _ := newQuotationFixture()

	form := validQuotationForm()
	form.BudgetRange = "5k-10k"
	form.ProjectDescription = "We need a <script>alert(1)</script> full assessment of our perimeter."

	created, errs, err := service.Submit(form)
	if err != nil || len(errs) != 0 {
		t.Fatalf("Submit failed: err=%v errs=%v", err, errs)
	}
	if created.BudgetFrom != 5000 || created.BudgetTo != 10000 {
		t.Fatalf("budget band not mapped: %d..%d", created.BudgetFrom, created.BudgetTo)
	}
	if created.ProjectDescription == form.ProjectDescription {
		t.Fatal("description must be sanitized")
	}
}

func TestQuotationUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	service, _ := newQuotationFixture()

	created, _, err := service.Submit(validQuotationForm())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if _, err := service.UpdateStatus(created.ID, "archived"); err == nil {
		t.Fatal("expected error for unknown status")
	}
	updated, err := service.UpdateStatus(created.ID, "reviewed")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != models.QuotationReviewed {
		t.Fatalf("expected reviewed, got %s", updated.Status)
	}
}
