package repository

import (
	"aman-backend/internal/models"

	"gorm.io/gorm"
)

type QuotationRepository interface {
	Create(req *models.QuotationRequest) error
	List() ([]models.QuotationRequest, error)
	ListByStatus(status models.QuotationStatus) ([]models.QuotationRequest, error)
	GetByID(id uint) (*models.QuotationRequest, error)
	Update(req *models.QuotationRequest) error
}

type quotationRepository struct {
	db *gorm.DB
}

func NewQuotationRepository(db *gorm.DB) QuotationRepository {
	return &quotationRepository{db: db}
}

func (r *quotationRepository) Create(req *models.QuotationRequest) error {
	return r.db.Create(req).Error
}

func (r *quotationRepository) List() ([]models.QuotationRequest, error) {
	var reqs []models.QuotationRequest
	err := r.db.Order("id DESC").Find(&reqs).Error
	return reqs, err
}

func (r *quotationRepository) ListByStatus(status models.QuotationStatus) ([]models.QuotationRequest, error) {
	var reqs []models.QuotationRequest
	err := r.db.Where("status = ?", status).Order("id DESC").Find(&reqs).Error
	return reqs, err
}

func (r *quotationRepository) GetByID(id uint) (*models.QuotationRequest, error) {
	var req models.QuotationRequest
	err := r.db.First(&req, id).Error
	return &req, err
}

func (r *quotationRepository) Update(req *models.QuotationRequest) error {
	return r.db.Save(req).Error
}
