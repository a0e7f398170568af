package repository

import (
	"aman-backend/internal/models"

	"gorm.io/gorm"
)

type ServiceRepository interface {
	List(activeOnly bool) ([]models.Service, error)
	GetBySlug(slug string) (*models.Service, error)
	GetByID(id uint) (*models.Service, error)
	Create(service *models.Service) error
	Update(service *models.Service) error
	Delete(id uint) error
	NextOrder() (int, error)
}

type serviceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) List(activeOnly bool) ([]models.Service, error) {
	var services []models.Service
	query := r.db.Order("\"order\" ASC, id ASC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	err := query.Find(&services).Error
	return services, err
}

func (r *serviceRepository) GetBySlug(slug string) (*models.Service, error) {
	var service models.Service
	err := r.db.Where("slug = ?", slug).First(&service).Error
	return &service, err
}

func (r *serviceRepository) GetByID(id uint) (*models.Service, error) {
	var service models.Service
	err := r.db.First(&service, id).Error
	return &service, err
}

func (r *serviceRepository) Create(service *models.Service) error {
	return r.db.Create(service).Error
}

func (r *serviceRepository) Update(service *models.Service) error {
	return r.db.Save(service).Error
}

func (r *serviceRepository) Delete(id uint) error {
	return r.db.Delete(&models.Service{}, id).Error
}

func (r *serviceRepository) NextOrder() (int, error) {
	var maxOrder int64
	err := r.db.Model(&models.Service{}).Select("COALESCE(MAX(\"order\"), 0)").Scan(&maxOrder).Error
	if err != nil {
		return 0, err
	}
	return int(maxOrder) + 1, nil
}
