package repository

import (
	"aman-backend/internal/models"

	"gorm.io/gorm"
)

type SectionRepository interface {
	ListByPage(page string) ([]models.Section, error)
	GetByPageSlot(page, slot string) (*models.Section, error)
	GetByID(id uint) (*models.Section, error)
	List() ([]models.Section, error)
	Create(section *models.Section) error
	Update(section *models.Section) error
}

type sectionRepository struct {
	db *gorm.DB
}

func NewSectionRepository(db *gorm.DB) SectionRepository {
	return &sectionRepository{db: db}
}

func (r *sectionRepository) ListByPage(page string) ([]models.Section, error) {
	var sections []models.Section
	err := r.db.Where("page = ?", page).Order("\"order\" ASC, id ASC").Find(&sections).Error
	return sections, err
}

func (r *sectionRepository) GetByPageSlot(page, slot string) (*models.Section, error) {
	var section models.Section
	err := r.db.Where("page = ? AND slot = ?", page, slot).First(&section).Error
	return &section, err
}

func (r *sectionRepository) GetByID(id uint) (*models.Section, error) {
	var section models.Section
	err := r.db.First(&section, id).Error
	return &section, err
}

func (r *sectionRepository) List() ([]models.Section, error) {
	var sections []models.Section
	err := r.db.Order("page ASC, \"order\" ASC, id ASC").Find(&sections).Error
	return sections, err
}

func (r *sectionRepository) Create(section *models.Section) error {
	return r.db.Create(section).Error
}

func (r *sectionRepository) Update(section *models.Section) error {
	return r.db.Save(section).Error
}
