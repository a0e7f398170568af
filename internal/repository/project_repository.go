package repository

import (
	"aman-backend/internal/models"

	"gorm.io/gorm"
)

type ProjectRepository interface {
	List() ([]models.Project, error)
	ListByClient(clientID uint) ([]models.Project, error)
	GetByID(id uint) (*models.Project, error)
	Create(project *models.Project) error
	Update(project *models.Project) error
	Delete(id uint) error

	CreateModification(req *models.ModificationRequest) error
	GetModification(id uint) (*models.ModificationRequest, error)
	ListModifications(projectID uint) ([]models.ModificationRequest, error)
	ListModificationsByStatus(status models.ModificationStatus) ([]models.ModificationRequest, error)
	UpdateModification(req *models.ModificationRequest) error
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) List() ([]models.Project, error) {
	var projects []models.Project
	err := r.db.Preload("Client").Order("id DESC").Find(&projects).Error
	return projects, err
}

func (r *projectRepository) ListByClient(clientID uint) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.Where("client_id = ?", clientID).Order("id DESC").Find(&projects).Error
	return projects, err
}

func (r *projectRepository) GetByID(id uint) (*models.Project, error) {
	var project models.Project
	err := r.db.Preload("Modifications").First(&project, id).Error
	return &project, err
}

func (r *projectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

func (r *projectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

func (r *projectRepository) Delete(id uint) error {
	return r.db.Delete(&models.Project{}, id).Error
}

func (r *projectRepository) CreateModification(req *models.ModificationRequest) error {
	return r.db.Create(req).Error
}

func (r *projectRepository) GetModification(id uint) (*models.ModificationRequest, error) {
	var req models.ModificationRequest
	err := r.db.First(&req, id).Error
	return &req, err
}

func (r *projectRepository) ListModifications(projectID uint) ([]models.ModificationRequest, error) {
	var reqs []models.ModificationRequest
	err := r.db.Where("project_id = ?", projectID).Order("id DESC").Find(&reqs).Error
	return reqs, err
}

func (r *projectRepository) ListModificationsByStatus(status models.ModificationStatus) ([]models.ModificationRequest, error) {
	var reqs []models.ModificationRequest
	err := r.db.Where("status = ?", status).Order("id DESC").Find(&reqs).Error
	return reqs, err
}

func (r *projectRepository) UpdateModification(req *models.ModificationRequest) error {
	return r.db.Save(req).Error
}
