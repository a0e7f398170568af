package service

import (
	"errors"
	"strings"

	"aman-backend/internal/editor"
	"aman-backend/internal/models"
	"aman-backend/internal/repository"
	"aman-backend/pkg/cache"
	"aman-backend/pkg/logger"
)

// catalogFeatureConfig applies to service-card feature lists: every bullet
// must carry both locales before it is published.
var catalogFeatureConfig = editor.Config{RequireBilingual: true}

type CatalogService struct {
	repo  repository.ServiceRepository
	cache *cache.Cache
}

func NewCatalogService(repo repository.ServiceRepository, c *cache.Cache) *CatalogService {
	if repo == nil {
		return nil
	}
	return &CatalogService{repo: repo, cache: c}
}

func (s *CatalogService) ListPublic() ([]models.Service, error) {
	if s.cache != nil {
		var cached []models.Service
		if err := s.cache.GetCachedServices(&cached); err == nil {
			return cached, nil
		}
	}

	services, err := s.repo.List(true)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.CacheServices(services); err != nil {
			logger.Warn("Failed to cache service catalog", nil)
		}
	}
	return services, nil
}

func (s *CatalogService) ListAdmin() ([]models.Service, error) {
	return s.repo.List(false)
}

func (s *CatalogService) GetBySlug(slug string) (*models.Service, error) {
	return s.repo.GetBySlug(strings.TrimSpace(strings.ToLower(slug)))
}

func (s *CatalogService) GetByID(id uint) (*models.Service, error) {
	return s.repo.GetByID(id)
}

func (s *CatalogService) Create(req models.CreateServiceRequest) (*models.Service, error) {
	slug := strings.TrimSpace(strings.ToLower(req.Slug))
	if slug == "" {
		return nil, errors.New("slug is required")
	}
	if req.Title.Empty() {
		return nil, errors.New("title is required")
	}

	order := 0
	if req.Order != nil {
		order = *req.Order
	} else {
		next, err := s.repo.NextOrder()
		if err != nil {
			return nil, err
		}
		order = next
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	features := editor.NewList(req.Features, catalogFeatureConfig).SerializeForSave()

	service := &models.Service{
		Slug:        slug,
		Title:       req.Title.Trimmed(),
		Description: req.Description.Trimmed(),
		Icon:        strings.TrimSpace(req.Icon),
		Image:       strings.TrimSpace(req.Image),
		Features:    models.FeatureList(features),
		Active:      active,
		Order:       order,
	}

	if err := s.repo.Create(service); err != nil {
		return nil, err
	}

	s.invalidate()
	return service, nil
}

func (s *CatalogService) Update(id uint, req models.UpdateServiceRequest) (*models.Service, error) {
	service, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if req.Title.Empty() {
		return nil, errors.New("title is required")
	}

	service.Title = req.Title.Trimmed()
	service.Description = req.Description.Trimmed()
	service.Icon = strings.TrimSpace(req.Icon)
	service.Image = strings.TrimSpace(req.Image)
	service.Features = models.FeatureList(editor.NewList(req.Features, catalogFeatureConfig).SerializeForSave())
	if req.Active != nil {
		service.Active = *req.Active
	}
	if req.Order != nil {
		service.Order = *req.Order
	}

	if err := s.repo.Update(service); err != nil {
		return nil, err
	}

	s.invalidate()
	return service, nil
}

func (s *CatalogService) Delete(id uint) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *CatalogService) invalidate() {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateServices(); err != nil {
		logger.Warn("Failed to invalidate service catalog cache", nil)
	}
}
