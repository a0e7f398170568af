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

// slotConfigs captures the per-section editing constraints. Trusted-client
// logos are capped at four; rating and percentage style sections keep their
// features single-language, the rest require both locales on every entry.
var slotConfigs = map[string]editor.Config{
	"hero":            {RequireBilingual: true},
	"how-it-works":    {RequireBilingual: true},
	"what-we-offer":   {RequireBilingual: true},
	"trusted-clients": {MaxEntries: 4},
	"testimonials":    {},
	"stats":           {},
}

// SlotConfig returns the editing constraints for a section slot. Unknown
// slots get the strict default.
func SlotConfig(slot string) editor.Config {
	if cfg, ok := slotConfigs[strings.TrimSpace(strings.ToLower(slot))]; ok {
		return cfg
	}
	return editor.Config{RequireBilingual: true}
}

type SectionService struct {
	repo  repository.SectionRepository
	cache *cache.Cache
}

func NewSectionService(repo repository.SectionRepository, c *cache.Cache) *SectionService {
	if repo == nil {
		return nil
	}
	return &SectionService{repo: repo, cache: c}
}

func (s *SectionService) ListByPage(page string) ([]models.Section, error) {
	page = strings.TrimSpace(strings.ToLower(page))
	if page == "" {
		return nil, errors.New("page is required")
	}

	if s.cache != nil {
		var cached []models.Section
		if err := s.cache.GetCachedPageSections(page, &cached); err == nil {
			return cached, nil
		}
	}

	sections, err := s.repo.ListByPage(page)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.CachePageSections(page, sections); err != nil {
			logger.Warn("Failed to cache page sections", map[string]interface{}{"page": page})
		}
	}

	return sections, nil
}

func (s *SectionService) GetByPageSlot(page, slot string) (*models.Section, error) {
	return s.repo.GetByPageSlot(strings.TrimSpace(strings.ToLower(page)), strings.TrimSpace(strings.ToLower(slot)))
}

func (s *SectionService) GetByID(id uint) (*models.Section, error) {
	return s.repo.GetByID(id)
}

func (s *SectionService) List() ([]models.Section, error) {
	return s.repo.List()
}

// Update rewrites a section's editable content as one full object. Features
// go through the same serialization rules the edit sessions use, so a direct
// API update and a dashboard save behave identically.
func (s *SectionService) Update(id uint, req models.UpdateSectionRequest) (*models.Section, error) {
	section, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	list := editor.NewList(req.Features, SlotConfig(section.Slot))

	section.Title = req.Title.Trimmed()
	section.Description = req.Description.Trimmed()
	section.Images = models.StringList(req.Images)
	section.Features = models.FeatureList(list.SerializeForSave())

	if err := s.repo.Update(section); err != nil {
		return nil, err
	}

	s.invalidate()
	return section, nil
}

// UpdateSection implements editor.Store for dashboard edit sessions.
func (s *SectionService) UpdateSection(id uint, title, description models.BilingualText, images []string, features []models.FeatureEntry) (*models.Section, error) {
	section, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	section.Title = title
	section.Description = description
	section.Images = models.StringList(images)
	section.Features = models.FeatureList(features)

	if err := s.repo.Update(section); err != nil {
		return nil, err
	}

	s.invalidate()
	return section, nil
}

func (s *SectionService) invalidate() {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateSections(); err != nil {
		logger.Warn("Failed to invalidate section cache", nil)
	}
}
