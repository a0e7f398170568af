package service

import (
	"testing"

	"gorm.io/gorm"

	"aman-backend/internal/models"
	"aman-backend/internal/repository"
)

type memorySectionRepository struct {
	sections map[uint]models.Section
	updates  int
}

func newMemorySectionRepository(sections ...models.Section) *memorySectionRepository {
	repo := &memorySectionRepository{sections: map[uint]models.Section{}}
	for _, section := range sections {
		repo.sections[section.ID] = section
	}
	return repo
}

func (m *memorySectionRepository) ListByPage(page string) ([]models.Section, error) {
	var out []models.Section
	for _, section := range m.sections {
		if section.Page == page {
			out = append(out, section)
		}
	}
	return out, nil
}

func (m *memorySectionRepository) GetByPageSlot(page, slot string) (*models.Section, error) {
	for _, section := range m.sections {
		if section.Page == page && section.Slot == slot {
			copied := section
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memorySectionRepository) GetByID(id uint) (*models.Section, error) {
	if section, ok := m.sections[id]; ok {
		return &section, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memorySectionRepository) List() ([]models.Section, error) {
	var out []models.Section
	for _, section := range m.sections {
		out = append(out, section)
	}
	return out, nil
}

func (m *memorySectionRepository) Create(section *models.Section) error {
	section.ID = uint(len(m.sections) + 1)
	m.sections[section.ID] = *section
	return nil
}

func (m *memorySectionRepository) Update(section *models.Section) error {
	m.updates++
	m.sections[section.ID] = *section
	return nil
}

var _ repository.SectionRepository = (*memorySectionRepository)(nil)

func TestSectionUpdate_AppliesSerializationRules(t *testing.T) {
	repo := newMemorySectionRepository(models.Section{
		ID: 1, Page: "home", Slot: "how-it-works",
	})
	service := NewSectionService(repo, nil)

	updated, err := service.Update(1, models.UpdateSectionRequest{
		Title:       models.BilingualText{En: "  How it works  ", Ar: " كيف نعمل "},
		Description: models.BilingualText{En: "Steps", Ar: "خطوات"},
		Features: []models.FeatureEntry{
			{Icon: "scan", Name: models.BilingualText{En: "Scan", Ar: "فحص"}, Order: 5},
			{Icon: "report", Name: models.BilingualText{En: "Report"}, Order: 2},
		},
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if updated.Title.En != "How it works" || updated.Title.Ar != "كيف نعمل" {
		t.Fatalf("scalar fields not trimmed: %+v", updated.Title)
	}
	// how-it-works requires bilingual features; the English-only entry is
	// filtered and the survivor renumbered densely.
	if len(updated.Features) != 1 {
		t.Fatalf("expected 1 feature after filtering, got %d", len(updated.Features))
	}
	if updated.Features[0].Name.En != "Scan" || updated.Features[0].Order != 0 {
		t.Fatalf("unexpected surviving feature: %+v", updated.Features[0])
	}
}

func TestSectionUpdate_KeepsPartialsForLenientSlots(t *testing.T) {
	repo := newMemorySectionRepository(models.Section{
		ID: 2, Page: "home", Slot: "testimonials",
	})
	service := NewSectionService(repo, nil)

	updated, err := service.Update(2, models.UpdateSectionRequest{
		Title: models.BilingualText{En: "Testimonials", Ar: "آراء العملاء"},
		Features: []models.FeatureEntry{
			{Icon: "5", Name: models.BilingualText{En: "Great team"}, Order: 0},
		},
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if len(updated.Features) != 1 {
		t.Fatalf("lenient slot must keep single-locale entries, got %d", len(updated.Features))
	}
}

func TestSectionGetByPageSlot_NormalizesLookupKeys(t *testing.T) {
	repo := newMemorySectionRepository(models.Section{
		ID: 3, Page: "about", Slot: "hero",
	})
	service := NewSectionService(repo, nil)

	section, err := service.GetByPageSlot("  About ", " HERO ")
	if err != nil {
		t.Fatalf("GetByPageSlot returned error: %v", err)
	}
	if section.ID != 3 {
		t.Fatalf("expected section 3, got %d", section.ID)
	}
}

func TestSlotConfig_Defaults(t *testing.T) {
	if cfg := SlotConfig("trusted-clients"); cfg.MaxEntries != 4 {
		t.Fatalf("trusted-clients should cap at 4 entries, got %d", cfg.MaxEntries)
	}
	if cfg := SlotConfig("testimonials"); cfg.RequireBilingual {
		t.Fatal("testimonials should not require bilingual features")
	}
	if cfg := SlotConfig("some-new-slot"); !cfg.RequireBilingual {
		t.Fatal("unknown slots default to the strict config")
	}
}
