package seed

import (
	"errors"

	"gorm.io/gorm"

	"aman-backend/internal/models"
	"aman-backend/internal/repository"
	"aman-backend/pkg/logger"
)

type defaultSection struct {
	page  string
	slot  string
	order int
	title models.BilingualText
}

// The dashboard edits sections in place, it never creates them, so every
// page/slot pair the frontend renders has to exist up front.
var defaultSections = []defaultSection{
	{"home", "hero", 0, models.BilingualText{En: "Secure your business", Ar: "أمّن أعمالك"}},
	{"home", "how-it-works", 1, models.BilingualText{En: "How it works", Ar: "كيف نعمل"}},
	{"home", "what-we-offer", 2, models.BilingualText{En: "What we offer", Ar: "ماذا نقدم"}},
	{"home", "trusted-clients", 3, models.BilingualText{En: "Trusted by", Ar: "يثقون بنا"}},
	{"home", "testimonials", 4, models.BilingualText{En: "Testimonials", Ar: "آراء العملاء"}},
	{"home", "stats", 5, models.BilingualText{En: "By the numbers", Ar: "بالأرقام"}},
	{"about", "hero", 0, models.BilingualText{En: "About us", Ar: "من نحن"}},
	{"contact", "hero", 0, models.BilingualText{En: "Contact us", Ar: "تواصل معنا"}},
}

// EnsureDefaultSections creates any missing page sections. Existing sections
// are never touched; their content belongs to the dashboard.
func EnsureDefaultSections(repo repository.SectionRepository) {
	if repo == nil {
		return
	}

	for _, def := range defaultSections {
		_, err := repo.GetByPageSlot(def.page, def.slot)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error(err, "Failed to check default section", map[string]interface{}{"page": def.page, "slot": def.slot})
			continue
		}

		section := &models.Section{
			Page:  def.page,
			Slot:  def.slot,
			Order: def.order,
			Title: def.title,
		}
		if err := repo.Create(section); err != nil {
			logger.Error(err, "Failed to seed section", map[string]interface{}{"page": def.page, "slot": def.slot})
			continue
		}
		logger.Info("Seeded default section", map[string]interface{}{"page": def.page, "slot": def.slot})
	}
}
