package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"aman-backend/internal/models"
	"aman-backend/internal/service"
	"aman-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SectionHandler struct {
	service *service.SectionService
}

func NewSectionHandler(service *service.SectionService) *SectionHandler {
	return &SectionHandler{service: service}
}

// ListByPage serves the public content for one page, both locales in one
// payload; the frontend picks the language.
func (h *SectionHandler) ListByPage(c *gin.Context) {
	if h.service == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Service not configured"})
		return
	}

	sections, err := h.service.ListByPage(c.Param("page"))
	if err != nil {
		logger.Error(err, "Failed to load page sections", map[string]interface{}{"page": c.Param("page")})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load page sections"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sections": sections})
}

func (h *SectionHandler) GetByPageSlot(c *gin.Context) {
	if h.service == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Service not configured"})
		return
	}

	section, err := h.service.GetByPageSlot(c.Param("page"), c.Param("slot"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, gorm.ErrRecordNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "Section not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"section": section})
}

func (h *SectionHandler) List(c *gin.Context) {
	if h.service == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Service not configured"})
		return
	}

	sections, err := h.service.List()
	if err != nil {
		logger.Error(err, "Failed to load sections", nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load sections"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sections": sections})
}

func (h *SectionHandler) Get(c *gin.Context) {
	if h.service == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Service not configured"})
		return
	}

	idValue, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid section ID"})
		return
	}

	section, err := h.service.GetByID(uint(idValue))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, gorm.ErrRecordNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "Section not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"section": section})
}

func (h *SectionHandler) Update(c *gin.Context) {
	if h.service == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Service not configured"})
		return
	}

	idValue, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid section ID"})
		return
	}

	var req models.UpdateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	section, err := h.service.Update(uint(idValue), req)
	if err != nil {
		logger.Error(err, "Failed to update section", map[string]interface{}{"id": idValue})
		status := http.StatusInternalServerError
		if errors.Is(err, gorm.ErrRecordNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"section": section})
}
