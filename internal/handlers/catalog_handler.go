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

type CatalogHandler struct {
	service *service.CatalogService
}

func NewCatalogHandler(service *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// ListPublic serves the active services for the public site.
func (h *CatalogHandler) ListPublic(c *gin.Context) {
	if h.service == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Service not configured"})
		return
	}

	services, err := h.service.ListPublic()
	if err != nil {
		logger.Error(err, "Failed to load services", nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load services"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"services": services})
}

func (h *CatalogHandler) GetBySlug(c *gin.Context) {
	if h.service == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Service not configured"})
		return
	}

	item, err := h.service.GetBySlug(c.Param("slug"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, gorm.ErrRecordNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "Service not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"service": item})
}

// ListAdmin returns every service including inactive ones.
func (h *CatalogHandler) ListAdmin(c *gin.Context) {
	if h.service == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Service not configured"})
		return
	}

	services, err := h.service.ListAdmin()
	if err != nil {
		logger.Error(err, "Failed to load services", nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load services"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"services": services})
}

func (h *CatalogHandler) Create(c *gin.Context) {
	if h.service == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Service not configured"})
		return
	}

	var req models.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.service.Create(req)
	if err != nil {
		logger.Error(err, "Failed to create service", map[string]interface{}{"slug": req.Slug})
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"service": item})
}

func (h *CatalogHandler) Update(c *gin.Context) {
	if h.service == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Service not configured"})
		return
	}

	idValue, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service ID"})
		return
	}

	var req models.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.service.Update(uint(idValue), req)
	if err != nil {
		logger.Error(err, "Failed to update service", map[string]interface{}{"id": idValue})
		status := http.StatusInternalServerError
		if errors.Is(err, gorm.ErrRecordNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"service": item})
}

func (h *CatalogHandler) Delete(c *gin.Context) {
	if h.service == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Service not configured"})
		return
	}

	idValue, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service ID"})
		return
	}

	if err := h.service.Delete(uint(idValue)); err != nil {
		logger.Error(err, "Failed to delete service", map[string]interface{}{"id": idValue})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete service"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service deleted"})
}
