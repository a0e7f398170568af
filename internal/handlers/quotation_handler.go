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

type QuotationHandler struct {
	service *service.QuotationService
}

func NewQuotationHandler(service *service.QuotationService) *QuotationHandler {
	return &QuotationHandler{service: service}
}

// Submit takes the public quotation form. Field violations come back as one
// 422 with every error keyed by field, so the frontend can mark all invalid
// inputs at once.
func (h *QuotationHandler) Submit(c *gin.Context) {
	if h.service == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Service not configured"})
		return
	}

	var form models.QuotationForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quotation, fieldErrors, err := h.service.Submit(form)
	if len(fieldErrors) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fieldErrors})
		return
	}
	if err != nil {
		logger.Error(err, "Failed to store quotation request", nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit quotation request"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"quotation": quotation})
}

// List returns quotation requests, optionally filtered by ?status=.
func (h *QuotationHandler) List(c *gin.Context) {
	if h.service == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Service not configured"})
		return
	}

	quotations, err := h.service.List(c.Query("status"))
	if err != nil {
		logger.Error(err, "Failed to load quotation requests", nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load quotation requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"quotations": quotations})
}

func (h *QuotationHandler) Get(c *gin.Context) {
	if h.service == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Service not configured"})
		return
	}

	idValue, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quotation ID"})
		return
	}

	quotation, err := h.service.GetByID(uint(idValue))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, gorm.ErrRecordNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "Quotation request not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"quotation": quotation})
}

func (h *QuotationHandler) UpdateStatus(c *gin.Context) {
	if h.service == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Service not configured"})
		return
	}

	idValue, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quotation ID"})
		return
	}

	var req models.UpdateQuotationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quotation, err := h.service.UpdateStatus(uint(idValue), req.Status)
	if err != nil {
		logger.Error(err, "Failed to update quotation status", map[string]interface{}{"id": idValue})
		status := http.StatusBadRequest
		if errors.Is(err, gorm.ErrRecordNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"quotation": quotation})
}
