package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"aman-backend/internal/editor"
	"aman-backend/internal/models"
	"aman-backend/internal/service"
	"aman-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// EditSessionHandler exposes the dashboard's section editor. Every route
// except Open addresses a live session by the id returned from Open; the
// editing state lives server-side so the dashboard stays a thin client.
type EditSessionHandler struct {
	service *service.EditSessionService
}

func NewEditSessionHandler(service *service.EditSessionService) *EditSessionHandler {
	return &EditSessionHandler{service: service}
}

func (h *EditSessionHandler) Open(c *gin.Context) {
	if h.service == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Service not configured"})
		return
	}

	idValue, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid section ID"})
		return
	}

	id, session, err := h.service.Open(uint(idValue))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, gorm.ErrRecordNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "Section not found"})
		return
	}

	c.JSON(http.StatusCreated, service.NewSessionView(id, session))
}

func (h *EditSessionHandler) Get(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, service.NewSessionView(c.Param("session"), session))
}

// SetScalar updates one of the form's title or description fields.
func (h *EditSessionHandler) SetScalar(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var req models.SessionScalarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := session.SetScalar(req.Field, req.Value); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, service.NewSessionView(c.Param("session"), session))
}

func (h *EditSessionHandler) SetImages(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var req models.SessionImagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := session.SetImages(req.Images); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, service.NewSessionView(c.Param("session"), session))
}

func (h *EditSessionHandler) StartDraft(c *gin.Context) {
	h.featureOp(c, func(list *editor.List) error {
		return list.StartDraft()
	})
}

func (h *EditSessionHandler) UpdateDraftField(c *gin.Context) {
	var req models.SessionFeatureFieldRequest
	if !h.bind(c, &req) {
		return
	}
	h.featureOp(c, func(list *editor.List) error {
		return list.UpdateDraftField(editor.Field(req.Field), req.Value)
	})
}

func (h *EditSessionHandler) CommitDraft(c *gin.Context) {
	h.featureOp(c, func(list *editor.List) error {
		return list.CommitDraft()
	})
}

func (h *EditSessionHandler) DiscardDraft(c *gin.Context) {
	h.featureOp(c, func(list *editor.List) error {
		list.DiscardDraft()
		return nil
	})
}

func (h *EditSessionHandler) SelectEntry(c *gin.Context) {
	var req models.SessionEntryRequest
	if !h.bind(c, &req) {
		return
	}
	h.featureOp(c, func(list *editor.List) error {
		return list.SelectActive(req.Index)
	})
}

func (h *EditSessionHandler) UpdateEntryField(c *gin.Context) {
	var req models.SessionEntryFieldRequest
	if !h.bind(c, &req) {
		return
	}
	h.featureOp(c, func(list *editor.List) error {
		return list.UpdateField(req.Index, editor.Field(req.Field), req.Value)
	})
}

func (h *EditSessionHandler) RemoveEntry(c *gin.Context) {
	var req models.SessionEntryRequest
	if !h.bind(c, &req) {
		return
	}
	h.featureOp(c, func(list *editor.List) error {
		return list.Remove(req.Index)
	})
}

func (h *EditSessionHandler) MoveEntry(c *gin.Context) {
	var req models.SessionMoveRequest
	if !h.bind(c, &req) {
		return
	}
	h.featureOp(c, func(list *editor.List) error {
		return list.Move(req.Index, editor.Direction(req.Direction))
	})
}

func (h *EditSessionHandler) Save(c *gin.Context) {
	if h.service == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Service not configured"})
		return
	}

	id := c.Param("session")
	session, err := h.service.Save(id)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}
		logger.Error(err, "Failed to save edit session", map[string]interface{}{"session": id})
		status := http.StatusInternalServerError
		if errors.Is(err, editor.ErrNotEditing) || errors.Is(err, editor.ErrSaveInFlight) {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": err.Error(), "session": service.NewSessionView(id, session)})
		return
	}

	c.JSON(http.StatusOK, service.NewSessionView(id, session))
}

func (h *EditSessionHandler) Close(c *gin.Context) {
	if h.service == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Service not configured"})
		return
	}

	h.service.Close(c.Param("session"))
	c.JSON(http.StatusOK, gin.H{"message": "Session closed"})
}

func (h *EditSessionHandler) session(c *gin.Context) (*editor.Session, bool) {
	if h.service == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Service not configured"})
		return nil, false
	}

	session, err := h.service.Get(c.Param("session"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return nil, false
	}
	return session, true
}

func (h *EditSessionHandler) bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// featureOp runs one feature-list mutation against the session's form.
// Mutations require an editing session with a live form.
func (h *EditSessionHandler) featureOp(c *gin.Context, op func(*editor.List) error) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	form := session.Form()
	if form == nil {
		c.JSON(http.StatusConflict, gin.H{"error": editor.ErrNotEditing.Error()})
		return
	}

	if err := op(form.Features); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, editor.ErrListFull) {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, service.NewSessionView(c.Param("session"), session))
}
