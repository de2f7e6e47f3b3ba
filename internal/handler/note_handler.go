package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"notes-service/internal/apperr"
	"notes-service/internal/middleware"
	"notes-service/internal/service"
	"notes-service/pkg/logger"
	"notes-service/prometheus"
)

// NoteHandler exposes note CRUD for the caller's tenant
type NoteHandler struct {
	notes *service.NoteService
}

// NewNoteHandler creates a new NoteHandler
func NewNoteHandler(notes *service.NoteService) *NoteHandler {
	return &NoteHandler{notes: notes}
}

// Create handles POST /notes
func (h *NoteHandler) Create(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordNoteOperation("create")

	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return apperr.Authentication("invalid or missing credentials")
	}

	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.Bind(&req); err != nil {
		log.Warn("Failed to parse note creation request", zap.Error(err))
		return apperr.Validation("invalid request body")
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	note, err := h.notes.Create(c.Request().Context(), identity, req.Title, req.Content)
	if err != nil {
		if apperr.IsKind(err, apperr.KindQuotaExceeded) {
			log.Info("Note creation denied by quota",
				zap.String("tenant_id", identity.TenantID),
				zap.Uint("user_id", identity.UserID))
			prometheus.RecordQuotaDenied(identity.TenantID)
		}
		return err
	}

	log.Info("Note created",
		zap.Uint("note_id", note.ID),
		zap.String("tenant_id", note.TenantID),
		zap.Uint("created_by", note.CreatedBy))

	return c.JSON(http.StatusCreated, note)
}

// List handles GET /notes
func (h *NoteHandler) List(c echo.Context) error {
	prometheus.RecordNoteOperation("list")

	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return apperr.Authentication("invalid or missing credentials")
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	notes, err := h.notes.List(c.Request().Context(), identity)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, notes)
}

// Get handles GET /notes/:id
func (h *NoteHandler) Get(c echo.Context) error {
	prometheus.RecordNoteOperation("get")

	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return apperr.Authentication("invalid or missing credentials")
	}

	id, err := parseNoteID(c.Param("id"))
	if err != nil {
		return err
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	note, err := h.notes.Get(c.Request().Context(), identity, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, note)
}

// Update handles PUT /notes/:id
func (h *NoteHandler) Update(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordNoteOperation("update")

	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return apperr.Authentication("invalid or missing credentials")
	}

	id, err := parseNoteID(c.Param("id"))
	if err != nil {
		return err
	}

	var req struct {
		Title   *string `json:"title"`
		Content *string `json:"content"`
	}
	if err := c.Bind(&req); err != nil {
		log.Warn("Failed to parse note update request", zap.Error(err))
		return apperr.Validation("invalid request body")
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	note, err := h.notes.Update(c.Request().Context(), identity, id, req.Title, req.Content)
	if err != nil {
		return err
	}

	log.Info("Note updated",
		zap.Uint("note_id", note.ID),
		zap.String("tenant_id", note.TenantID))

	return c.JSON(http.StatusOK, note)
}

// Delete handles DELETE /notes/:id
func (h *NoteHandler) Delete(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordNoteOperation("delete")

	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return apperr.Authentication("invalid or missing credentials")
	}

	id, err := parseNoteID(c.Param("id"))
	if err != nil {
		return err
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := h.notes.Delete(c.Request().Context(), identity, id); err != nil {
		return err
	}

	log.Info("Note deleted",
		zap.Uint("note_id", id),
		zap.String("tenant_id", identity.TenantID))

	return c.NoContent(http.StatusNoContent)
}

// parseNoteID parses the path id. A non-numeric id cannot name any note, so
// it gets the same response as an unknown one.
func parseNoteID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, apperr.NotFound("note not found")
	}
	return uint(id), nil
}
