package events

import (
	"net/http"
	"strconv"

	"orfanato-app/internal/api/httpx"
	"orfanato-app/internal/apperr"

	"github.com/gin-gonic/gin"
)

const payloadField = "eventData"

type Handler struct {
	svc      *Service
	maxBytes int64
}

func NewHandler(svc *Service, maxBytes int64) *Handler {
	return &Handler{svc: svc, maxBytes: maxBytes}
}

// POST /events
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	files, err := httpx.BindPayload(c, payloadField, &req, h.maxBytes)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	out, err := h.svc.Create(c.Request.Context(), req, files)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// GET /events
func (h *Handler) List(c *gin.Context) {
	out, err := h.svc.FindAll(c.Request.Context())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /events/:id
func (h *Handler) Get(c *gin.Context) {
	out, err := h.svc.FindOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// PUT /events/:id
func (h *Handler) Update(c *gin.Context) {
	var req UpdateRequest
	files, err := httpx.BindPayload(c, payloadField, &req, h.maxBytes)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	out, err := h.svc.Update(c.Request.Context(), c.Param("id"), req, files)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// DELETE /events/:id
func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Remove(c.Request.Context(), c.Param("id")); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /events/upcoming?limit=
func (h *Handler) Upcoming(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if err != nil || limit < 1 || limit > 50 {
		apperr.Respond(c, apperr.BadRequest("limit must be between 1 and 50"))
		return
	}
	out, err := h.svc.FindUpcoming(c.Request.Context(), limit)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
