package ideaspages

import (
	"net/http"

	"orfanato-app/internal/api/httpx"
	"orfanato-app/internal/apperr"

	"github.com/gin-gonic/gin"
)

const payloadField = "ideasPageData"

type Handler struct {
	svc      *Service
	maxBytes int64
}

func NewHandler(svc *Service, maxBytes int64) *Handler {
	return &Handler{svc: svc, maxBytes: maxBytes}
}

// POST /ideas-pages
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

// GET /ideas-pages
func (h *Handler) List(c *gin.Context) {
	out, err := h.svc.FindAll(c.Request.Context(), !httpx.IsAdmin(c))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /ideas-pages/:id
func (h *Handler) Get(c *gin.Context) {
	out, err := h.svc.FindOne(c.Request.Context(), c.Param("id"), !httpx.IsAdmin(c))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// PUT /ideas-pages/:id
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

// DELETE /ideas-pages/:id
func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Remove(c.Request.Context(), c.Param("id")); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
