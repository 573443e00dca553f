package comments

import (
	"net/http"

	"orfanato-app/internal/api/httpx"
	"orfanato-app/internal/apperr"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// POST /comments
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := httpx.BindJSON(c, &req); err != nil {
		apperr.Respond(c, err)
		return
	}
	out, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// GET /comments lists published comments; admins see all of them.
func (h *Handler) List(c *gin.Context) {
	out, err := h.svc.List(c.Request.Context(), !httpx.IsAdmin(c), httpx.PageQuery(c))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// PATCH /comments/:id/publish
func (h *Handler) Publish(c *gin.Context) {
	var req PublishRequest
	if err := httpx.BindJSON(c, &req); err != nil {
		apperr.Respond(c, err)
		return
	}
	out, err := h.svc.SetPublished(c.Request.Context(), c.Param("id"), *req.Published)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// DELETE /comments/:id
func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
