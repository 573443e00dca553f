package pagelas

import (
	"net/http"
	"strconv"

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

// GET /pagelas?shelteredId=&year=
func (h *Handler) List(c *gin.Context) {
	who, err := httpx.CurrentIdentity(c)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	year := 0
	if v := c.Query("year"); v != "" {
		if year, err = strconv.Atoi(v); err != nil {
			apperr.Respond(c, apperr.Badf("invalid year %q", v))
			return
		}
	}
	out, err := h.svc.List(c.Request.Context(), who, Filter{ShelteredID: c.Query("shelteredId"), Year: year})
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /pagelas/:id
func (h *Handler) Get(c *gin.Context) {
	who, err := httpx.CurrentIdentity(c)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	out, err := h.svc.Get(c.Request.Context(), who, c.Param("id"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /pagelas
func (h *Handler) Create(c *gin.Context) {
	who, err := httpx.CurrentIdentity(c)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	var req CreateRequest
	if err := httpx.BindJSON(c, &req); err != nil {
		apperr.Respond(c, err)
		return
	}
	out, err := h.svc.Create(c.Request.Context(), who, req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// PUT /pagelas/:id
func (h *Handler) Update(c *gin.Context) {
	who, err := httpx.CurrentIdentity(c)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	var req UpdateRequest
	if err := httpx.BindJSON(c, &req); err != nil {
		apperr.Respond(c, err)
		return
	}
	out, err := h.svc.Update(c.Request.Context(), who, c.Param("id"), req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// DELETE /pagelas/:id
func (h *Handler) Delete(c *gin.Context) {
	who, err := httpx.CurrentIdentity(c)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), who, c.Param("id")); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
