package shelters

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

// GET /shelters?search=&page=&limit=
func (h *Handler) List(c *gin.Context) {
	who, err := httpx.CurrentIdentity(c)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	out, err := h.svc.List(c.Request.Context(), who, c.Query("search"), httpx.PageQuery(c))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /shelters/:id
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

// POST /shelters
func (h *Handler) Create(c *gin.Context) {
	var req ShelterRequest
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

// PUT /shelters/:id
func (h *Handler) Update(c *gin.Context) {
	var req ShelterRequest
	if err := httpx.BindJSON(c, &req); err != nil {
		apperr.Respond(c, err)
		return
	}
	out, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// DELETE /shelters/:id
func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /shelters/:id/teams
func (h *Handler) ListTeams(c *gin.Context) {
	who, err := httpx.CurrentIdentity(c)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	out, err := h.svc.ListTeams(c.Request.Context(), who, c.Param("id"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /shelters/:id/teams
func (h *Handler) CreateTeam(c *gin.Context) {
	var req TeamRequest
	if err := httpx.BindJSON(c, &req); err != nil {
		apperr.Respond(c, err)
		return
	}
	out, err := h.svc.CreateTeam(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// PUT /shelters/:id/teams/:teamId
func (h *Handler) UpdateTeam(c *gin.Context) {
	var req TeamRequest
	if err := httpx.BindJSON(c, &req); err != nil {
		apperr.Respond(c, err)
		return
	}
	out, err := h.svc.UpdateTeam(c.Request.Context(), c.Param("id"), c.Param("teamId"), req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// DELETE /shelters/:id/teams/:teamId
func (h *Handler) DeleteTeam(c *gin.Context) {
	if err := h.svc.DeleteTeam(c.Request.Context(), c.Param("id"), c.Param("teamId")); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PUT /shelters/:id/teams/:teamId/leaders
func (h *Handler) SetLeaders(c *gin.Context) {
	var req LeadersRequest
	if err := httpx.BindJSON(c, &req); err != nil {
		apperr.Respond(c, err)
		return
	}
	out, err := h.svc.SetLeaders(c.Request.Context(), c.Param("id"), c.Param("teamId"), req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// PUT /shelters/:id/teams/:teamId/teachers
func (h *Handler) SetTeachers(c *gin.Context) {
	var req TeachersRequest
	if err := httpx.BindJSON(c, &req); err != nil {
		apperr.Respond(c, err)
		return
	}
	out, err := h.svc.SetTeachers(c.Request.Context(), c.Param("id"), c.Param("teamId"), req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
