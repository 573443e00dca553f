package admin

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

// GET /users?role=&search=&page=&limit=
func (h *Handler) ListUsers(c *gin.Context) {
	out, err := h.svc.List(c.Request.Context(), UserFilter{
		Role:   c.Query("role"),
		Search: c.Query("search"),
	}, httpx.PageQuery(c))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /users/:id
func (h *Handler) GetUser(c *gin.Context) {
	id, err := httpx.UintParam(c, "id")
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	u, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// POST /users
func (h *Handler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := httpx.BindJSON(c, &req); err != nil {
		apperr.Respond(c, err)
		return
	}
	u, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// PUT /users/:id
func (h *Handler) UpdateUser(c *gin.Context) {
	id, err := httpx.UintParam(c, "id")
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	var req UpdateUserRequest
	if err := httpx.BindJSON(c, &req); err != nil {
		apperr.Respond(c, err)
		return
	}
	u, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// DELETE /users/:id
func (h *Handler) DeleteUser(c *gin.Context) {
	id, err := httpx.UintParam(c, "id")
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	actor, err := httpx.CurrentIdentity(c)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id, actor.UserID); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
