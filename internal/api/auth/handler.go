package auth

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

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/login
func (h *Handler) Login(c *gin.Context) {
	var input loginRequest
	if err := httpx.BindJSON(c, &input); err != nil {
		apperr.Respond(c, err)
		return
	}

	res, err := h.svc.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /auth/me
func (h *Handler) Me(c *gin.Context) {
	id, err := httpx.CurrentIdentity(c)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	out, err := h.svc.Me(c.Request.Context(), id.UserID)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// POST /auth/change-password
func (h *Handler) ChangePassword(c *gin.Context) {
	id, err := httpx.CurrentIdentity(c)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	var body changePasswordRequest
	if err := httpx.BindJSON(c, &body); err != nil {
		apperr.Respond(c, err)
		return
	}
	if err := h.svc.ChangePassword(c.Request.Context(), id.UserID, body.OldPassword, body.NewPassword); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}
