// Package routesapi exposes route lookup for the public site.
package routesapi

import (
	"net/http"

	"orfanato-app/internal/apperr"
	"orfanato-app/internal/domain/route"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	routes *route.Service
}

func NewHandler(routes *route.Service) *Handler {
	return &Handler{routes: routes}
}

// GET /routes?type=page
func (h *Handler) List(c *gin.Context) {
	typ := route.Type(c.Query("type"))
	switch typ {
	case "", route.TypePage, route.TypeDoc, route.TypeOther:
	default:
		apperr.Respond(c, apperr.Badf("invalid route type %q", typ))
		return
	}
	out, err := h.routes.ListPublic(c.Request.Context(), typ)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	if out == nil {
		out = []route.Route{}
	}
	c.JSON(http.StatusOK, out)
}

// GET /routes/resolve?path=videos_cultos
func (h *Handler) Resolve(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		apperr.Respond(c, apperr.BadRequest("path is required"))
		return
	}
	r, err := h.routes.FindByPath(c.Request.Context(), path)
	if err != nil {
		apperr.Respond(c, apperr.FromDB(err, "Route"))
		return
	}
	if !r.Public && c.GetString("role") != "admin" {
		apperr.Respond(c, apperr.NotFound("Route not found"))
		return
	}
	c.JSON(http.StatusOK, r)
}

// GET /routes/:id
func (h *Handler) Get(c *gin.Context) {
	r, err := h.routes.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperr.Respond(c, apperr.FromDB(err, "Route"))
		return
	}
	c.JSON(http.StatusOK, r)
}
