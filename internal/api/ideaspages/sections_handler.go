package ideaspages

import (
	"net/http"

	"orfanato-app/internal/api/httpx"
	"orfanato-app/internal/apperr"

	"github.com/gin-gonic/gin"
)

const sectionPayloadField = "ideasSectionData"

type SectionHandler struct {
	svc      *SectionService
	maxBytes int64
}

func NewSectionHandler(svc *SectionService, maxBytes int64) *SectionHandler {
	return &SectionHandler{svc: svc, maxBytes: maxBytes}
}

// POST /ideas-sections
func (h *SectionHandler) Create(c *gin.Context) {
	var in SectionInput
	files, err := httpx.BindPayload(c, sectionPayloadField, &in, h.maxBytes)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	out, err := h.svc.Create(c.Request.Context(), in, files)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// GET /ideas-sections?orphans=true
func (h *SectionHandler) List(c *gin.Context) {
	out, err := h.svc.FindAll(c.Request.Context(), c.Query("orphans") == "true")
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /ideas-sections/:id
func (h *SectionHandler) Get(c *gin.Context) {
	out, err := h.svc.FindOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// PUT /ideas-sections/:id
func (h *SectionHandler) Update(c *gin.Context) {
	var in SectionInput
	files, err := httpx.BindPayload(c, sectionPayloadField, &in, h.maxBytes)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	out, err := h.svc.Update(c.Request.Context(), c.Param("id"), in, files)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /ideas-sections/:id/attach/:pageId
func (h *SectionHandler) Attach(c *gin.Context) {
	out, err := h.svc.Attach(c.Request.Context(), c.Param("id"), c.Param("pageId"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// DELETE /ideas-sections/:id
func (h *SectionHandler) Delete(c *gin.Context) {
	if err := h.svc.Remove(c.Request.Context(), c.Param("id")); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
