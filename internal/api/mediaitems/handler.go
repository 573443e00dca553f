// Package mediaitems lets admins inspect the media rows of any owner.
package mediaitems

import (
	"net/http"

	"orfanato-app/internal/apperr"
	"orfanato-app/internal/domain/media"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var targetTypes = map[media.TargetType]bool{
	media.TargetVideosPage:   true,
	media.TargetImageSection: true,
	media.TargetIdeasSection: true,
	media.TargetDocument:     true,
	media.TargetMeditation:   true,
	media.TargetEvent:        true,
	media.TargetInformative:  true,
}

type Handler struct {
	db    *gorm.DB
	media *media.Processor
}

func NewHandler(db *gorm.DB, p *media.Processor) *Handler {
	return &Handler{db: db, media: p}
}

// GET /media-items?targetType=VideosPage&targetId=...
func (h *Handler) List(c *gin.Context) {
	tt := media.TargetType(c.Query("targetType"))
	id := c.Query("targetId")
	if !targetTypes[tt] {
		apperr.Respond(c, apperr.Badf("invalid targetType %q", tt))
		return
	}
	if id == "" {
		apperr.Respond(c, apperr.BadRequest("targetId is required"))
		return
	}

	items, err := h.media.FindByTarget(c.Request.Context(), h.db, id, tt)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	if items == nil {
		items = []media.Item{}
	}
	c.JSON(http.StatusOK, items)
}
