package documents

import (
	"time"

	"orfanato-app/internal/domain/media"
	"orfanato-app/internal/domain/pages"
	"orfanato-app/internal/domain/route"
)

type CreateRequest struct {
	Name        string          `json:"name" binding:"required,max=255"`
	Description string          `json:"description"`
	Media       *media.ItemInput `json:"media"`
}

// UpdateRequest leaves nil fields untouched. A non-nil Media replaces the
// stored file or link.
type UpdateRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string          `json:"description"`
	Media       *media.ItemInput `json:"media"`
}

type Response struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Route       *route.Route `json:"route"`
	Media       *media.Item  `json:"media"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

func toResponse(d pages.Document, items []media.Item) Response {
	out := Response{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Route:       d.Route,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	if len(items) > 0 {
		out.Media = &items[0]
	}
	return out
}
