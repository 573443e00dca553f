package videopages

import (
	"time"

	"orfanato-app/internal/domain/media"
	"orfanato-app/internal/domain/pages"
	"orfanato-app/internal/domain/route"
)

type CreateRequest struct {
	Name        string            `json:"name" binding:"required,max=255"`
	Description string            `json:"description"`
	Public      *bool             `json:"public"`
	Videos      []media.ItemInput `json:"videos" binding:"omitempty,dive"`
}

// UpdateRequest leaves nil fields untouched. A nil Videos list keeps the
// stored videos; an empty one removes them all.
type UpdateRequest struct {
	Name        *string           `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string           `json:"description"`
	Public      *bool             `json:"public"`
	Videos      []media.ItemInput `json:"videos" binding:"omitempty,dive"`
}

type Response struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Public      bool         `json:"public"`
	Route       *route.Route `json:"route"`
	Videos      []media.Item `json:"videos"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

func toResponse(p pages.VideosPage, videos []media.Item) Response {
	if videos == nil {
		videos = []media.Item{}
	}
	return Response{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Public:      p.Public,
		Route:       p.Route,
		Videos:      videos,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
