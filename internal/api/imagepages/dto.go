package imagepages

import (
	"time"

	"orfanato-app/internal/domain/media"
	"orfanato-app/internal/domain/pages"
	"orfanato-app/internal/domain/route"
)

type SectionInput struct {
	ID          string            `json:"id,omitempty"`
	Caption     string            `json:"caption" binding:"required"`
	Description string            `json:"description"`
	Public      *bool             `json:"public"`
	MediaItems  []media.ItemInput `json:"mediaItems" binding:"omitempty,dive"`
}

type CreateRequest struct {
	Name        string         `json:"name" binding:"required,max=255"`
	Description string         `json:"description"`
	Public      *bool          `json:"public"`
	Sections    []SectionInput `json:"sections" binding:"omitempty,dive"`
}

// UpdateRequest leaves nil fields untouched. When Sections is present,
// sections missing from it are deleted together with their media.
type UpdateRequest struct {
	Name        *string        `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string        `json:"description"`
	Public      *bool          `json:"public"`
	Sections    []SectionInput `json:"sections" binding:"omitempty,dive"`
}

type SectionResponse struct {
	ID          string       `json:"id"`
	Caption     string       `json:"caption"`
	Description string       `json:"description"`
	Public      bool         `json:"public"`
	MediaItems  []media.Item `json:"mediaItems"`
}

type Response struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Public      bool              `json:"public"`
	Route       *route.Route      `json:"route"`
	Sections    []SectionResponse `json:"sections"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

func toResponse(p pages.ImagePage, byTarget map[string][]media.Item, publicOnly bool) Response {
	out := Response{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Public:      p.Public,
		Route:       p.Route,
		Sections:    make([]SectionResponse, 0, len(p.Sections)),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	for _, s := range p.Sections {
		if publicOnly && !s.Public {
			continue
		}
		items := byTarget[s.ID]
		if items == nil {
			items = []media.Item{}
		}
		out.Sections = append(out.Sections, SectionResponse{
			ID:          s.ID,
			Caption:     s.Caption,
			Description: s.Description,
			Public:      s.Public,
			MediaItems:  items,
		})
	}
	return out
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
