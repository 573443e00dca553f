package ideaspages

import (
	"time"

	"orfanato-app/internal/domain/media"
	"orfanato-app/internal/domain/pages"
	"orfanato-app/internal/domain/route"
)

type SectionInput struct {
	ID          string            `json:"id,omitempty"`
	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description"`
	Public      *bool             `json:"public"`
	MediaItems  []media.ItemInput `json:"mediaItems" binding:"omitempty,dive"`
}

type CreateRequest struct {
	Title       string         `json:"title" binding:"required,max=255"`
	Subtitle    string         `json:"subtitle"`
	Description string         `json:"description"`
	Public      *bool          `json:"public"`
	Sections    []SectionInput `json:"sections" binding:"omitempty,dive"`
}

type UpdateRequest struct {
	Title       *string        `json:"title" binding:"omitempty,min=1,max=255"`
	Subtitle    *string        `json:"subtitle"`
	Description *string        `json:"description"`
	Public      *bool          `json:"public"`
	Sections    []SectionInput `json:"sections" binding:"omitempty,dive"`
}

type SectionResponse struct {
	ID          string       `json:"id"`
	PageID      *string      `json:"pageId"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Public      bool         `json:"public"`
	MediaItems  []media.Item `json:"mediaItems"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

type Response struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Subtitle    string            `json:"subtitle"`
	Description string            `json:"description"`
	Public      bool              `json:"public"`
	Route       *route.Route      `json:"route"`
	Sections    []SectionResponse `json:"sections"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

func toSection(s pages.IdeasSection, items []media.Item) SectionResponse {
	if items == nil {
		items = []media.Item{}
	}
	return SectionResponse{
		ID:          s.ID,
		PageID:      s.PageID,
		Title:       s.Title,
		Description: s.Description,
		Public:      s.Public,
		MediaItems:  items,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func toResponse(p pages.IdeasPage, byTarget map[string][]media.Item, publicOnly bool) Response {
	out := Response{
		ID:          p.ID,
		Title:       p.Title,
		Subtitle:    p.Subtitle,
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
		out.Sections = append(out.Sections, toSection(s, byTarget[s.ID]))
	}
	return out
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
