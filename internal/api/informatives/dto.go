package informatives

import "orfanato-app/internal/domain/pages"

type CreateRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description" binding:"required"`
	Public      *bool  `json:"public"`
}

type UpdateRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	Public      *bool   `json:"public"`
}

// Response is the informative with its route preloaded.
type Response = pages.Informative
