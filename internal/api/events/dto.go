package events

import (
	"time"

	"orfanato-app/internal/domain/events"
	"orfanato-app/internal/domain/media"
)

type CreateRequest struct {
	Title       string            `json:"title" binding:"required,max=255"`
	Date        time.Time         `json:"date" binding:"required"`
	Location    string            `json:"location"`
	Description string            `json:"description"`
	MediaItems  []media.ItemInput `json:"mediaItems" binding:"omitempty,dive"`
}

type UpdateRequest struct {
	Title       *string           `json:"title" binding:"omitempty,min=1,max=255"`
	Date        *time.Time        `json:"date"`
	Location    *string           `json:"location"`
	Description *string           `json:"description"`
	MediaItems  []media.ItemInput `json:"mediaItems" binding:"omitempty,dive"`
}

type Response struct {
	events.Event
	MediaItems []media.Item `json:"mediaItems"`
}

func toResponse(e events.Event, items []media.Item) Response {
	if items == nil {
		items = []media.Item{}
	}
	return Response{Event: e, MediaItems: items}
}
