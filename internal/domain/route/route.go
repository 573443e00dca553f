package route

import (
	"orfanato-app/internal/domain/base"
)

type Type string

const (
	TypePage  Type = "page"
	TypeDoc   Type = "doc"
	TypeOther Type = "other"
)

// Route maps a public slug to the entity a page renders.
type Route struct {
	base.Model

	Title       string `gorm:"not null" json:"title"`
	Subtitle    string `gorm:"not null;default:''" json:"subtitle"`
	Description string `gorm:"type:text;not null;default:''" json:"description"`
	Path        string `gorm:"not null;uniqueIndex:idx_routes_path" json:"path"`
	Type        Type   `gorm:"type:varchar(10);not null;default:'page'" json:"type"`

	EntityType string `gorm:"type:varchar(40);not null;index:idx_routes_entity,priority:1" json:"entityType"`
	EntityID   string `gorm:"type:uuid;not null;index:idx_routes_entity,priority:2" json:"entityId"`
	IDToFetch  string `gorm:"column:id_to_fetch;type:uuid;not null" json:"idToFetch"`

	Image  string `gorm:"type:text;not null;default:''" json:"image"`
	Public bool   `gorm:"not null" json:"public"`
}

// Patch carries the fields an update may change; nil means untouched.
type Patch struct {
	Title       *string
	Subtitle    *string
	Description *string
	Path        *string
	Type        *Type
	EntityType  *string
	EntityID    *string
	IDToFetch   *string
	Image       *string
	Public      *bool
}

func (p Patch) apply(r *Route) {
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.Subtitle != nil {
		r.Subtitle = *p.Subtitle
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.Path != nil {
		r.Path = *p.Path
	}
	if p.Type != nil {
		r.Type = *p.Type
	}
	if p.EntityType != nil {
		r.EntityType = *p.EntityType
	}
	if p.EntityID != nil {
		r.EntityID = *p.EntityID
	}
	if p.IDToFetch != nil {
		r.IDToFetch = *p.IDToFetch
	}
	if p.Image != nil {
		r.Image = *p.Image
	}
	if p.Public != nil {
		r.Public = *p.Public
	}
}
