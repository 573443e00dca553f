package events

import (
	"time"

	"orfanato-app/internal/domain/base"
)

type Event struct {
	base.Model
	Title       string    `gorm:"not null" json:"title"`
	Date        time.Time `gorm:"not null;index" json:"date"`
	Location    string    `gorm:"not null;default:''" json:"location"`
	Description string    `gorm:"type:text;not null;default:''" json:"description"`
}
