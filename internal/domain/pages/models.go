package pages

import (
	"time"

	"orfanato-app/internal/domain/base"
	"orfanato-app/internal/domain/route"
)

// Entity type names stored in routes.entity_type.
const (
	EntityVideosPage  = "VideosPage"
	EntityImagePage   = "ImagesPage"
	EntityIdeasPage   = "IdeasPage"
	EntityDocument    = "Document"
	EntityInformative = "Informative"
	EntityMeditation  = "Meditation"
)

type VideosPage struct {
	base.Model
	Name        string       `gorm:"not null" json:"name"`
	Description string       `gorm:"type:text;not null;default:''" json:"description"`
	Public      bool         `gorm:"not null" json:"public"`
	RouteID     *string      `gorm:"type:uuid;index" json:"-"`
	Route       *route.Route `gorm:"constraint:OnDelete:SET NULL;" json:"route"`
}

type ImagePage struct {
	base.Model
	Name        string         `gorm:"not null" json:"name"`
	Description string         `gorm:"type:text;not null;default:''" json:"description"`
	Public      bool           `gorm:"not null" json:"public"`
	RouteID     *string        `gorm:"type:uuid;index" json:"-"`
	Route       *route.Route   `gorm:"constraint:OnDelete:SET NULL;" json:"route"`
	Sections    []ImageSection `gorm:"foreignKey:PageID;constraint:OnDelete:CASCADE;" json:"-"`
}

type ImageSection struct {
	base.Model
	PageID      string `gorm:"type:uuid;not null;index" json:"pageId"`
	Caption     string `gorm:"not null" json:"caption"`
	Description string `gorm:"type:text;not null;default:''" json:"description"`
	Public      bool   `gorm:"not null" json:"public"`
	SortIndex   int    `gorm:"not null;default:0" json:"sortIndex"`
}

type IdeasPage struct {
	base.Model
	Title       string         `gorm:"not null" json:"title"`
	Subtitle    string         `gorm:"not null;default:''" json:"subtitle"`
	Description string         `gorm:"type:text;not null;default:''" json:"description"`
	Public      bool           `gorm:"not null" json:"public"`
	RouteID     *string        `gorm:"type:uuid;index" json:"-"`
	Route       *route.Route   `gorm:"constraint:OnDelete:SET NULL;" json:"route"`
	Sections    []IdeasSection `gorm:"foreignKey:PageID;constraint:OnDelete:SET NULL;" json:"-"`
}

// IdeasSection may exist on its own and be attached to a page later.
type IdeasSection struct {
	base.Model
	PageID      *string `gorm:"type:uuid;index" json:"pageId"`
	Title       string  `gorm:"not null" json:"title"`
	Description string  `gorm:"type:text;not null;default:''" json:"description"`
	Public      bool    `gorm:"not null" json:"public"`
	SortIndex   int     `gorm:"not null;default:0" json:"sortIndex"`
}

type Document struct {
	base.Model
	Name        string       `gorm:"not null" json:"name"`
	Description string       `gorm:"type:text;not null;default:''" json:"description"`
	RouteID     *string      `gorm:"type:uuid;index" json:"-"`
	Route       *route.Route `gorm:"constraint:OnDelete:SET NULL;" json:"route"`
}

// Informative is a banner shown on the public site.
type Informative struct {
	base.Model
	Title       string       `gorm:"not null" json:"title"`
	Description string       `gorm:"type:text;not null;default:''" json:"description"`
	Public      bool         `gorm:"not null" json:"public"`
	RouteID     *string      `gorm:"type:uuid;index" json:"-"`
	Route       *route.Route `gorm:"constraint:OnDelete:SET NULL;" json:"route"`
}

type Meditation struct {
	base.Model
	Topic     string          `gorm:"not null" json:"topic"`
	StartDate time.Time       `gorm:"not null;index" json:"startDate"`
	EndDate   time.Time       `gorm:"not null;index" json:"endDate"`
	RouteID   *string         `gorm:"type:uuid;index" json:"-"`
	Route     *route.Route    `gorm:"constraint:OnDelete:SET NULL;" json:"route"`
	Days      []MeditationDay `gorm:"foreignKey:MeditationID;constraint:OnDelete:CASCADE;" json:"days"`
}

type MeditationDay struct {
	base.Model
	MeditationID string `gorm:"type:uuid;not null;index" json:"-"`
	Day          string `gorm:"type:varchar(10);not null" json:"day"`
	Verse        string `gorm:"type:text;not null" json:"verse"`
	Topic        string `gorm:"not null" json:"topic"`
}
