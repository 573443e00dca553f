package shelters

import (
	"orfanato-app/internal/domain/base"
	"orfanato-app/internal/domain/users"
)

type Address struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
}

type Shelter struct {
	base.Model
	Name        string  `gorm:"not null;uniqueIndex:idx_shelters_name" json:"name"`
	Description string  `gorm:"type:text;not null;default:''" json:"description"`
	Address     Address `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	Teams       []Team  `gorm:"foreignKey:ShelterID;constraint:OnDelete:CASCADE;" json:"teams,omitempty"`
}

// Team is a numbered group of leaders and teachers serving one shelter.
type Team struct {
	base.Model
	ShelterID   string           `gorm:"type:uuid;not null;uniqueIndex:idx_teams_shelter_number,priority:1" json:"shelterId"`
	Number      int              `gorm:"not null;uniqueIndex:idx_teams_shelter_number,priority:2" json:"number"`
	Description string           `gorm:"not null;default:''" json:"description"`
	Leaders     []LeaderProfile  `gorm:"many2many:team_leaders;" json:"leaders,omitempty"`
	Teachers    []TeacherProfile `gorm:"foreignKey:TeamID" json:"teachers,omitempty"`
}

type LeaderProfile struct {
	base.Model
	UserID uint        `gorm:"not null;uniqueIndex" json:"userId"`
	User   *users.User `gorm:"constraint:OnDelete:CASCADE;" json:"user,omitempty"`
	Active bool        `gorm:"not null" json:"active"`
	Teams  []Team      `gorm:"many2many:team_leaders;" json:"teams,omitempty"`
}

type TeacherProfile struct {
	base.Model
	UserID uint        `gorm:"not null;uniqueIndex" json:"userId"`
	User   *users.User `gorm:"constraint:OnDelete:CASCADE;" json:"user,omitempty"`
	Active bool        `gorm:"not null" json:"active"`
	TeamID *string     `gorm:"type:uuid;index" json:"teamId"`
	Team   *Team       `gorm:"constraint:OnDelete:SET NULL;" json:"team,omitempty"`
}
