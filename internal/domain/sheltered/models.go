package sheltered

import (
	"time"

	"orfanato-app/internal/domain/base"
	"orfanato-app/internal/domain/shelters"
)

type Sheltered struct {
	base.Model
	Name          string            `gorm:"not null;index" json:"name"`
	BirthDate     *time.Time        `json:"birthDate"`
	Gender        string            `gorm:"type:varchar(10);not null;default:''" json:"gender"`
	GuardianName  string            `gorm:"not null;default:''" json:"guardianName"`
	GuardianPhone string            `gorm:"not null;default:''" json:"guardianPhone"`
	JoinedAt      *time.Time        `json:"joinedAt"`
	ShelterID     string            `gorm:"type:uuid;not null;index" json:"shelterId"`
	Shelter       *shelters.Shelter `gorm:"constraint:OnDelete:CASCADE;" json:"shelter,omitempty"`
}

func (Sheltered) TableName() string { return "sheltered" }

// Pagela is the card filled for one visit to a sheltered person. A person has
// at most one pagela per (year, visit).
type Pagela struct {
	base.Model
	ShelteredID      string                   `gorm:"type:uuid;not null;uniqueIndex:idx_pagelas_visit,priority:1" json:"shelteredId"`
	Sheltered        *Sheltered               `gorm:"constraint:OnDelete:CASCADE;" json:"sheltered,omitempty"`
	Year             int                      `gorm:"not null;uniqueIndex:idx_pagelas_visit,priority:2" json:"year"`
	Visit            int                      `gorm:"not null;uniqueIndex:idx_pagelas_visit,priority:3" json:"visit"`
	ReferenceDate    time.Time                `gorm:"not null" json:"referenceDate"`
	Present          bool                     `gorm:"not null;default:false" json:"present"`
	Notes            string                   `gorm:"type:text;not null;default:''" json:"notes"`
	TeacherProfileID *string                  `gorm:"type:uuid;index" json:"teacherProfileId"`
	TeacherProfile   *shelters.TeacherProfile `gorm:"constraint:OnDelete:SET NULL;" json:"-"`
}
