package feedback

import "orfanato-app/internal/domain/base"

type Comment struct {
	base.Model
	Name      string `gorm:"not null" json:"name"`
	Comment   string `gorm:"type:text;not null" json:"comment"`
	Shelter   string `gorm:"not null;default:''" json:"shelter"`
	Published bool   `gorm:"not null;default:false;index" json:"published"`
}

type Contact struct {
	base.Model
	Name    string `gorm:"not null" json:"name"`
	Email   string `gorm:"not null" json:"email"`
	Phone   string `gorm:"not null;default:''" json:"phone"`
	Message string `gorm:"type:text;not null" json:"message"`
	Read    bool   `gorm:"not null;default:false;index" json:"read"`
}

type SiteFeedback struct {
	base.Model
	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"not null;default:''" json:"email"`
	Rating   int    `gorm:"not null" json:"rating"`
	Comment  string `gorm:"type:text;not null" json:"comment"`
	Category string `gorm:"type:varchar(30);not null;default:'other'" json:"category"`
	Read     bool   `gorm:"not null;default:false;index" json:"read"`
}

func (SiteFeedback) TableName() string { return "site_feedbacks" }
