package shelters

import (
	"orfanato-app/internal/domain/shelters"

	"gorm.io/gorm"
)

func teamsWithPeople(db *gorm.DB) *gorm.DB {
	return db.Model(&shelters.Team{}).
		Preload("Leaders.User").
		Preload("Teachers.User").
		Order("number ASC")
}
