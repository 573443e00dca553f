package database

import (
	"fmt"
	"time"

	"orfanato-app/internal/domain/events"
	"orfanato-app/internal/domain/feedback"
	"orfanato-app/internal/domain/media"
	"orfanato-app/internal/domain/pages"
	"orfanato-app/internal/domain/route"
	"orfanato-app/internal/domain/sheltered"
	"orfanato-app/internal/domain/shelters"
	"orfanato-app/internal/domain/users"
	"orfanato-app/internal/logging"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Models lists every table in migration order.
func Models() []any {
	return []any{
		// core
		&users.User{},

		// cms
		&route.Route{},
		&media.Item{},
		&pages.VideosPage{},
		&pages.ImagePage{},
		&pages.ImageSection{},
		&pages.IdeasPage{},
		&pages.IdeasSection{},
		&pages.Document{},
		&pages.Informative{},
		&pages.Meditation{},
		&pages.MeditationDay{},
		&events.Event{},

		// shelters
		&shelters.Shelter{},
		&shelters.Team{},
		&shelters.LeaderProfile{},
		&shelters.TeacherProfile{},
		&sheltered.Sheltered{},
		&sheltered.Pagela{},

		// public submissions
		&feedback.Comment{},
		&feedback.Contact{},
		&feedback.SiteFeedback{},
	}
}

func Config(log zerolog.Logger) *gorm.Config {
	return &gorm.Config{
		Logger:         logging.NewGormLogger(log, 200*time.Millisecond),
		TranslateError: true,
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

func InitDB(dsn string, log zerolog.Logger) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), Config(log))
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	log.Info().Msg("connected and migrated")
	return db, nil
}
