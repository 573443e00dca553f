package meditations

import (
	"context"
	"time"

	"orfanato-app/internal/api/pagesvc"
	"orfanato-app/internal/apperr"
	"orfanato-app/internal/domain/media"
	"orfanato-app/internal/domain/pages"
	"orfanato-app/internal/domain/route"

	"gorm.io/gorm"
)

const (
	routePrefix = "meditacao_"
	target      = media.TargetMeditation
)

type Service struct {
	deps pagesvc.Deps
	now  func() time.Time
}

func NewService(deps pagesvc.Deps) *Service {
	return &Service{deps: deps, now: time.Now}
}

// WithClock replaces the clock used by FindThisWeek.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// checkOverlap rejects a date range intersecting another meditation.
func checkOverlap(tx *gorm.DB, start, end time.Time, exceptID string) error {
	q := tx.Model(&pages.Meditation{}).Where("start_date <= ? AND end_date >= ?", end, start)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return apperr.Conflict("Another meditation already covers this period")
	}
	return nil
}

func (s *Service) Create(ctx context.Context, req CreateRequest, files map[string]*media.File) (*Response, error) {
	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	m := pages.Meditation{Topic: req.Topic, StartDate: start, EndDate: end}

	err = s.deps.Create(ctx, func(tx *gorm.DB) error {
		if err := checkOverlap(tx, start, end, ""); err != nil {
			return err
		}
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		if days := toDays(m.ID, req.Days); len(days) > 0 {
			if err := tx.Create(&days).Error; err != nil {
				return err
			}
		}
		if _, err := s.deps.AttachRoute(ctx, tx, &m, s.routeFor(m)); err != nil {
			return err
		}
		if req.Media == nil {
			return nil
		}
		_, err := s.deps.Media.ProcessPolymorphic(ctx, tx, []media.ItemInput{*req.Media}, m.ID, target, files, s.deps.Upload)
		return err
	})
	if err != nil {
		s.deps.Log.Error().Err(err).Str("topic", req.Topic).Msg("create meditation failed")
		return nil, err
	}
	return s.FindOne(ctx, m.ID)
}

func (s *Service) routeFor(m pages.Meditation) route.Attach {
	return route.Attach{
		Title:       m.Topic,
		Subtitle:    "Meditação da semana",
		Description: m.StartDate.Format(dateLayout) + " a " + m.EndDate.Format(dateLayout),
		Prefix:      routePrefix,
		Type:        route.TypeDoc,
		EntityType:  pages.EntityMeditation,
		EntityID:    m.ID,
		Public:      true,
	}
}

func withDays(db *gorm.DB) *gorm.DB {
	return db.Preload("Route").Preload("Days", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	})
}

func (s *Service) load(ctx context.Context, db *gorm.DB, id string) (*pages.Meditation, error) {
	var m pages.Meditation
	if err := withDays(db.WithContext(ctx)).First(&m, "id = ?", id).Error; err != nil {
		return nil, apperr.FromDB(err, "Meditation")
	}
	return &m, nil
}

func (s *Service) respond(ctx context.Context, m *pages.Meditation) (*Response, error) {
	items, err := s.deps.Media.FindByTarget(ctx, s.deps.DB, m.ID, target)
	if err != nil {
		return nil, err
	}
	resp := toResponse(*m, items)
	return &resp, nil
}

func (s *Service) FindAll(ctx context.Context) ([]Response, error) {
	var list []pages.Meditation
	if err := withDays(s.deps.DB.WithContext(ctx)).Order("start_date DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(list))
	for _, m := range list {
		ids = append(ids, m.ID)
	}
	items, err := s.deps.Media.FindByTargets(ctx, s.deps.DB, ids, target)
	if err != nil {
		return nil, err
	}
	grouped := media.GroupByTarget(items)

	out := make([]Response, 0, len(list))
	for _, m := range list {
		out = append(out, toResponse(m, grouped[m.ID]))
	}
	return out, nil
}

func (s *Service) FindOne(ctx context.Context, id string) (*Response, error) {
	m, err := s.load(ctx, s.deps.DB, id)
	if err != nil {
		return nil, err
	}
	return s.respond(ctx, m)
}

// FindThisWeek returns the meditation whose range contains today.
func (s *Service) FindThisWeek(ctx context.Context) (*Response, error) {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var m pages.Meditation
	err := withDays(s.deps.DB.WithContext(ctx)).
		Where("start_date <= ? AND end_date >= ?", today, today).
		Order("start_date DESC").
		First(&m).Error
	if err != nil {
		return nil, apperr.FromDB(err, "Meditation for this week")
	}
	return s.respond(ctx, &m)
}

func (s *Service) Update(ctx context.Context, id string, req UpdateRequest, files map[string]*media.File) (*Response, error) {
	err := s.deps.Mutate(ctx, func(tx *gorm.DB, del media.DeleteFunc) error {
		m, err := s.load(ctx, tx, id)
		if err != nil {
			return err
		}

		if req.Topic != nil {
			m.Topic = *req.Topic
		}
		if req.StartDate != nil || req.EndDate != nil {
			start, end := m.StartDate.Format(dateLayout), m.EndDate.Format(dateLayout)
			if req.StartDate != nil {
				start = *req.StartDate
			}
			if req.EndDate != nil {
				end = *req.EndDate
			}
			if m.StartDate, m.EndDate, err = parseRange(start, end); err != nil {
				return err
			}
			if err := checkOverlap(tx, m.StartDate, m.EndDate, m.ID); err != nil {
				return err
			}
		}
		if err := tx.Omit("Route", "Days").Save(m).Error; err != nil {
			return err
		}

		if req.Days != nil {
			if err := tx.Where("meditation_id = ?", m.ID).Delete(&pages.MeditationDay{}).Error; err != nil {
				return err
			}
			if days := toDays(m.ID, req.Days); len(days) > 0 {
				if err := tx.Create(&days).Error; err != nil {
					return err
				}
			}
		}

		if req.Media != nil {
			existing, err := s.deps.Media.FindByTarget(ctx, tx, m.ID, target)
			if err != nil {
				return err
			}
			in := *req.Media
			if in.ID == "" && len(existing) > 0 {
				in.ID = existing[0].ID
			}
			if _, err := s.deps.Media.Sync(ctx, tx, existing, []media.ItemInput{in}, m.ID, target, files, s.deps.Upload, del); err != nil {
				return err
			}
		}

		a := s.routeFor(*m)
		patch := pagesvc.RoutePatch(a.Title, a.Description, nil)
		_, err = s.deps.SyncRoute(ctx, tx, m, m.RouteID, patch, a)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.FindOne(ctx, id)
}

func (s *Service) Remove(ctx context.Context, id string) error {
	return s.deps.Mutate(ctx, func(tx *gorm.DB, del media.DeleteFunc) error {
		m, err := s.load(ctx, tx, id)
		if err != nil {
			return err
		}
		items, err := s.deps.Media.FindByTarget(ctx, tx, m.ID, target)
		if err != nil {
			return err
		}
		if err := s.deps.Media.DeleteItems(ctx, tx, items, del); err != nil {
			return err
		}
		if err := tx.Where("meditation_id = ?", m.ID).Delete(&pages.MeditationDay{}).Error; err != nil {
			return err
		}
		if err := s.deps.DetachRoute(ctx, tx, m, m.RouteID, pages.EntityMeditation, m.ID); err != nil {
			return err
		}
		return tx.Delete(&pages.Meditation{}, "id = ?", m.ID).Error
	})
}
