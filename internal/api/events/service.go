package events

import (
	"context"
	"time"

	"orfanato-app/internal/api/pagesvc"
	"orfanato-app/internal/apperr"
	"orfanato-app/internal/domain/events"
	"orfanato-app/internal/domain/media"

	"gorm.io/gorm"
)

const target = media.TargetEvent

// Service manages events. Events have media but no public route.
type Service struct {
	deps pagesvc.Deps
	now  func() time.Time
}

func NewService(deps pagesvc.Deps) *Service {
	return &Service{deps: deps, now: time.Now}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Create(ctx context.Context, req CreateRequest, files map[string]*media.File) (*Response, error) {
	ev := events.Event{
		Title:       req.Title,
		Date:        req.Date.UTC(),
		Location:    req.Location,
		Description: req.Description,
	}
	err := s.deps.Create(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&ev).Error; err != nil {
			return err
		}
		_, err := s.deps.Media.ProcessPolymorphic(ctx, tx, req.MediaItems, ev.ID, target, files, s.deps.Upload)
		return err
	})
	if err != nil {
		s.deps.Log.Error().Err(err).Str("title", req.Title).Msg("create event failed")
		return nil, err
	}
	return s.FindOne(ctx, ev.ID)
}

func (s *Service) load(ctx context.Context, db *gorm.DB, id string) (*events.Event, error) {
	var ev events.Event
	if err := db.WithContext(ctx).First(&ev, "id = ?", id).Error; err != nil {
		return nil, apperr.FromDB(err, "Event")
	}
	return &ev, nil
}

func (s *Service) withMedia(ctx context.Context, list []events.Event) ([]Response, error) {
	ids := make([]string, 0, len(list))
	for _, ev := range list {
		ids = append(ids, ev.ID)
	}
	items, err := s.deps.Media.FindByTargets(ctx, s.deps.DB, ids, target)
	if err != nil {
		return nil, err
	}
	grouped := media.GroupByTarget(items)

	out := make([]Response, 0, len(list))
	for _, ev := range list {
		out = append(out, toResponse(ev, grouped[ev.ID]))
	}
	return out, nil
}

func (s *Service) FindAll(ctx context.Context) ([]Response, error) {
	var list []events.Event
	if err := s.deps.DB.WithContext(ctx).Order("date DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return s.withMedia(ctx, list)
}

// FindUpcoming lists events from today on, soonest first.
func (s *Service) FindUpcoming(ctx context.Context, limit int) ([]Response, error) {
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var list []events.Event
	err := s.deps.DB.WithContext(ctx).
		Where("date >= ?", today).
		Order("date ASC").
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return s.withMedia(ctx, list)
}

func (s *Service) FindOne(ctx context.Context, id string) (*Response, error) {
	ev, err := s.load(ctx, s.deps.DB, id)
	if err != nil {
		return nil, err
	}
	items, err := s.deps.Media.FindByTarget(ctx, s.deps.DB, ev.ID, target)
	if err != nil {
		return nil, err
	}
	resp := toResponse(*ev, items)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateRequest, files map[string]*media.File) (*Response, error) {
	err := s.deps.Mutate(ctx, func(tx *gorm.DB, del media.DeleteFunc) error {
		ev, err := s.load(ctx, tx, id)
		if err != nil {
			return err
		}
		if req.Title != nil {
			ev.Title = *req.Title
		}
		if req.Date != nil {
			ev.Date = req.Date.UTC()
		}
		if req.Location != nil {
			ev.Location = *req.Location
		}
		if req.Description != nil {
			ev.Description = *req.Description
		}
		if err := tx.Save(ev).Error; err != nil {
			return err
		}
		if req.MediaItems == nil {
			return nil
		}
		existing, err := s.deps.Media.FindByTarget(ctx, tx, ev.ID, target)
		if err != nil {
			return err
		}
		_, err = s.deps.Media.Sync(ctx, tx, existing, req.MediaItems, ev.ID, target, files, s.deps.Upload, del)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.FindOne(ctx, id)
}

func (s *Service) Remove(ctx context.Context, id string) error {
	return s.deps.Mutate(ctx, func(tx *gorm.DB, del media.DeleteFunc) error {
		ev, err := s.load(ctx, tx, id)
		if err != nil {
			return err
		}
		items, err := s.deps.Media.FindByTarget(ctx, tx, ev.ID, target)
		if err != nil {
			return err
		}
		if err := s.deps.Media.DeleteItems(ctx, tx, items, del); err != nil {
			return err
		}
		return tx.Delete(&events.Event{}, "id = ?", ev.ID).Error
	})
}
