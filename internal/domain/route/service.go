package route

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Service owns the routes table. Methods that take a *gorm.DB run on it so
// callers can enlist them in their own transaction.
type Service struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewService(db *gorm.DB, log zerolog.Logger) *Service {
	return &Service{db: db, log: log}
}

// GenerateAvailablePath returns prefix+Slugify(title), suffixed with _1, _2...
// until no route uses it.
func (s *Service) GenerateAvailablePath(ctx context.Context, db *gorm.DB, title, prefix string) (string, error) {
	base := prefix + Slugify(title)
	candidate := base
	for i := 1; ; i++ {
		var count int64
		if err := db.WithContext(ctx).Model(&Route{}).Where("path = ?", candidate).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s_%d", base, i)
	}
}

func (s *Service) Create(ctx context.Context, r *Route) error {
	return s.CreateWithTx(ctx, s.db, r)
}

func (s *Service) CreateWithTx(ctx context.Context, tx *gorm.DB, r *Route) error {
	if r.IDToFetch == "" {
		r.IDToFetch = r.EntityID
	}
	return tx.WithContext(ctx).Create(r).Error
}

// Attach describes a route generated for a freshly created entity.
type Attach struct {
	Title       string
	Subtitle    string
	Description string
	Prefix      string
	Type        Type
	EntityType  string
	EntityID    string
	Image       string
	Public      bool
}

// AttachWithTx generates a free path for a.Title and creates the route.
func (s *Service) AttachWithTx(ctx context.Context, tx *gorm.DB, a Attach) (*Route, error) {
	path, err := s.GenerateAvailablePath(ctx, tx, a.Title, a.Prefix)
	if err != nil {
		return nil, err
	}
	r := &Route{
		Title:       a.Title,
		Subtitle:    a.Subtitle,
		Description: a.Description,
		Path:        path,
		Type:        a.Type,
		EntityType:  a.EntityType,
		EntityID:    a.EntityID,
		IDToFetch:   a.EntityID,
		Image:       a.Image,
		Public:      a.Public,
	}
	if err := s.CreateWithTx(ctx, tx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Upsert merges p into the route with the given id, creating it when absent.
func (s *Service) Upsert(ctx context.Context, tx *gorm.DB, id string, p Patch) (*Route, error) {
	var r Route
	err := tx.WithContext(ctx).First(&r, "id = ?", id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		r = Route{Type: TypePage, Public: true}
		r.ID = id
		p.apply(&r)
		if err := s.CreateWithTx(ctx, tx, &r); err != nil {
			return nil, err
		}
		return &r, nil
	case err != nil:
		return nil, err
	}

	p.apply(&r)
	if err := tx.WithContext(ctx).Save(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// Remove deletes a route by id. A missing route is not an error.
func (s *Service) Remove(ctx context.Context, tx *gorm.DB, id string) error {
	if id == "" {
		return nil
	}
	return tx.WithContext(ctx).Where("id = ?", id).Delete(&Route{}).Error
}

// RemoveByEntity deletes every route pointing at the entity.
func (s *Service) RemoveByEntity(ctx context.Context, tx *gorm.DB, entityType, entityID string) error {
	res := tx.WithContext(ctx).Where("entity_type = ? AND entity_id = ?", entityType, entityID).Delete(&Route{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		s.log.Debug().Str("entity_type", entityType).Str("entity_id", entityID).Msg("no route to remove")
	}
	return nil
}

func (s *Service) FindByPath(ctx context.Context, path string) (*Route, error) {
	var r Route
	if err := s.db.WithContext(ctx).First(&r, "path = ?", path).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Service) FindByID(ctx context.Context, id string) (*Route, error) {
	var r Route
	if err := s.db.WithContext(ctx).First(&r, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Service) ListPublic(ctx context.Context, typ Type) ([]Route, error) {
	q := s.db.WithContext(ctx).Where("public = ?", true)
	if typ != "" {
		q = q.Where("type = ?", typ)
	}
	var out []Route
	err := q.Order("title ASC").Find(&out).Error
	return out, err
}
