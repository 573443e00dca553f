package informatives

import (
	"context"

	"orfanato-app/internal/api/pagesvc"
	"orfanato-app/internal/apperr"
	"orfanato-app/internal/domain/pages"
	"orfanato-app/internal/domain/route"

	"gorm.io/gorm"
)

const routePrefix = "informativo_"

// Service manages informative banners. They carry no media.
type Service struct {
	deps pagesvc.Deps
}

func NewService(deps pagesvc.Deps) *Service {
	return &Service{deps: deps}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*Response, error) {
	inf := pages.Informative{
		Title:       req.Title,
		Description: req.Description,
		Public:      req.Public == nil || *req.Public,
	}
	err := s.deps.Create(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&inf).Error; err != nil {
			return err
		}
		_, err := s.deps.AttachRoute(ctx, tx, &inf, s.routeFor(inf))
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.FindOne(ctx, inf.ID, false)
}

func (s *Service) routeFor(i pages.Informative) route.Attach {
	return route.Attach{
		Title:       i.Title,
		Subtitle:    "Informativo",
		Description: i.Description,
		Prefix:      routePrefix,
		Type:        route.TypeOther,
		EntityType:  pages.EntityInformative,
		EntityID:    i.ID,
		Public:      i.Public,
	}
}

func (s *Service) load(ctx context.Context, db *gorm.DB, id string) (*pages.Informative, error) {
	var inf pages.Informative
	if err := db.WithContext(ctx).Preload("Route").First(&inf, "id = ?", id).Error; err != nil {
		return nil, apperr.FromDB(err, "Informative")
	}
	return &inf, nil
}

func (s *Service) FindAll(ctx context.Context, publicOnly bool) ([]Response, error) {
	q := s.deps.DB.WithContext(ctx).Preload("Route").Order("created_at DESC")
	if publicOnly {
		q = q.Where("public = ?", true)
	}
	out := []Response{}
	err := q.Find(&out).Error
	return out, err
}

func (s *Service) FindOne(ctx context.Context, id string, publicOnly bool) (*Response, error) {
	inf, err := s.load(ctx, s.deps.DB, id)
	if err != nil {
		return nil, err
	}
	if publicOnly && !inf.Public {
		return nil, apperr.NotFound("Informative not found")
	}
	return inf, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Response, error) {
	err := s.deps.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inf, err := s.load(ctx, tx, id)
		if err != nil {
			return err
		}
		if req.Title != nil {
			inf.Title = *req.Title
		}
		if req.Description != nil {
			inf.Description = *req.Description
		}
		if req.Public != nil {
			inf.Public = *req.Public
		}
		if err := tx.Omit("Route").Save(inf).Error; err != nil {
			return err
		}
		patch := pagesvc.RoutePatch(inf.Title, inf.Description, &inf.Public)
		_, err = s.deps.SyncRoute(ctx, tx, inf, inf.RouteID, patch, s.routeFor(*inf))
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.FindOne(ctx, id, false)
}

func (s *Service) Remove(ctx context.Context, id string) error {
	return s.deps.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inf, err := s.load(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := s.deps.DetachRoute(ctx, tx, inf, inf.RouteID, pages.EntityInformative, inf.ID); err != nil {
			return err
		}
		return tx.Delete(&pages.Informative{}, "id = ?", inf.ID).Error
	})
}
