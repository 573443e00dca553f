package videopages

import (
	"context"

	"orfanato-app/internal/api/pagesvc"
	"orfanato-app/internal/apperr"
	"orfanato-app/internal/domain/media"
	"orfanato-app/internal/domain/pages"
	"orfanato-app/internal/domain/route"

	"gorm.io/gorm"
)

const (
	routePrefix = "videos_"
	target      = media.TargetVideosPage
)

type Service struct {
	deps pagesvc.Deps
}

func NewService(deps pagesvc.Deps) *Service {
	return &Service{deps: deps}
}

func (s *Service) Create(ctx context.Context, req CreateRequest, files map[string]*media.File) (*Response, error) {
	page := pages.VideosPage{
		Name:        req.Name,
		Description: req.Description,
		Public:      req.Public == nil || *req.Public,
	}

	err := s.deps.Create(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&page).Error; err != nil {
			return err
		}
		if _, err := s.deps.AttachRoute(ctx, tx, &page, s.routeFor(page)); err != nil {
			return err
		}
		_, err := s.deps.Media.ProcessPolymorphic(ctx, tx, req.Videos, page.ID, target, files, s.deps.Upload)
		return err
	})
	if err != nil {
		s.deps.Log.Error().Err(err).Str("name", req.Name).Msg("create videos page failed")
		return nil, err
	}
	return s.FindOne(ctx, page.ID, false)
}

func (s *Service) routeFor(p pages.VideosPage) route.Attach {
	return route.Attach{
		Title:       p.Name,
		Subtitle:    "Página de vídeos",
		Description: p.Description,
		Prefix:      routePrefix,
		Type:        route.TypePage,
		EntityType:  pages.EntityVideosPage,
		EntityID:    p.ID,
		Image:       "",
		Public:      p.Public,
	}
}

func (s *Service) FindAll(ctx context.Context, publicOnly bool) ([]Response, error) {
	q := s.deps.DB.WithContext(ctx).Preload("Route").Order("created_at DESC")
	if publicOnly {
		q = q.Where("public = ?", true)
	}
	var list []pages.VideosPage
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(list))
	for _, p := range list {
		ids = append(ids, p.ID)
	}
	items, err := s.deps.Media.FindByTargets(ctx, s.deps.DB, ids, target)
	if err != nil {
		return nil, err
	}
	byPage := media.GroupByTarget(items)

	out := make([]Response, 0, len(list))
	for _, p := range list {
		out = append(out, toResponse(p, byPage[p.ID]))
	}
	return out, nil
}

func (s *Service) FindOne(ctx context.Context, id string, publicOnly bool) (*Response, error) {
	page, err := s.load(ctx, s.deps.DB, id)
	if err != nil {
		return nil, err
	}
	if publicOnly && !page.Public {
		return nil, apperr.NotFound("Videos page not found")
	}
	videos, err := s.deps.Media.FindByTarget(ctx, s.deps.DB, page.ID, target)
	if err != nil {
		return nil, err
	}
	resp := toResponse(*page, videos)
	return &resp, nil
}

func (s *Service) load(ctx context.Context, db *gorm.DB, id string) (*pages.VideosPage, error) {
	var page pages.VideosPage
	if err := db.WithContext(ctx).Preload("Route").First(&page, "id = ?", id).Error; err != nil {
		return nil, apperr.FromDB(err, "Videos page")
	}
	return &page, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateRequest, files map[string]*media.File) (*Response, error) {
	err := s.deps.Mutate(ctx, func(tx *gorm.DB, del media.DeleteFunc) error {
		page, err := s.load(ctx, tx, id)
		if err != nil {
			return err
		}

		if req.Name != nil {
			page.Name = *req.Name
		}
		if req.Description != nil {
			page.Description = *req.Description
		}
		if req.Public != nil {
			page.Public = *req.Public
		}
		if err := tx.Omit("Route").Save(page).Error; err != nil {
			return err
		}

		if req.Videos != nil {
			existing, err := s.deps.Media.FindByTarget(ctx, tx, page.ID, target)
			if err != nil {
				return err
			}
			if _, err := s.deps.Media.Sync(ctx, tx, existing, req.Videos, page.ID, target, files, s.deps.Upload, del); err != nil {
				return err
			}
		}

		patch := pagesvc.RoutePatch(page.Name, page.Description, &page.Public)
		_, err = s.deps.SyncRoute(ctx, tx, page, page.RouteID, patch, s.routeFor(*page))
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.FindOne(ctx, id, false)
}

func (s *Service) Remove(ctx context.Context, id string) error {
	return s.deps.Mutate(ctx, func(tx *gorm.DB, del media.DeleteFunc) error {
		page, err := s.load(ctx, tx, id)
		if err != nil {
			return err
		}

		videos, err := s.deps.Media.FindByTarget(ctx, tx, page.ID, target)
		if err != nil {
			return err
		}
		if err := s.deps.Media.DeleteItems(ctx, tx, videos, del); err != nil {
			return err
		}
		if err := s.deps.DetachRoute(ctx, tx, page, page.RouteID, pages.EntityVideosPage, page.ID); err != nil {
			return err
		}
		return tx.Delete(&pages.VideosPage{}, "id = ?", page.ID).Error
	})
}
