package ideaspages

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
	routePrefix = "ideias_"
	target      = media.TargetIdeasSection
)

type Service struct {
	deps     pagesvc.Deps
	sections *SectionService
}

func NewService(deps pagesvc.Deps, sections *SectionService) *Service {
	return &Service{deps: deps, sections: sections}
}

func (s *Service) Create(ctx context.Context, req CreateRequest, files map[string]*media.File) (*Response, error) {
	page := pages.IdeasPage{
		Title:       req.Title,
		Subtitle:    req.Subtitle,
		Description: req.Description,
		Public:      boolOr(req.Public, true),
	}

	err := s.deps.Create(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&page).Error; err != nil {
			return err
		}
		if _, err := s.deps.AttachRoute(ctx, tx, &page, s.routeFor(page)); err != nil {
			return err
		}
		for i, in := range req.Sections {
			if _, err := s.sections.create(ctx, tx, &page.ID, i, in, files); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.deps.Log.Error().Err(err).Str("title", req.Title).Msg("create ideas page failed")
		return nil, err
	}
	return s.FindOne(ctx, page.ID, false)
}

func (s *Service) routeFor(p pages.IdeasPage) route.Attach {
	return route.Attach{
		Title:       p.Title,
		Subtitle:    p.Subtitle,
		Description: p.Description,
		Prefix:      routePrefix,
		Type:        route.TypePage,
		EntityType:  pages.EntityIdeasPage,
		EntityID:    p.ID,
		Public:      p.Public,
	}
}

func (s *Service) load(ctx context.Context, db *gorm.DB, id string) (*pages.IdeasPage, error) {
	var page pages.IdeasPage
	err := db.WithContext(ctx).
		Preload("Route").
		Preload("Sections", func(db *gorm.DB) *gorm.DB { return db.Order("sort_index ASC") }).
		First(&page, "id = ?", id).Error
	if err != nil {
		return nil, apperr.FromDB(err, "Ideas page")
	}
	return &page, nil
}

func sectionIDs(list ...pages.IdeasPage) []string {
	var ids []string
	for _, p := range list {
		for _, sec := range p.Sections {
			ids = append(ids, sec.ID)
		}
	}
	return ids
}

func (s *Service) FindAll(ctx context.Context, publicOnly bool) ([]Response, error) {
	q := s.deps.DB.WithContext(ctx).
		Preload("Route").
		Preload("Sections", func(db *gorm.DB) *gorm.DB { return db.Order("sort_index ASC") }).
		Order("created_at DESC")
	if publicOnly {
		q = q.Where("public = ?", true)
	}
	var list []pages.IdeasPage
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}
	items, err := s.deps.Media.FindByTargets(ctx, s.deps.DB, sectionIDs(list...), target)
	if err != nil {
		return nil, err
	}
	grouped := media.GroupByTarget(items)

	out := make([]Response, 0, len(list))
	for _, p := range list {
		out = append(out, toResponse(p, grouped, publicOnly))
	}
	return out, nil
}

func (s *Service) FindOne(ctx context.Context, id string, publicOnly bool) (*Response, error) {
	page, err := s.load(ctx, s.deps.DB, id)
	if err != nil {
		return nil, err
	}
	if publicOnly && !page.Public {
		return nil, apperr.NotFound("Ideas page not found")
	}
	items, err := s.deps.Media.FindByTargets(ctx, s.deps.DB, sectionIDs(*page), target)
	if err != nil {
		return nil, err
	}
	resp := toResponse(*page, media.GroupByTarget(items), publicOnly)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateRequest, files map[string]*media.File) (*Response, error) {
	err := s.deps.Mutate(ctx, func(tx *gorm.DB, del media.DeleteFunc) error {
		page, err := s.load(ctx, tx, id)
		if err != nil {
			return err
		}

		if req.Title != nil {
			page.Title = *req.Title
		}
		if req.Subtitle != nil {
			page.Subtitle = *req.Subtitle
		}
		if req.Description != nil {
			page.Description = *req.Description
		}
		if req.Public != nil {
			page.Public = *req.Public
		}
		if err := tx.Omit("Route", "Sections").Save(page).Error; err != nil {
			return err
		}

		if req.Sections != nil {
			if err := s.syncSections(ctx, tx, page, req.Sections, files, del); err != nil {
				return err
			}
		}

		patch := pagesvc.RoutePatch(page.Title, page.Description, &page.Public)
		patch.Subtitle = &page.Subtitle
		_, err = s.deps.SyncRoute(ctx, tx, page, page.RouteID, patch, s.routeFor(*page))
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.FindOne(ctx, id, false)
}

func (s *Service) syncSections(ctx context.Context, tx *gorm.DB, page *pages.IdeasPage, incoming []SectionInput, files map[string]*media.File, del media.DeleteFunc) error {
	current := make(map[string]pages.IdeasSection, len(page.Sections))
	for _, sec := range page.Sections {
		current[sec.ID] = sec
	}

	kept := make(map[string]bool)
	for i, in := range incoming {
		if in.ID == "" {
			if _, err := s.sections.create(ctx, tx, &page.ID, i, in, files); err != nil {
				return err
			}
			continue
		}
		sec, ok := current[in.ID]
		if !ok {
			return apperr.Badf("section %s does not belong to this page", in.ID)
		}
		kept[sec.ID] = true
		if err := s.sections.update(ctx, tx, &sec, i, in, files, del); err != nil {
			return err
		}
	}

	for _, sec := range page.Sections {
		if !kept[sec.ID] {
			if err := s.sections.remove(ctx, tx, sec.ID, del); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Service) Remove(ctx context.Context, id string) error {
	return s.deps.Mutate(ctx, func(tx *gorm.DB, del media.DeleteFunc) error {
		page, err := s.load(ctx, tx, id)
		if err != nil {
			return err
		}
		for _, sec := range page.Sections {
			if err := s.sections.remove(ctx, tx, sec.ID, del); err != nil {
				return err
			}
		}
		if err := s.deps.DetachRoute(ctx, tx, page, page.RouteID, pages.EntityIdeasPage, page.ID); err != nil {
			return err
		}
		return tx.Delete(&pages.IdeasPage{}, "id = ?", page.ID).Error
	})
}
