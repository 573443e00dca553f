package imagepages

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
	routePrefix = "galeria_"
	target      = media.TargetImageSection
)

type Service struct {
	deps pagesvc.Deps
}

func NewService(deps pagesvc.Deps) *Service {
	return &Service{deps: deps}
}

func (s *Service) Create(ctx context.Context, req CreateRequest, files map[string]*media.File) (*Response, error) {
	page := pages.ImagePage{
		Name:        req.Name,
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
			if err := s.createSection(ctx, tx, page.ID, i, in, files); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.deps.Log.Error().Err(err).Str("name", req.Name).Msg("create image page failed")
		return nil, err
	}
	return s.FindOne(ctx, page.ID, false)
}

func (s *Service) createSection(ctx context.Context, tx *gorm.DB, pageID string, idx int, in SectionInput, files map[string]*media.File) error {
	sec := pages.ImageSection{
		PageID:      pageID,
		Caption:     in.Caption,
		Description: in.Description,
		Public:      boolOr(in.Public, true),
		SortIndex:   idx,
	}
	if err := tx.Create(&sec).Error; err != nil {
		return err
	}
	_, err := s.deps.Media.ProcessPolymorphic(ctx, tx, in.MediaItems, sec.ID, target, files, s.deps.Upload)
	return err
}

func (s *Service) routeFor(p pages.ImagePage) route.Attach {
	return route.Attach{
		Title:       p.Name,
		Subtitle:    "Galeria de imagens",
		Description: p.Description,
		Prefix:      routePrefix,
		Type:        route.TypePage,
		EntityType:  pages.EntityImagePage,
		EntityID:    p.ID,
		Public:      p.Public,
	}
}

func sectionsByOrder(db *gorm.DB) *gorm.DB {
	return db.Order("sort_index ASC")
}

func (s *Service) load(ctx context.Context, db *gorm.DB, id string) (*pages.ImagePage, error) {
	var page pages.ImagePage
	err := db.WithContext(ctx).
		Preload("Route").
		Preload("Sections", sectionsByOrder).
		First(&page, "id = ?", id).Error
	if err != nil {
		return nil, apperr.FromDB(err, "Image page")
	}
	return &page, nil
}

func sectionIDs(list ...pages.ImagePage) []string {
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
		Preload("Sections", sectionsByOrder).
		Order("created_at DESC")
	if publicOnly {
		q = q.Where("public = ?", true)
	}
	var list []pages.ImagePage
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
		return nil, apperr.NotFound("Image page not found")
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

		if req.Name != nil {
			page.Name = *req.Name
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

		patch := pagesvc.RoutePatch(page.Name, page.Description, &page.Public)
		_, err = s.deps.SyncRoute(ctx, tx, page, page.RouteID, patch, s.routeFor(*page))
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.FindOne(ctx, id, false)
}

func (s *Service) syncSections(ctx context.Context, tx *gorm.DB, page *pages.ImagePage, incoming []SectionInput, files map[string]*media.File, del media.DeleteFunc) error {
	current := make(map[string]pages.ImageSection, len(page.Sections))
	for _, sec := range page.Sections {
		current[sec.ID] = sec
	}

	kept := make(map[string]bool)
	for i, in := range incoming {
		if in.ID == "" {
			if err := s.createSection(ctx, tx, page.ID, i, in, files); err != nil {
				return err
			}
			continue
		}
		sec, ok := current[in.ID]
		if !ok {
			return apperr.Badf("section %s does not belong to this page", in.ID)
		}
		kept[sec.ID] = true

		sec.Caption = in.Caption
		sec.Description = in.Description
		sec.Public = boolOr(in.Public, sec.Public)
		sec.SortIndex = i
		if err := tx.Save(&sec).Error; err != nil {
			return err
		}

		existing, err := s.deps.Media.FindByTarget(ctx, tx, sec.ID, target)
		if err != nil {
			return err
		}
		if _, err := s.deps.Media.Sync(ctx, tx, existing, in.MediaItems, sec.ID, target, files, s.deps.Upload, del); err != nil {
			return err
		}
	}

	for _, sec := range page.Sections {
		if kept[sec.ID] {
			continue
		}
		if err := s.deleteSection(ctx, tx, sec.ID, del); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) deleteSection(ctx context.Context, tx *gorm.DB, sectionID string, del media.DeleteFunc) error {
	items, err := s.deps.Media.FindByTarget(ctx, tx, sectionID, target)
	if err != nil {
		return err
	}
	if err := s.deps.Media.DeleteItems(ctx, tx, items, del); err != nil {
		return err
	}
	return tx.Delete(&pages.ImageSection{}, "id = ?", sectionID).Error
}

func (s *Service) Remove(ctx context.Context, id string) error {
	return s.deps.Mutate(ctx, func(tx *gorm.DB, del media.DeleteFunc) error {
		page, err := s.load(ctx, tx, id)
		if err != nil {
			return err
		}

		items, err := s.deps.Media.FindByTargets(ctx, tx, sectionIDs(*page), target)
		if err != nil {
			return err
		}
		if err := s.deps.Media.DeleteItems(ctx, tx, items, del); err != nil {
			return err
		}
		if err := tx.Where("page_id = ?", page.ID).Delete(&pages.ImageSection{}).Error; err != nil {
			return err
		}
		if err := s.deps.DetachRoute(ctx, tx, page, page.RouteID, pages.EntityImagePage, page.ID); err != nil {
			return err
		}
		return tx.Delete(&pages.ImagePage{}, "id = ?", page.ID).Error
	})
}
