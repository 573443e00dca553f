package documents

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
	routePrefix = "documento_"
	target      = media.TargetDocument
)

// Service manages documents. Each document owns at most one media item.
type Service struct {
	deps pagesvc.Deps
}

func NewService(deps pagesvc.Deps) *Service {
	return &Service{deps: deps}
}

func (s *Service) Create(ctx context.Context, req CreateRequest, files map[string]*media.File) (*Response, error) {
	doc := pages.Document{Name: req.Name, Description: req.Description}

	err := s.deps.Create(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&doc).Error; err != nil {
			return err
		}
		if _, err := s.deps.AttachRoute(ctx, tx, &doc, s.routeFor(doc)); err != nil {
			return err
		}
		if req.Media == nil {
			return nil
		}
		_, err := s.deps.Media.ProcessPolymorphic(ctx, tx, []media.ItemInput{*req.Media}, doc.ID, target, files, s.deps.Upload)
		return err
	})
	if err != nil {
		s.deps.Log.Error().Err(err).Str("name", req.Name).Msg("create document failed")
		return nil, err
	}
	return s.FindOne(ctx, doc.ID)
}

func (s *Service) routeFor(d pages.Document) route.Attach {
	return route.Attach{
		Title:       d.Name,
		Subtitle:    "Documento",
		Description: d.Description,
		Prefix:      routePrefix,
		Type:        route.TypeDoc,
		EntityType:  pages.EntityDocument,
		EntityID:    d.ID,
		Public:      true,
	}
}

func (s *Service) load(ctx context.Context, db *gorm.DB, id string) (*pages.Document, error) {
	var doc pages.Document
	if err := db.WithContext(ctx).Preload("Route").First(&doc, "id = ?", id).Error; err != nil {
		return nil, apperr.FromDB(err, "Document")
	}
	return &doc, nil
}

func (s *Service) FindAll(ctx context.Context) ([]Response, error) {
	var list []pages.Document
	if err := s.deps.DB.WithContext(ctx).Preload("Route").Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(list))
	for _, d := range list {
		ids = append(ids, d.ID)
	}
	items, err := s.deps.Media.FindByTargets(ctx, s.deps.DB, ids, target)
	if err != nil {
		return nil, err
	}
	grouped := media.GroupByTarget(items)

	out := make([]Response, 0, len(list))
	for _, d := range list {
		out = append(out, toResponse(d, grouped[d.ID]))
	}
	return out, nil
}

func (s *Service) FindOne(ctx context.Context, id string) (*Response, error) {
	doc, err := s.load(ctx, s.deps.DB, id)
	if err != nil {
		return nil, err
	}
	items, err := s.deps.Media.FindByTarget(ctx, s.deps.DB, doc.ID, target)
	if err != nil {
		return nil, err
	}
	resp := toResponse(*doc, items)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateRequest, files map[string]*media.File) (*Response, error) {
	err := s.deps.Mutate(ctx, func(tx *gorm.DB, del media.DeleteFunc) error {
		doc, err := s.load(ctx, tx, id)
		if err != nil {
			return err
		}
		if req.Name != nil {
			doc.Name = *req.Name
		}
		if req.Description != nil {
			doc.Description = *req.Description
		}
		if err := tx.Omit("Route").Save(doc).Error; err != nil {
			return err
		}

		if req.Media != nil {
			existing, err := s.deps.Media.FindByTarget(ctx, tx, doc.ID, target)
			if err != nil {
				return err
			}
			in := *req.Media
			if in.ID == "" && len(existing) > 0 {
				// a document has a single attachment: update it in place
				in.ID = existing[0].ID
			}
			if _, err := s.deps.Media.Sync(ctx, tx, existing, []media.ItemInput{in}, doc.ID, target, files, s.deps.Upload, del); err != nil {
				return err
			}
		}

		patch := pagesvc.RoutePatch(doc.Name, doc.Description, nil)
		_, err = s.deps.SyncRoute(ctx, tx, doc, doc.RouteID, patch, s.routeFor(*doc))
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.FindOne(ctx, id)
}

func (s *Service) Remove(ctx context.Context, id string) error {
	return s.deps.Mutate(ctx, func(tx *gorm.DB, del media.DeleteFunc) error {
		doc, err := s.load(ctx, tx, id)
		if err != nil {
			return err
		}
		items, err := s.deps.Media.FindByTarget(ctx, tx, doc.ID, target)
		if err != nil {
			return err
		}
		if err := s.deps.Media.DeleteItems(ctx, tx, items, del); err != nil {
			return err
		}
		if err := s.deps.DetachRoute(ctx, tx, doc, doc.RouteID, pages.EntityDocument, doc.ID); err != nil {
			return err
		}
		return tx.Delete(&pages.Document{}, "id = ?", doc.ID).Error
	})
}
