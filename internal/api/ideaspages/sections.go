package ideaspages

import (
	"context"

	"orfanato-app/internal/api/pagesvc"
	"orfanato-app/internal/apperr"
	"orfanato-app/internal/domain/media"
	"orfanato-app/internal/domain/pages"

	"gorm.io/gorm"
)

// SectionService manages ideas sections, including the ones not yet
// attached to any page.
type SectionService struct {
	deps pagesvc.Deps
}

func NewSectionService(deps pagesvc.Deps) *SectionService {
	return &SectionService{deps: deps}
}

func (s *SectionService) create(ctx context.Context, tx *gorm.DB, pageID *string, idx int, in SectionInput, files map[string]*media.File) (*pages.IdeasSection, error) {
	sec := pages.IdeasSection{
		PageID:      pageID,
		Title:       in.Title,
		Description: in.Description,
		Public:      boolOr(in.Public, true),
		SortIndex:   idx,
	}
	if err := tx.Create(&sec).Error; err != nil {
		return nil, err
	}
	if _, err := s.deps.Media.ProcessPolymorphic(ctx, tx, in.MediaItems, sec.ID, target, files, s.deps.Upload); err != nil {
		return nil, err
	}
	return &sec, nil
}

func (s *SectionService) update(ctx context.Context, tx *gorm.DB, sec *pages.IdeasSection, idx int, in SectionInput, files map[string]*media.File, del media.DeleteFunc) error {
	sec.Title = in.Title
	sec.Description = in.Description
	sec.Public = boolOr(in.Public, sec.Public)
	if idx >= 0 {
		sec.SortIndex = idx
	}
	if err := tx.Save(sec).Error; err != nil {
		return err
	}
	if in.MediaItems == nil {
		return nil
	}
	existing, err := s.deps.Media.FindByTarget(ctx, tx, sec.ID, target)
	if err != nil {
		return err
	}
	_, err = s.deps.Media.Sync(ctx, tx, existing, in.MediaItems, sec.ID, target, files, s.deps.Upload, del)
	return err
}

func (s *SectionService) remove(ctx context.Context, tx *gorm.DB, id string, del media.DeleteFunc) error {
	items, err := s.deps.Media.FindByTarget(ctx, tx, id, target)
	if err != nil {
		return err
	}
	if err := s.deps.Media.DeleteItems(ctx, tx, items, del); err != nil {
		return err
	}
	return tx.Delete(&pages.IdeasSection{}, "id = ?", id).Error
}

func (s *SectionService) load(ctx context.Context, db *gorm.DB, id string) (*pages.IdeasSection, error) {
	var sec pages.IdeasSection
	if err := db.WithContext(ctx).First(&sec, "id = ?", id).Error; err != nil {
		return nil, apperr.FromDB(err, "Ideas section")
	}
	return &sec, nil
}

// Create stores a standalone section.
func (s *SectionService) Create(ctx context.Context, in SectionInput, files map[string]*media.File) (*SectionResponse, error) {
	var id string
	err := s.deps.Create(ctx, func(tx *gorm.DB) error {
		sec, err := s.create(ctx, tx, nil, 0, in, files)
		if err != nil {
			return err
		}
		id = sec.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.FindOne(ctx, id)
}

// FindAll lists sections. orphansOnly restricts it to sections with no page.
func (s *SectionService) FindAll(ctx context.Context, orphansOnly bool) ([]SectionResponse, error) {
	q := s.deps.DB.WithContext(ctx).Order("created_at DESC")
	if orphansOnly {
		q = q.Where("page_id IS NULL")
	}
	var list []pages.IdeasSection
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(list))
	for _, sec := range list {
		ids = append(ids, sec.ID)
	}
	items, err := s.deps.Media.FindByTargets(ctx, s.deps.DB, ids, target)
	if err != nil {
		return nil, err
	}
	grouped := media.GroupByTarget(items)

	out := make([]SectionResponse, 0, len(list))
	for _, sec := range list {
		out = append(out, toSection(sec, grouped[sec.ID]))
	}
	return out, nil
}

func (s *SectionService) FindOne(ctx context.Context, id string) (*SectionResponse, error) {
	sec, err := s.load(ctx, s.deps.DB, id)
	if err != nil {
		return nil, err
	}
	items, err := s.deps.Media.FindByTarget(ctx, s.deps.DB, sec.ID, target)
	if err != nil {
		return nil, err
	}
	resp := toSection(*sec, items)
	return &resp, nil
}

func (s *SectionService) Update(ctx context.Context, id string, in SectionInput, files map[string]*media.File) (*SectionResponse, error) {
	err := s.deps.Mutate(ctx, func(tx *gorm.DB, del media.DeleteFunc) error {
		sec, err := s.load(ctx, tx, id)
		if err != nil {
			return err
		}
		return s.update(ctx, tx, sec, -1, in, files, del)
	})
	if err != nil {
		return nil, err
	}
	return s.FindOne(ctx, id)
}

// Attach moves a section to the end of a page.
func (s *SectionService) Attach(ctx context.Context, id, pageID string) (*SectionResponse, error) {
	err := s.deps.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sec, err := s.load(ctx, tx, id)
		if err != nil {
			return err
		}
		var page pages.IdeasPage
		if err := tx.First(&page, "id = ?", pageID).Error; err != nil {
			return apperr.FromDB(err, "Ideas page")
		}
		var n int64
		if err := tx.Model(&pages.IdeasSection{}).Where("page_id = ?", pageID).Count(&n).Error; err != nil {
			return err
		}
		sec.PageID = &page.ID
		sec.SortIndex = int(n)
		return tx.Save(sec).Error
	})
	if err != nil {
		return nil, err
	}
	return s.FindOne(ctx, id)
}

func (s *SectionService) Remove(ctx context.Context, id string) error {
	return s.deps.Mutate(ctx, func(tx *gorm.DB, del media.DeleteFunc) error {
		if _, err := s.load(ctx, tx, id); err != nil {
			return err
		}
		return s.remove(ctx, tx, id, del)
	})
}
