package sheltered

import (
	"context"
	"strings"

	"orfanato-app/internal/api/httpx"
	"orfanato-app/internal/apperr"
	"orfanato-app/internal/domain/sheltered"
	"orfanato-app/internal/domain/shelters"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Service manages sheltered people. Every operation is limited to the
// shelters visible to the caller.
type Service struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewService(db *gorm.DB, log zerolog.Logger) *Service {
	return &Service{db: db, log: log}
}

var errNoAccess = apperr.Forbidden("Access denied to this shelter")

func (s *Service) List(ctx context.Context, who httpx.Identity, f Filter, p httpx.Page) (*httpx.Paged[sheltered.Sheltered], error) {
	sc, err := shelters.ScopeFor(ctx, s.db, who.UserID, who.Role)
	if err != nil {
		return nil, err
	}
	q := sc.Apply(s.db.WithContext(ctx).Model(&sheltered.Sheltered{}), "shelter_id")
	if f.ShelterID != "" {
		q = q.Where("shelter_id = ?", f.ShelterID)
	}
	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(guardian_name) LIKE ?", like, like)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}
	list := []sheltered.Sheltered{}
	if err := q.Preload("Shelter").Order("name ASC").Offset(p.Offset()).Limit(p.Limit).Find(&list).Error; err != nil {
		return nil, err
	}
	return &httpx.Paged[sheltered.Sheltered]{Items: list, Total: total, Page: p.Page, Limit: p.Limit}, nil
}

// Load fetches one sheltered person and checks the caller may see them.
func (s *Service) Load(ctx context.Context, db *gorm.DB, who httpx.Identity, id string) (*sheltered.Sheltered, error) {
	var sh sheltered.Sheltered
	if err := db.WithContext(ctx).Preload("Shelter").First(&sh, "id = ?", id).Error; err != nil {
		return nil, apperr.FromDB(err, "Sheltered")
	}
	sc, err := shelters.ScopeFor(ctx, db, who.UserID, who.Role)
	if err != nil {
		return nil, err
	}
	if !sc.Allows(sh.ShelterID) {
		return nil, errNoAccess
	}
	return &sh, nil
}

func (s *Service) Get(ctx context.Context, who httpx.Identity, id string) (*sheltered.Sheltered, error) {
	return s.Load(ctx, s.db, who, id)
}

func (s *Service) checkShelter(ctx context.Context, who httpx.Identity, shelterID string) error {
	if err := s.db.WithContext(ctx).First(&shelters.Shelter{}, "id = ?", shelterID).Error; err != nil {
		return apperr.FromDB(err, "Shelter")
	}
	sc, err := shelters.ScopeFor(ctx, s.db, who.UserID, who.Role)
	if err != nil {
		return err
	}
	if !sc.Allows(shelterID) {
		return errNoAccess
	}
	return nil
}

func apply(sh *sheltered.Sheltered, req Request) {
	sh.Name = req.Name
	sh.BirthDate = req.BirthDate
	sh.Gender = req.Gender
	sh.GuardianName = req.GuardianName
	sh.GuardianPhone = req.GuardianPhone
	sh.JoinedAt = req.JoinedAt
	sh.ShelterID = req.ShelterID
}

func (s *Service) Create(ctx context.Context, who httpx.Identity, req Request) (*sheltered.Sheltered, error) {
	if err := s.checkShelter(ctx, who, req.ShelterID); err != nil {
		return nil, err
	}
	var sh sheltered.Sheltered
	apply(&sh, req)
	if err := s.db.WithContext(ctx).Create(&sh).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx, who, sh.ID)
}

func (s *Service) Update(ctx context.Context, who httpx.Identity, id string, req Request) (*sheltered.Sheltered, error) {
	sh, err := s.Load(ctx, s.db, who, id)
	if err != nil {
		return nil, err
	}
	if req.ShelterID != sh.ShelterID {
		if err := s.checkShelter(ctx, who, req.ShelterID); err != nil {
			return nil, err
		}
	}
	apply(sh, req)
	if err := s.db.WithContext(ctx).Omit("Shelter").Save(sh).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx, who, id)
}

func (s *Service) Delete(ctx context.Context, who httpx.Identity, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sh, err := s.Load(ctx, tx, who, id)
		if err != nil {
			return err
		}
		if err := tx.Where("sheltered_id = ?", sh.ID).Delete(&sheltered.Pagela{}).Error; err != nil {
			return err
		}
		return tx.Delete(&sheltered.Sheltered{}, "id = ?", sh.ID).Error
	})
}
