package pagelas

import (
	"context"
	"errors"
	"time"

	"orfanato-app/internal/api/httpx"
	shelteredapi "orfanato-app/internal/api/sheltered"
	"orfanato-app/internal/apperr"
	"orfanato-app/internal/domain/sheltered"
	"orfanato-app/internal/domain/shelters"
	"orfanato-app/internal/domain/users"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// Service manages pagelas. Access follows the sheltered person's shelter.
type Service struct {
	db        *gorm.DB
	sheltered *shelteredapi.Service
	log       zerolog.Logger
}

func NewService(db *gorm.DB, sheltered *shelteredapi.Service, log zerolog.Logger) *Service {
	return &Service{db: db, sheltered: sheltered, log: log}
}

func (s *Service) teacherProfileID(ctx context.Context, who httpx.Identity) (*string, error) {
	if who.Role != users.RoleTeacher {
		return nil, nil
	}
	var p shelters.TeacherProfile
	err := s.db.WithContext(ctx).Where("user_id = ?", who.UserID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Forbidden("Teacher profile not found")
	}
	if err != nil {
		return nil, err
	}
	return &p.ID, nil
}

// Create inserts a pagela. The (sheltered, year, visit) unique index makes a
// second card for the same visit a 409.
func (s *Service) Create(ctx context.Context, who httpx.Identity, req CreateRequest) (*sheltered.Pagela, error) {
	if _, err := s.sheltered.Load(ctx, s.db, who, req.ShelteredID); err != nil {
		return nil, err
	}
	ref, err := time.Parse(dateLayout, req.ReferenceDate)
	if err != nil {
		return nil, apperr.Badf("invalid referenceDate %q", req.ReferenceDate)
	}
	teacherID, err := s.teacherProfileID(ctx, who)
	if err != nil {
		return nil, err
	}

	p := sheltered.Pagela{
		ShelteredID:      req.ShelteredID,
		Year:             req.Year,
		Visit:            req.Visit,
		ReferenceDate:    ref,
		Present:          req.Present,
		Notes:            req.Notes,
		TeacherProfileID: teacherID,
	}
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("A pagela for this visit already exists")
		}
		return nil, err
	}
	return &p, nil
}

func (s *Service) List(ctx context.Context, who httpx.Identity, f Filter) ([]sheltered.Pagela, error) {
	if f.ShelteredID == "" {
		return nil, apperr.BadRequest("shelteredId is required")
	}
	if _, err := s.sheltered.Load(ctx, s.db, who, f.ShelteredID); err != nil {
		return nil, err
	}
	q := s.db.WithContext(ctx).Where("sheltered_id = ?", f.ShelteredID)
	if f.Year > 0 {
		q = q.Where("year = ?", f.Year)
	}
	out := []sheltered.Pagela{}
	err := q.Order("year DESC, visit DESC").Find(&out).Error
	return out, err
}

func (s *Service) load(ctx context.Context, who httpx.Identity, id string) (*sheltered.Pagela, error) {
	var p sheltered.Pagela
	if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, apperr.FromDB(err, "Pagela")
	}
	if _, err := s.sheltered.Load(ctx, s.db, who, p.ShelteredID); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) Get(ctx context.Context, who httpx.Identity, id string) (*sheltered.Pagela, error) {
	return s.load(ctx, who, id)
}

func (s *Service) Update(ctx context.Context, who httpx.Identity, id string, req UpdateRequest) (*sheltered.Pagela, error) {
	p, err := s.load(ctx, who, id)
	if err != nil {
		return nil, err
	}
	if req.ReferenceDate != nil {
		ref, err := time.Parse(dateLayout, *req.ReferenceDate)
		if err != nil {
			return nil, apperr.Badf("invalid referenceDate %q", *req.ReferenceDate)
		}
		p.ReferenceDate = ref
	}
	if req.Present != nil {
		p.Present = *req.Present
	}
	if req.Notes != nil {
		p.Notes = *req.Notes
	}
	if err := s.db.WithContext(ctx).Save(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, who httpx.Identity, id string) error {
	p, err := s.load(ctx, who, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(p).Error
}
