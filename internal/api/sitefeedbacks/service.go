package sitefeedbacks

import (
	"context"

	"orfanato-app/internal/api/httpx"
	"orfanato-app/internal/apperr"
	"orfanato-app/internal/domain/feedback"

	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

type CreateRequest struct {
	Name     string `json:"name" binding:"required,max=120"`
	Email    string `json:"email" binding:"omitempty,email"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Comment  string `json:"comment" binding:"required,max=2000"`
	Category string `json:"category" binding:"omitempty,oneof=content appearance usability bug suggestion other"`
}

type Filter struct {
	UnreadOnly bool
	Category   string
}

type Service struct {
	db     *gorm.DB
	policy *bluemonday.Policy
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, policy: bluemonday.StrictPolicy()}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*feedback.SiteFeedback, error) {
	category := req.Category
	if category == "" {
		category = "other"
	}
	f := feedback.SiteFeedback{
		Name:     s.policy.Sanitize(req.Name),
		Email:    req.Email,
		Rating:   req.Rating,
		Comment:  s.policy.Sanitize(req.Comment),
		Category: category,
	}
	if err := s.db.WithContext(ctx).Create(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *Service) List(ctx context.Context, f Filter, p httpx.Page) (*httpx.Paged[feedback.SiteFeedback], error) {
	q := s.db.WithContext(ctx).Model(&feedback.SiteFeedback{})
	if f.UnreadOnly {
		q = q.Where("read = ?", false)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}
	items := []feedback.SiteFeedback{}
	if err := q.Order("created_at DESC").Offset(p.Offset()).Limit(p.Limit).Find(&items).Error; err != nil {
		return nil, err
	}
	return &httpx.Paged[feedback.SiteFeedback]{Items: items, Total: total, Page: p.Page, Limit: p.Limit}, nil
}

func (s *Service) MarkRead(ctx context.Context, id string) (*feedback.SiteFeedback, error) {
	var f feedback.SiteFeedback
	if err := s.db.WithContext(ctx).First(&f, "id = ?", id).Error; err != nil {
		return nil, apperr.FromDB(err, "Feedback")
	}
	if err := s.db.WithContext(ctx).Model(&f).Update("read", true).Error; err != nil {
		return nil, err
	}
	f.Read = true
	return &f, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&feedback.SiteFeedback{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Feedback not found")
	}
	return nil
}
