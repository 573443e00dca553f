package contacts

import (
	"context"
	"strings"

	"orfanato-app/internal/api/httpx"
	"orfanato-app/internal/apperr"
	"orfanato-app/internal/domain/feedback"

	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

type CreateRequest struct {
	Name    string `json:"name" binding:"required,max=120"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"max=30"`
	Message string `json:"message" binding:"required,max=5000"`
}

type Service struct {
	db     *gorm.DB
	policy *bluemonday.Policy
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, policy: bluemonday.StrictPolicy()}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*feedback.Contact, error) {
	c := feedback.Contact{
		Name:    s.policy.Sanitize(req.Name),
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:   s.policy.Sanitize(req.Phone),
		Message: s.policy.Sanitize(req.Message),
	}
	if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns contacts newest first. unreadOnly narrows to messages nobody
// has marked as read.
func (s *Service) List(ctx context.Context, unreadOnly bool, p httpx.Page) (*httpx.Paged[feedback.Contact], error) {
	q := s.db.WithContext(ctx).Model(&feedback.Contact{})
	if unreadOnly {
		q = q.Where("read = ?", false)
	}
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}
	items := []feedback.Contact{}
	if err := q.Order("created_at DESC").Offset(p.Offset()).Limit(p.Limit).Find(&items).Error; err != nil {
		return nil, err
	}
	return &httpx.Paged[feedback.Contact]{Items: items, Total: total, Page: p.Page, Limit: p.Limit}, nil
}

func (s *Service) MarkRead(ctx context.Context, id string) (*feedback.Contact, error) {
	var c feedback.Contact
	if err := s.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, apperr.FromDB(err, "Contact")
	}
	if err := s.db.WithContext(ctx).Model(&c).Update("read", true).Error; err != nil {
		return nil, err
	}
	c.Read = true
	return &c, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&feedback.Contact{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Contact not found")
	}
	return nil
}
