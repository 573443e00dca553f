package comments

import (
	"context"

	"orfanato-app/internal/api/httpx"
	"orfanato-app/internal/apperr"
	"orfanato-app/internal/domain/feedback"

	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

type CreateRequest struct {
	Name    string `json:"name" binding:"required,max=120"`
	Comment string `json:"comment" binding:"required,max=2000"`
	Shelter string `json:"shelter" binding:"max=255"`
}

type PublishRequest struct {
	Published *bool `json:"published" binding:"required"`
}

type Service struct {
	db     *gorm.DB
	policy *bluemonday.Policy
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, policy: bluemonday.StrictPolicy()}
}

// Create stores a visitor comment. It stays hidden until an admin publishes it.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*feedback.Comment, error) {
	c := feedback.Comment{
		Name:    s.policy.Sanitize(req.Name),
		Comment: s.policy.Sanitize(req.Comment),
		Shelter: s.policy.Sanitize(req.Shelter),
	}
	if c.Name == "" || c.Comment == "" {
		return nil, apperr.BadRequest("name and comment must contain text")
	}
	if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Service) List(ctx context.Context, publishedOnly bool, p httpx.Page) (*httpx.Paged[feedback.Comment], error) {
	q := s.db.WithContext(ctx).Model(&feedback.Comment{})
	if publishedOnly {
		q = q.Where("published = ?", true)
	}
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}
	items := []feedback.Comment{}
	if err := q.Order("created_at DESC").Offset(p.Offset()).Limit(p.Limit).Find(&items).Error; err != nil {
		return nil, err
	}
	return &httpx.Paged[feedback.Comment]{Items: items, Total: total, Page: p.Page, Limit: p.Limit}, nil
}

func (s *Service) SetPublished(ctx context.Context, id string, published bool) (*feedback.Comment, error) {
	var c feedback.Comment
	if err := s.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, apperr.FromDB(err, "Comment")
	}
	c.Published = published
	if err := s.db.WithContext(ctx).Model(&c).Update("published", published).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&feedback.Comment{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Comment not found")
	}
	return nil
}
