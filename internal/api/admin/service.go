package admin

import (
	"context"
	"errors"
	"strings"

	"orfanato-app/internal/api/httpx"
	"orfanato-app/internal/apperr"
	"orfanato-app/internal/domain/shelters"
	"orfanato-app/internal/domain/users"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const weakPassword = "Password must be at least 8 characters long and contain both letters and numbers"

// Service manages user accounts and keeps the role profiles in step with
// the user's role.
type Service struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewService(db *gorm.DB, log zerolog.Logger) *Service {
	return &Service{db: db, log: log}
}

func (s *Service) List(ctx context.Context, f UserFilter, p httpx.Page) (*httpx.Paged[users.User], error) {
	q := s.db.WithContext(ctx).Model(&users.User{})
	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}
	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}

	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}
	list := []users.User{}
	if err := q.Order("name ASC").Offset(p.Offset()).Limit(p.Limit).Find(&list).Error; err != nil {
		return nil, err
	}
	return &httpx.Paged[users.User]{Items: list, Total: total, Page: p.Page, Limit: p.Limit}, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*users.User, error) {
	var u users.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, apperr.FromDB(err, "User")
	}
	return &u, nil
}

func (s *Service) Create(ctx context.Context, req CreateUserRequest) (*users.User, error) {
	if !users.PasswordStrong(req.Password) {
		return nil, apperr.BadRequest(weakPassword)
	}
	hashed, err := users.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := users.User{
		Name:     req.Name,
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:    req.Phone,
		Password: hashed,
		Role:     req.Role,
		Active:   req.Active == nil || *req.Active,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&u).Error; err != nil {
			return apperr.FromDB(err, "User with this email")
		}
		return ensureProfile(tx, u)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Uint("user_id", u.ID).Str("role", u.Role).Msg("user created")
	return &u, nil
}

// ensureProfile creates the leader or teacher profile of u when missing and
// mirrors the user's active flag onto it.
func ensureProfile(tx *gorm.DB, u users.User) error {
	switch u.Role {
	case users.RoleLeader:
		p := shelters.LeaderProfile{UserID: u.ID}
		if err := tx.Where(shelters.LeaderProfile{UserID: u.ID}).FirstOrCreate(&p).Error; err != nil {
			return err
		}
		return tx.Model(&p).Update("active", u.Active).Error
	case users.RoleTeacher:
		p := shelters.TeacherProfile{UserID: u.ID}
		if err := tx.Where(shelters.TeacherProfile{UserID: u.ID}).FirstOrCreate(&p).Error; err != nil {
			return err
		}
		return tx.Model(&p).Update("active", u.Active).Error
	}
	return nil
}

func (s *Service) Update(ctx context.Context, id uint, req UpdateUserRequest) (*users.User, error) {
	var u users.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&u, id).Error; err != nil {
			return apperr.FromDB(err, "User")
		}
		if req.Name != nil {
			u.Name = *req.Name
		}
		if req.Phone != nil {
			u.Phone = *req.Phone
		}
		if req.Active != nil {
			u.Active = *req.Active
		}
		if req.Password != nil {
			if !users.PasswordStrong(*req.Password) {
				return apperr.BadRequest(weakPassword)
			}
			hashed, err := users.HashPassword(*req.Password)
			if err != nil {
				return err
			}
			u.Password = hashed
		}
		if req.Role != nil && *req.Role != u.Role {
			if err := deactivateProfiles(tx, u.ID); err != nil {
				return err
			}
			u.Role = *req.Role
		}
		if err := tx.Save(&u).Error; err != nil {
			return err
		}
		return ensureProfile(tx, u)
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func deactivateProfiles(tx *gorm.DB, userID uint) error {
	if err := tx.Model(&shelters.LeaderProfile{}).Where("user_id = ?", userID).Update("active", false).Error; err != nil {
		return err
	}
	return tx.Model(&shelters.TeacherProfile{}).Where("user_id = ?", userID).
		Updates(map[string]any{"active": false, "team_id": nil}).Error
}

func (s *Service) Delete(ctx context.Context, id, actorID uint) error {
	if id == actorID {
		return apperr.BadRequest("You cannot delete your own account")
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u users.User
		if err := tx.First(&u, id).Error; err != nil {
			return apperr.FromDB(err, "User")
		}

		var leader shelters.LeaderProfile
		err := tx.Where("user_id = ?", id).First(&leader).Error
		switch {
		case err == nil:
			if err := tx.Model(&leader).Association("Teams").Clear(); err != nil {
				return err
			}
			if err := tx.Delete(&leader).Error; err != nil {
				return err
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		if err := tx.Where("user_id = ?", id).Delete(&shelters.TeacherProfile{}).Error; err != nil {
			return err
		}
		return tx.Delete(&u).Error
	})
}
