package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"orfanato-app/internal/apperr"
	"orfanato-app/internal/domain/shelters"
	"orfanato-app/internal/domain/users"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var errInvalidCredentials = apperr.Unauthorized("Invalid credentials")

type Service struct {
	db     *gorm.DB
	issuer *Issuer
	log    zerolog.Logger
}

func NewService(db *gorm.DB, issuer *Issuer, log zerolog.Logger) *Service {
	return &Service{db: db, issuer: issuer, log: log}
}

type LoginResult struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expiresAt"`
	User      users.User `json:"user"`
}

func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var u users.User
	err := s.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		s.log.Warn().Uint("user_id", u.ID).Msg("login with wrong password")
		return nil, errInvalidCredentials
	}
	if !u.Active {
		return nil, apperr.Forbidden("User is inactive")
	}

	token, exp, err := s.issuer.Issue(u)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: exp, User: u}, nil
}

type MeResponse struct {
	User             users.User               `json:"user"`
	LeaderProfile    *shelters.LeaderProfile  `json:"leaderProfile,omitempty"`
	TeacherProfile   *shelters.TeacherProfile `json:"teacherProfile,omitempty"`
	VisibleShelterID []string                 `json:"visibleShelterIds,omitempty"`
}

func (s *Service) Me(ctx context.Context, userID uint) (*MeResponse, error) {
	db := s.db.WithContext(ctx)

	var u users.User
	if err := db.First(&u, userID).Error; err != nil {
		return nil, apperr.FromDB(err, "User")
	}
	out := &MeResponse{User: u}

	switch u.Role {
	case users.RoleLeader:
		var p shelters.LeaderProfile
		if err := db.Preload("Teams").Where("user_id = ?", u.ID).First(&p).Error; err == nil {
			out.LeaderProfile = &p
		}
	case users.RoleTeacher:
		var p shelters.TeacherProfile
		if err := db.Preload("Team").Where("user_id = ?", u.ID).First(&p).Error; err == nil {
			out.TeacherProfile = &p
		}
	}

	scope, err := shelters.ScopeFor(ctx, s.db, u.ID, u.Role)
	if err != nil {
		return nil, err
	}
	out.VisibleShelterID = scope.ShelterIDs
	return out, nil
}

// ChangePassword replaces the caller's password after checking the current one.
func (s *Service) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	if !users.PasswordStrong(newPassword) {
		return apperr.BadRequest("New password must be at least 8 characters with letters and numbers")
	}
	var u users.User
	if err := s.db.WithContext(ctx).First(&u, userID).Error; err != nil {
		return apperr.FromDB(err, "User")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(oldPassword)); err != nil {
		return apperr.Unauthorized("Old password is incorrect")
	}
	hashed, err := users.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(&u).Update("password", hashed).Error
}
