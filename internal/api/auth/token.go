package auth

import (
	"time"

	"orfanato-app/internal/domain/users"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer signs HS256 bearer tokens carrying user_id, email, role and exp.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (i *Issuer) Issue(u users.User) (string, time.Time, error) {
	exp := i.now().Add(i.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": u.ID,
		"email":   u.Email,
		"role":    u.Role,
		"exp":     exp.Unix(),
	})
	s, err := token.SignedString(i.secret)
	return s, exp, err
}
