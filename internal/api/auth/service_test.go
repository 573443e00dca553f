package auth_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"orfanato-app/internal/api/admin"
	"orfanato-app/internal/api/auth"
	"orfanato-app/internal/apperr"
	"orfanato-app/internal/domain/users"
	"orfanato-app/internal/testutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func TestLogin(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	u, err := admin.NewService(db, zerolog.Nop()).Create(ctx, admin.CreateUserRequest{
		Name: "Carla", Email: "carla@orfanato.org", Password: "abrigo2024", Role: users.RoleTeacher,
	})
	require.NoError(t, err)

	svc := auth.NewService(db, auth.NewIssuer(secret, time.Hour), zerolog.Nop())

	res, err := svc.Login(ctx, " Carla@orfanato.org ", "abrigo2024")
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(res.Token, claims, func(*jwt.Token) (any, error) { return []byte(secret), nil })
	require.NoError(t, err)
	assert.Equal(t, float64(u.ID), claims["user_id"])
	assert.Equal(t, "teacher", claims["role"])
	assert.Equal(t, "carla@orfanato.org", claims["email"])

	_, err = svc.Login(ctx, "carla@orfanato.org", "errada123")
	var ae *apperr.Error
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, http.StatusUnauthorized, ae.Status)
	assert.Equal(t, apperr.CategorySecurity, ae.Category)

	_, err = svc.Login(ctx, "ninguem@orfanato.org", "abrigo2024")
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, http.StatusUnauthorized, ae.Status)

	me, err := svc.Me(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, me.TeacherProfile)
	assert.Empty(t, me.VisibleShelterID)
}

func TestChangePassword(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	u, err := admin.NewService(db, zerolog.Nop()).Create(ctx, admin.CreateUserRequest{
		Name: "Davi", Email: "davi@orfanato.org", Password: "abrigo2024", Role: users.RoleLeader,
	})
	require.NoError(t, err)
	svc := auth.NewService(db, auth.NewIssuer(secret, time.Hour), zerolog.Nop())

	assert.Error(t, svc.ChangePassword(ctx, u.ID, "abrigo2024", "curta"))
	assert.Error(t, svc.ChangePassword(ctx, u.ID, "errada123", "novaSenha2025"))
	require.NoError(t, svc.ChangePassword(ctx, u.ID, "abrigo2024", "novaSenha2025"))

	_, err = svc.Login(ctx, "davi@orfanato.org", "abrigo2024")
	assert.Error(t, err)
	_, err = svc.Login(ctx, "davi@orfanato.org", "novaSenha2025")
	assert.NoError(t, err)
}
