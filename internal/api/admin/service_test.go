package admin_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"orfanato-app/internal/api/admin"
	"orfanato-app/internal/api/httpx"
	"orfanato-app/internal/apperr"
	"orfanato-app/internal/domain/shelters"
	"orfanato-app/internal/domain/users"
	"orfanato-app/internal/testutil"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var ae *apperr.Error
	require.True(t, errors.As(err, &ae), "expected *apperr.Error, got %v", err)
	return ae.Status
}

func TestCreateUser_ProfilesFollowRole(t *testing.T) {
	db := testutil.NewDB(t)
	svc := admin.NewService(db, zerolog.Nop())
	ctx := context.Background()

	leader, err := svc.Create(ctx, admin.CreateUserRequest{
		Name: "Ana", Email: "Ana@Orfanato.org", Password: "abrigo2024", Role: users.RoleLeader,
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@orfanato.org", leader.Email)
	assert.True(t, leader.Active)
	assert.NotEqual(t, "abrigo2024", leader.Password)

	var lp shelters.LeaderProfile
	require.NoError(t, db.Where("user_id = ?", leader.ID).First(&lp).Error)
	assert.True(t, lp.Active)

	_, err = svc.Create(ctx, admin.CreateUserRequest{
		Name: "Outra Ana", Email: "ana@orfanato.org", Password: "abrigo2024", Role: users.RoleTeacher,
	})
	assert.Equal(t, http.StatusConflict, statusOf(t, err))

	_, err = svc.Create(ctx, admin.CreateUserRequest{
		Name: "Fraca", Email: "fraca@orfanato.org", Password: "123", Role: users.RoleTeacher,
	})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	role := users.RoleTeacher
	updated, err := svc.Update(ctx, leader.ID, admin.UpdateUserRequest{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, users.RoleTeacher, updated.Role)

	require.NoError(t, db.Where("user_id = ?", leader.ID).First(&lp).Error)
	assert.False(t, lp.Active)
	var tp shelters.TeacherProfile
	require.NoError(t, db.Where("user_id = ?", leader.ID).First(&tp).Error)
	assert.True(t, tp.Active)
}

func TestListAndDeleteUsers(t *testing.T) {
	db := testutil.NewDB(t)
	svc := admin.NewService(db, zerolog.Nop())
	ctx := context.Background()

	a, err := svc.Create(ctx, admin.CreateUserRequest{Name: "Admin", Email: "admin@orfanato.org", Password: "abrigo2024", Role: users.RoleAdmin})
	require.NoError(t, err)
	b, err := svc.Create(ctx, admin.CreateUserRequest{Name: "Bruno", Email: "bruno@orfanato.org", Password: "abrigo2024", Role: users.RoleTeacher})
	require.NoError(t, err)

	page, err := svc.List(ctx, admin.UserFilter{Search: "bru"}, httpx.Page{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, "Bruno", page.Items[0].Name)

	err = svc.Delete(ctx, a.ID, a.ID)
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	require.NoError(t, svc.Delete(ctx, b.ID, a.ID))
	_, err = svc.Get(ctx, b.ID)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))

	var n int64
	require.NoError(t, db.Model(&shelters.TeacherProfile{}).Count(&n).Error)
	assert.Zero(t, n)
}
