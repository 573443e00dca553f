package pagelas_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"orfanato-app/internal/api/httpx"
	"orfanato-app/internal/api/pagelas"
	shelteredapi "orfanato-app/internal/api/sheltered"
	"orfanato-app/internal/apperr"
	"orfanato-app/internal/domain/sheltered"
	"orfanato-app/internal/domain/users"
	"orfanato-app/internal/testutil"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func who(u users.User) httpx.Identity {
	return httpx.Identity{UserID: u.ID, Email: u.Email, Role: u.Role}
}

func TestCreate_DuplicateVisitIsConflict(t *testing.T) {
	db := testutil.NewDB(t)
	staff := testutil.SeedStaff(t, db)
	log := zerolog.Nop()
	svc := pagelas.NewService(db, shelteredapi.NewService(db, log), log)
	ctx := context.Background()

	kid := sheltered.Sheltered{Name: "Joana", ShelterID: staff.ShelterA.ID}
	require.NoError(t, db.Create(&kid).Error)

	req := pagelas.CreateRequest{ShelteredID: kid.ID, Year: 2024, Visit: 3, ReferenceDate: "2024-03-16", Present: true}
	first, err := svc.Create(ctx, who(staff.Teacher), req)
	require.NoError(t, err)
	require.NotNil(t, first.TeacherProfileID)
	assert.Equal(t, staff.TeacherProfile.ID, *first.TeacherProfileID)

	_, err = svc.Create(ctx, who(staff.Leader), req)
	var ae *apperr.Error
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, http.StatusConflict, ae.Status)
	assert.Equal(t, apperr.CategoryBusiness, ae.Category)

	var n int64
	require.NoError(t, db.Model(&sheltered.Pagela{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)

	req.Visit = 4
	_, err = svc.Create(ctx, who(staff.Leader), req)
	require.NoError(t, err)

	list, err := svc.List(ctx, who(staff.Teacher), pagelas.Filter{ShelteredID: kid.ID, Year: 2024})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 4, list[0].Visit)
}

func TestTeacherOutsideShelterIsForbidden(t *testing.T) {
	db := testutil.NewDB(t)
	staff := testutil.SeedStaff(t, db)
	log := zerolog.Nop()
	svc := pagelas.NewService(db, shelteredapi.NewService(db, log), log)

	kid := sheltered.Sheltered{Name: "Lucas", ShelterID: staff.ShelterB.ID}
	require.NoError(t, db.Create(&kid).Error)

	_, err := svc.Create(context.Background(), who(staff.Teacher), pagelas.CreateRequest{
		ShelteredID: kid.ID, Year: 2024, Visit: 1, ReferenceDate: "2024-01-06",
	})
	var ae *apperr.Error
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, http.StatusForbidden, ae.Status)

	var n int64
	require.NoError(t, db.Model(&sheltered.Pagela{}).Count(&n).Error)
	assert.Zero(t, n)
}
