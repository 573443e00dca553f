package meditations_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"orfanato-app/internal/api/meditations"
	"orfanato-app/internal/apperr"
	"orfanato-app/internal/domain/pages"
	"orfanato-app/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, today string) *meditations.Service {
	t.Helper()
	db := testutil.NewDB(t)
	now, err := time.Parse("2006-01-02", today)
	require.NoError(t, err)
	return meditations.NewService(testutil.NewDeps(db, &testutil.FakeStorage{})).
		WithClock(func() time.Time { return now.Add(10 * time.Hour) })
}

func week(topic, start, end string) meditations.CreateRequest {
	return meditations.CreateRequest{
		Topic:     topic,
		StartDate: start,
		EndDate:   end,
		Days: []meditations.DayInput{
			{Day: "Monday", Verse: "Salmos 23:1", Topic: "Cuidado"},
			{Day: "Tuesday", Verse: "João 3:16", Topic: "Amor"},
		},
	}
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var ae *apperr.Error
	require.True(t, errors.As(err, &ae), "expected *apperr.Error, got %v", err)
	return ae.Status
}

func TestCreate_WithDaysAndRoute(t *testing.T) {
	svc := newService(t, "2024-03-06")

	out, err := svc.Create(context.Background(), week("Fé e Esperança", "2024-03-04", "2024-03-08"), nil)
	require.NoError(t, err)

	assert.Equal(t, "meditacao_fe_e_esperanca", out.Route.Path)
	assert.Equal(t, "2024-03-04", out.StartDate)
	require.Len(t, out.Days, 2)
	assert.Equal(t, "Monday", out.Days[0].Day)
	assert.Nil(t, out.Media)
}

func TestCreate_RejectsBadRangeAndOverlap(t *testing.T) {
	svc := newService(t, "2024-03-06")
	ctx := context.Background()

	_, err := svc.Create(ctx, week("Invertida", "2024-03-08", "2024-03-04"), nil)
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	_, err = svc.Create(ctx, week("Primeira", "2024-03-04", "2024-03-08"), nil)
	require.NoError(t, err)

	_, err = svc.Create(ctx, week("Sobreposta", "2024-03-07", "2024-03-12"), nil)
	assert.Equal(t, http.StatusConflict, statusOf(t, err))
}

func TestFindThisWeek(t *testing.T) {
	svc := newService(t, "2024-03-13")
	ctx := context.Background()

	_, err := svc.FindThisWeek(ctx)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))

	_, err = svc.Create(ctx, week("Passada", "2024-03-04", "2024-03-08"), nil)
	require.NoError(t, err)
	current, err := svc.Create(ctx, week("Atual", "2024-03-11", "2024-03-15"), nil)
	require.NoError(t, err)

	got, err := svc.FindThisWeek(ctx)
	require.NoError(t, err)
	assert.Equal(t, current.ID, got.ID)
}

func TestUpdateAndRemove(t *testing.T) {
	db := testutil.NewDB(t)
	svc := meditations.NewService(testutil.NewDeps(db, &testutil.FakeStorage{}))
	ctx := context.Background()

	created, err := svc.Create(ctx, week("Original", "2024-03-04", "2024-03-08"), nil)
	require.NoError(t, err)

	topic := "Renovada"
	updated, err := svc.Update(ctx, created.ID, meditations.UpdateRequest{
		Topic: &topic,
		Days:  []meditations.DayInput{{Day: "Friday", Verse: "Rm 8:28", Topic: "Propósito"}},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Renovada", updated.Route.Title)
	assert.Equal(t, created.Route.Path, updated.Route.Path)
	require.Len(t, updated.Days, 1)

	require.NoError(t, svc.Remove(ctx, created.ID))
	var n int64
	require.NoError(t, db.Model(&pages.MeditationDay{}).Count(&n).Error)
	assert.Zero(t, n)
}
