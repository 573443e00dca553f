package sitefeedbacks_test

import (
	"context"
	"testing"

	"orfanato-app/internal/api/httpx"
	"orfanato-app/internal/api/sitefeedbacks"
	"orfanato-app/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedbackLifecycle(t *testing.T) {
	db := testutil.NewDB(t)
	svc := sitefeedbacks.NewService(db)
	ctx := context.Background()
	page := httpx.Page{Page: 1, Limit: 20}

	a, err := svc.Create(ctx, sitefeedbacks.CreateRequest{Name: "Bia", Rating: 5, Comment: "Lindo site"})
	require.NoError(t, err)
	assert.Equal(t, "other", a.Category)
	_, err = svc.Create(ctx, sitefeedbacks.CreateRequest{Name: "Rui", Rating: 2, Comment: "Link quebrado", Category: "bug"})
	require.NoError(t, err)

	bugs, err := svc.List(ctx, sitefeedbacks.Filter{Category: "bug"}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(1), bugs.Total)

	_, err = svc.MarkRead(ctx, a.ID)
	require.NoError(t, err)
	unread, err := svc.List(ctx, sitefeedbacks.Filter{UnreadOnly: true}, page)
	require.NoError(t, err)
	require.Len(t, unread.Items, 1)
	assert.Equal(t, "Rui", unread.Items[0].Name)

	require.NoError(t, svc.Delete(ctx, a.ID))
	_, err = svc.MarkRead(ctx, a.ID)
	assert.Error(t, err)
}

func TestRatingOutOfRangeFailsValidation(t *testing.T) {
	err := httpx.Validate(&sitefeedbacks.CreateRequest{Name: "x", Rating: 6, Comment: "y"})
	assert.Error(t, err)
	err = httpx.Validate(&sitefeedbacks.CreateRequest{Name: "x", Rating: 0, Comment: "y"})
	assert.Error(t, err)
	assert.NoError(t, httpx.Validate(&sitefeedbacks.CreateRequest{Name: "x", Rating: 1, Comment: "y"}))
}
