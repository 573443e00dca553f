package comments_test

import (
	"context"
	"testing"

	"orfanato-app/internal/api/comments"
	"orfanato-app/internal/api/httpx"
	"orfanato-app/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSanitizesAndHides(t *testing.T) {
	db := testutil.NewDB(t)
	svc := comments.NewService(db)
	ctx := context.Background()
	page := httpx.Page{Page: 1, Limit: 20}

	c, err := svc.Create(ctx, comments.CreateRequest{
		Name:    "Ana <b>Souza</b>",
		Comment: `Obrigada!<script>alert(1)</script>`,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", c.Name)
	assert.Equal(t, "Obrigada!", c.Comment)
	assert.False(t, c.Published)

	public, err := svc.List(ctx, true, page)
	require.NoError(t, err)
	assert.Zero(t, public.Total)

	_, err = svc.SetPublished(ctx, c.ID, true)
	require.NoError(t, err)

	public, err = svc.List(ctx, true, page)
	require.NoError(t, err)
	require.Len(t, public.Items, 1)
	assert.True(t, public.Items[0].Published)

	require.NoError(t, svc.Delete(ctx, c.ID))
	assert.Error(t, svc.Delete(ctx, c.ID))
}

func TestCreateRejectsMarkupOnly(t *testing.T) {
	db := testutil.NewDB(t)
	svc := comments.NewService(db)

	_, err := svc.Create(context.Background(), comments.CreateRequest{Name: "x", Comment: "<script>x</script>"})
	assert.Error(t, err)
}
