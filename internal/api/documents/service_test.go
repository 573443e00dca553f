package documents_test

import (
	"context"
	"testing"

	"orfanato-app/internal/api/documents"
	"orfanato-app/internal/domain/media"
	"orfanato-app/internal/domain/route"
	"orfanato-app/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_Lifecycle(t *testing.T) {
	db := testutil.NewDB(t)
	store := &testutil.FakeStorage{}
	svc := documents.NewService(testutil.NewDeps(db, store))
	ctx := context.Background()

	created, err := svc.Create(ctx, documents.CreateRequest{
		Name: "Estatuto Social",
		Media: &media.ItemInput{
			MediaType: media.MediaDocument, UploadType: media.UploadTypeUpload, IsLocalFile: true, FieldKey: "doc",
		},
	}, map[string]*media.File{"doc": testutil.PNG("doc", "estatuto.pdf")})
	require.NoError(t, err)

	assert.Equal(t, "documento_estatuto_social", created.Route.Path)
	assert.Equal(t, route.TypeDoc, created.Route.Type)
	require.NotNil(t, created.Media)
	assert.True(t, created.Media.IsLocalFile)
	oldURL := created.Media.URL

	updated, err := svc.Update(ctx, created.ID, documents.UpdateRequest{
		Media: &media.ItemInput{
			MediaType: media.MediaDocument, UploadType: media.UploadTypeLink, URL: "https://drive.google.com/file/1",
		},
	}, nil)
	require.NoError(t, err)
	require.NotNil(t, updated.Media)
	assert.Equal(t, created.Media.ID, updated.Media.ID)
	assert.False(t, updated.Media.IsLocalFile)
	assert.Equal(t, []string{oldURL}, store.Deleted)

	require.NoError(t, svc.Remove(ctx, created.ID))
	var n int64
	require.NoError(t, db.Model(&route.Route{}).Count(&n).Error)
	assert.Zero(t, n)
	assert.Len(t, store.Deleted, 1, "link media has nothing to delete in storage")
}
