package ideaspages_test

import (
	"context"
	"testing"

	"orfanato-app/internal/api/ideaspages"
	"orfanato-app/internal/domain/media"
	"orfanato-app/internal/domain/pages"
	"orfanato-app/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*ideaspages.Service, *ideaspages.SectionService, *gorm.DB, *testutil.FakeStorage) {
	t.Helper()
	db := testutil.NewDB(t)
	store := &testutil.FakeStorage{}
	deps := testutil.NewDeps(db, store)
	sections := ideaspages.NewSectionService(deps)
	return ideaspages.NewService(deps, sections), sections, db, store
}

func TestCreatePage_WithSections(t *testing.T) {
	svc, _, _, store := setup(t)
	files := map[string]*media.File{"f0": testutil.PNG("f0", "pipa.png")}

	out, err := svc.Create(context.Background(), ideaspages.CreateRequest{
		Title:    "Ideias de Março",
		Subtitle: "Atividades",
		Sections: []ideaspages.SectionInput{
			{Title: "Pipa", MediaItems: []media.ItemInput{
				{MediaType: media.MediaImage, UploadType: media.UploadTypeUpload, IsLocalFile: true, FieldKey: "f0"},
			}},
			{Title: "Jogo"},
		},
	}, files)
	require.NoError(t, err)

	assert.Equal(t, "ideias_ideias_de_marco", out.Route.Path)
	assert.Equal(t, "Atividades", out.Route.Subtitle)
	require.Len(t, out.Sections, 2)
	assert.Len(t, out.Sections[0].MediaItems, 1)
	assert.Empty(t, out.Sections[1].MediaItems)
	assert.Len(t, store.Uploaded, 1)
}

func TestStandaloneSection_AttachToPage(t *testing.T) {
	svc, sections, _, _ := setup(t)
	ctx := context.Background()

	page, err := svc.Create(ctx, ideaspages.CreateRequest{
		Title:    "Página",
		Sections: []ideaspages.SectionInput{{Title: "Existente"}},
	}, nil)
	require.NoError(t, err)

	sec, err := sections.Create(ctx, ideaspages.SectionInput{
		Title: "Solta",
		MediaItems: []media.ItemInput{
			{MediaType: media.MediaVideo, UploadType: media.UploadTypeLink, URL: "https://youtube.com/x"},
		},
	}, nil)
	require.NoError(t, err)
	assert.Nil(t, sec.PageID)

	orphans, err := sections.FindAll(ctx, true)
	require.NoError(t, err)
	require.Len(t, orphans, 1)

	attached, err := sections.Attach(ctx, sec.ID, page.ID)
	require.NoError(t, err)
	require.NotNil(t, attached.PageID)
	assert.Equal(t, page.ID, *attached.PageID)

	reloaded, err := svc.FindOne(ctx, page.ID, false)
	require.NoError(t, err)
	require.Len(t, reloaded.Sections, 2)
	assert.Equal(t, "Solta", reloaded.Sections[1].Title)
	assert.Len(t, reloaded.Sections[1].MediaItems, 1)

	orphans, err = sections.FindAll(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, orphans)
}

func TestRemovePage_RemovesSectionsAndMedia(t *testing.T) {
	svc, _, db, store := setup(t)
	ctx := context.Background()
	files := map[string]*media.File{"f0": testutil.PNG("f0", "a.png")}

	page, err := svc.Create(ctx, ideaspages.CreateRequest{
		Title: "Apagar",
		Sections: []ideaspages.SectionInput{{Title: "S", MediaItems: []media.ItemInput{
			{MediaType: media.MediaImage, UploadType: media.UploadTypeUpload, IsLocalFile: true, FieldKey: "f0"},
		}}},
	}, files)
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, page.ID))
	assert.Equal(t, 1, store.DeleteCount())

	var n int64
	require.NoError(t, db.Model(&pages.IdeasSection{}).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, db.Model(&media.Item{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestUpdateSection_KeepsMediaWhenListOmitted(t *testing.T) {
	_, sections, _, _ := setup(t)
	ctx := context.Background()

	sec, err := sections.Create(ctx, ideaspages.SectionInput{
		Title: "Antes",
		MediaItems: []media.ItemInput{
			{MediaType: media.MediaImage, UploadType: media.UploadTypeLink, URL: "https://example.com/i.png"},
		},
	}, nil)
	require.NoError(t, err)

	out, err := sections.Update(ctx, sec.ID, ideaspages.SectionInput{Title: "Depois"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Depois", out.Title)
	assert.Len(t, out.MediaItems, 1)
}
