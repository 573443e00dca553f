package media_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"orfanato-app/internal/apperr"
	"orfanato-app/internal/domain/media"
	"orfanato-app/internal/testutil"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProcessor() *media.Processor {
	return media.NewProcessor(zerolog.Nop())
}

func TestProcessPolymorphic_LinkNeverUploads(t *testing.T) {
	db := testutil.NewDB(t)
	store := &testutil.FakeStorage{}
	p := newProcessor()
	target := uuid.NewString()

	items, err := p.ProcessPolymorphic(context.Background(), db, []media.ItemInput{{
		Title:      "Culto",
		MediaType:  media.MediaVideo,
		UploadType: media.UploadTypeLink,
		URL:        "https://youtube.com/watch?v=1",
	}}, target, media.TargetVideosPage, nil, store.Upload)

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.False(t, items[0].IsLocalFile)
	assert.Equal(t, "https://youtube.com/watch?v=1", items[0].URL)
	assert.Empty(t, store.Uploaded)

	stored, err := p.FindByTarget(context.Background(), db, target, media.TargetVideosPage)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.False(t, stored[0].IsLocalFile)
}

func TestProcessPolymorphic_UploadsLocalFiles(t *testing.T) {
	db := testutil.NewDB(t)
	store := &testutil.FakeStorage{}
	p := newProcessor()
	target := uuid.NewString()

	files := map[string]*media.File{"file_0": testutil.PNG("file_0", "foto.png")}
	items, err := p.ProcessPolymorphic(context.Background(), db, []media.ItemInput{{
		Title:       "Foto",
		MediaType:   media.MediaImage,
		UploadType:  media.UploadTypeUpload,
		IsLocalFile: true,
		FieldKey:    "file_0",
	}}, target, media.TargetImageSection, files, store.Upload)

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].IsLocalFile)
	assert.Equal(t, store.Uploaded[0], items[0].URL)
	require.NotNil(t, items[0].OriginalName)
	assert.Equal(t, "foto.png", *items[0].OriginalName)
	require.NotNil(t, items[0].Size)
	assert.Equal(t, files["file_0"].Size, *items[0].Size)
}

func TestProcessPolymorphic_FileFieldFallback(t *testing.T) {
	db := testutil.NewDB(t)
	store := &testutil.FakeStorage{}

	files := map[string]*media.File{"doc": testutil.PNG("doc", "a.pdf")}
	items, err := newProcessor().ProcessPolymorphic(context.Background(), db, []media.ItemInput{{
		MediaType:   media.MediaDocument,
		UploadType:  media.UploadTypeUpload,
		IsLocalFile: true,
		FileField:   "doc",
	}}, uuid.NewString(), media.TargetDocument, files, store.Upload)

	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Len(t, store.Uploaded, 1)
}

func TestProcessPolymorphic_MissingFileIsBadRequest(t *testing.T) {
	db := testutil.NewDB(t)
	store := &testutil.FakeStorage{}
	target := uuid.NewString()

	_, err := newProcessor().ProcessPolymorphic(context.Background(), db, []media.ItemInput{
		{MediaType: media.MediaImage, UploadType: media.UploadTypeLink, URL: "https://example.com/a.png"},
		{MediaType: media.MediaImage, UploadType: media.UploadTypeUpload, IsLocalFile: true, FieldKey: "missing"},
	}, target, media.TargetImageSection, map[string]*media.File{}, store.Upload)

	var ae *apperr.Error
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, http.StatusBadRequest, ae.Status)
	assert.Equal(t, apperr.CategoryRule, ae.Category)
	assert.Empty(t, store.Uploaded)

	var count int64
	require.NoError(t, db.Model(&media.Item{}).Where("target_id = ?", target).Count(&count).Error)
	assert.Zero(t, count)
}

func TestProcessPolymorphic_UploadFailureStopsProcessing(t *testing.T) {
	db := testutil.NewDB(t)
	store := &testutil.FakeStorage{FailUpload: errors.New("failed to upload file")}
	target := uuid.NewString()

	files := map[string]*media.File{"f": testutil.PNG("f", "a.png")}
	_, err := newProcessor().ProcessPolymorphic(context.Background(), db, []media.ItemInput{
		{MediaType: media.MediaImage, UploadType: media.UploadTypeUpload, IsLocalFile: true, FieldKey: "f"},
	}, target, media.TargetEvent, files, store.Upload)
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&media.Item{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestFindByTargets_GroupsByTarget(t *testing.T) {
	db := testutil.NewDB(t)
	store := &testutil.FakeStorage{}
	p := newProcessor()
	ctx := context.Background()
	a, b := uuid.NewString(), uuid.NewString()

	link := func(url string) []media.ItemInput {
		return []media.ItemInput{{MediaType: media.MediaImage, UploadType: media.UploadTypeLink, URL: url}}
	}
	_, err := p.ProcessPolymorphic(ctx, db, append(link("u1"), link("u2")...), a, media.TargetIdeasSection, nil, store.Upload)
	require.NoError(t, err)
	_, err = p.ProcessPolymorphic(ctx, db, link("u3"), b, media.TargetIdeasSection, nil, store.Upload)
	require.NoError(t, err)
	// same id, different type: must not leak in
	_, err = p.ProcessPolymorphic(ctx, db, link("u4"), a, media.TargetEvent, nil, store.Upload)
	require.NoError(t, err)

	items, err := p.FindByTargets(ctx, db, []string{a, b}, media.TargetIdeasSection)
	require.NoError(t, err)
	grouped := media.GroupByTarget(items)
	assert.Len(t, grouped[a], 2)
	assert.Len(t, grouped[b], 1)

	none, err := p.FindByTargets(ctx, db, nil, media.TargetIdeasSection)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDeleteItems_BestEffortStorageAndSingleBatch(t *testing.T) {
	db := testutil.NewDB(t)
	store := &testutil.FakeStorage{}
	p := newProcessor()
	ctx := context.Background()
	target := uuid.NewString()

	files := map[string]*media.File{
		"a": testutil.PNG("a", "a.png"),
		"b": testutil.PNG("b", "b.png"),
	}
	items, err := p.ProcessPolymorphic(ctx, db, []media.ItemInput{
		{MediaType: media.MediaImage, UploadType: media.UploadTypeUpload, IsLocalFile: true, FieldKey: "a"},
		{MediaType: media.MediaImage, UploadType: media.UploadTypeUpload, IsLocalFile: true, FieldKey: "b"},
		{MediaType: media.MediaVideo, UploadType: media.UploadTypeLink, URL: "https://youtube.com/x"},
	}, target, media.TargetVideosPage, files, store.Upload)
	require.NoError(t, err)

	store.FailDelete = errors.New("s3 down")
	require.NoError(t, p.DeleteItems(ctx, db, items, store.Delete))

	assert.LessOrEqual(t, store.DeleteCount(), len(items))
	assert.Equal(t, 2, store.DeleteCount())

	var count int64
	require.NoError(t, db.Model(&media.Item{}).Where("target_id = ?", target).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSync_KeepsUpdatesDeletesAndCreates(t *testing.T) {
	db := testutil.NewDB(t)
	store := &testutil.FakeStorage{}
	p := newProcessor()
	ctx := context.Background()
	target := uuid.NewString()

	files := map[string]*media.File{"a": testutil.PNG("a", "a.png")}
	existing, err := p.ProcessPolymorphic(ctx, db, []media.ItemInput{
		{Title: "keep", MediaType: media.MediaImage, UploadType: media.UploadTypeUpload, IsLocalFile: true, FieldKey: "a"},
		{Title: "drop", MediaType: media.MediaImage, UploadType: media.UploadTypeLink, URL: "https://example.com/d.png"},
	}, target, media.TargetImageSection, files, store.Upload)
	require.NoError(t, err)

	keep := existing[0]
	out, err := p.Sync(ctx, db, existing, []media.ItemInput{
		{ID: keep.ID, Title: "renamed", MediaType: media.MediaImage, UploadType: media.UploadTypeUpload, IsLocalFile: true, FieldKey: "a-unused"},
		{Title: "new", MediaType: media.MediaImage, UploadType: media.UploadTypeLink, URL: "https://example.com/n.png"},
	}, target, media.TargetImageSection, nil, store.Upload, store.Delete)
	require.NoError(t, err)
	require.Len(t, out, 2)

	stored, err := p.FindByTarget(ctx, db, target, media.TargetImageSection)
	require.NoError(t, err)
	require.Len(t, stored, 2)

	titles := map[string]string{}
	for _, it := range stored {
		titles[it.Title] = it.URL
	}
	assert.Equal(t, keep.URL, titles["renamed"], "file kept when no new part is sent")
	assert.Equal(t, "https://example.com/n.png", titles["new"])
	assert.NotContains(t, titles, "drop")
	// the dropped item was a link, nothing to delete in storage
	assert.Zero(t, store.DeleteCount())
}

func TestSync_RejectsForeignItem(t *testing.T) {
	db := testutil.NewDB(t)
	store := &testutil.FakeStorage{}

	_, err := newProcessor().Sync(context.Background(), db, nil, []media.ItemInput{
		{ID: uuid.NewString(), MediaType: media.MediaImage, UploadType: media.UploadTypeLink, URL: "x"},
	}, uuid.NewString(), media.TargetImageSection, nil, store.Upload, store.Delete)

	var ae *apperr.Error
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, http.StatusBadRequest, ae.Status)
}

func TestDeferredDeletes_FlushRunsAfterwards(t *testing.T) {
	store := &testutil.FakeStorage{FailDelete: errors.New("boom")}
	q := media.NewDeferredDeletes(store.Delete, zerolog.Nop())

	require.NoError(t, q.Delete(context.Background(), "u1"))
	require.NoError(t, q.Delete(context.Background(), "u2"))
	assert.Zero(t, store.DeleteCount())
	assert.Equal(t, []string{"u1", "u2"}, q.Pending())

	q.Flush(context.Background())
	assert.Equal(t, 2, store.DeleteCount())
	assert.Empty(t, q.Pending())
}
