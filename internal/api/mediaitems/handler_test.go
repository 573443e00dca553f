package mediaitems_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"orfanato-app/internal/api/mediaitems"
	"orfanato-app/internal/domain/media"
	"orfanato-app/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListFiltersByTarget(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testutil.NewDB(t)

	pageA, pageB := uuid.NewString(), uuid.NewString()
	rows := []media.Item{
		{TargetID: pageA, TargetType: media.TargetVideosPage, Title: "a1", MediaType: media.MediaVideo, UploadType: media.UploadTypeLink, URL: "https://youtu.be/a1"},
		{TargetID: pageA, TargetType: media.TargetVideosPage, Title: "a2", MediaType: media.MediaVideo, UploadType: media.UploadTypeLink, URL: "https://youtu.be/a2"},
		{TargetID: pageB, TargetType: media.TargetVideosPage, Title: "b1", MediaType: media.MediaVideo, UploadType: media.UploadTypeLink, URL: "https://youtu.be/b1"},
		{TargetID: pageA, TargetType: media.TargetImageSection, Title: "other-type", MediaType: media.MediaImage, UploadType: media.UploadTypeLink, URL: "https://example.com/x.png"},
	}
	for i := range rows {
		require.NoError(t, db.Create(&rows[i]).Error)
	}

	r := gin.New()
	r.GET("/media-items", mediaitems.NewHandler(db, media.NewProcessor(zerolog.Nop())).List)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/media-items?targetType=VideosPage&targetId="+pageA, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var got []media.Item
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	titles := make([]string, 0, len(got))
	for _, it := range got {
		assert.Equal(t, pageA, it.TargetID)
		assert.Equal(t, media.TargetVideosPage, it.TargetType)
		titles = append(titles, it.Title)
	}
	assert.ElementsMatch(t, []string{"a1", "a2"}, titles)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/media-items?targetType=VideosPage&targetId="+uuid.NewString(), nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestListRejectsBadQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testutil.NewDB(t)

	r := gin.New()
	r.GET("/media-items", mediaitems.NewHandler(db, media.NewProcessor(zerolog.Nop())).List)

	for _, q := range []string{
		"?targetType=Banner&targetId=" + uuid.NewString(),
		"?targetId=" + uuid.NewString(),
		"?targetType=VideosPage",
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/media-items"+q, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}
