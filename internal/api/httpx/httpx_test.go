package httpx_test

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"orfanato-app/internal/api/httpx"
	"orfanato-app/internal/apperr"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pageBody struct {
	Name  string `json:"name" binding:"required,max=10"`
	Kind  string `json:"kind" binding:"omitempty,oneof=a b"`
	Count int    `json:"count"`
}

func contextFor(req *http.Request) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req
	return c
}

func jsonRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func ruleError(t *testing.T, err error) *apperr.Error {
	t.Helper()
	var ae *apperr.Error
	require.True(t, errors.As(err, &ae), "got %v", err)
	assert.Equal(t, http.StatusBadRequest, ae.Status)
	assert.Equal(t, apperr.CategoryRule, ae.Category)
	return ae
}

func TestBindJSON(t *testing.T) {
	var ok pageBody
	require.NoError(t, httpx.BindJSON(contextFor(jsonRequest(`{"name":"Cultos","count":2}`)), &ok))
	assert.Equal(t, "Cultos", ok.Name)
	assert.Equal(t, 2, ok.Count)

	var missing pageBody
	ae := ruleError(t, httpx.BindJSON(contextFor(jsonRequest(`{"kind":"z"}`)), &missing))
	assert.Contains(t, ae.Message, "name is required")
	assert.Contains(t, ae.Message, "kind must be one of [a b]")

	var empty pageBody
	ae = ruleError(t, httpx.BindJSON(contextFor(jsonRequest("")), &empty))
	assert.Equal(t, "request body is empty", ae.Message)

	var broken pageBody
	ae = ruleError(t, httpx.BindJSON(contextFor(jsonRequest(`{"name":`)), &broken))
	assert.Contains(t, ae.Message, "malformed JSON")
}

func multipartRequest(t *testing.T, field, payload string, withFile bool) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField(field, payload))
	if withFile {
		fw, err := w.CreateFormFile("file_0", "capa.png")
		require.NoError(t, err)
		_, err = fw.Write([]byte("\x89PNG\r\n\x1a\nfake"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestBindPayload(t *testing.T) {
	var body pageBody
	files, err := httpx.BindPayload(contextFor(multipartRequest(t, "pageData", `{"name":"Galeria"}`, true)), "pageData", &body, 1<<20)
	require.NoError(t, err)
	assert.Equal(t, "Galeria", body.Name)
	require.Contains(t, files, "file_0")
	assert.Equal(t, "capa.png", files["file_0"].OriginalName)
	assert.Equal(t, "image/png", files["file_0"].ContentType)

	var invalid pageBody
	_, err = httpx.BindPayload(contextFor(multipartRequest(t, "pageData", `{"name":"nome longo demais"}`, false)), "pageData", &invalid, 1<<20)
	ae := ruleError(t, err)
	assert.Contains(t, ae.Message, "name must satisfy max=10")

	var missing pageBody
	_, err = httpx.BindPayload(contextFor(multipartRequest(t, "other", `{}`, false)), "pageData", &missing, 1<<20)
	ae = ruleError(t, err)
	assert.Equal(t, "pageData is required", ae.Message)

	var plain pageBody
	files, err = httpx.BindPayload(contextFor(jsonRequest(`{"name":"Sem arquivo"}`)), "pageData", &plain, 1<<20)
	require.NoError(t, err)
	assert.Empty(t, files)
	assert.Equal(t, "Sem arquivo", plain.Name)
}
