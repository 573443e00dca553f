// Package httpx holds request helpers shared by the gin handlers.
package httpx

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"orfanato-app/internal/apperr"
	"orfanato-app/internal/domain/media"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	// report json field names so validation messages match the request body
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
	}
}

// Validate runs the binding rules of dst through gin's validator.
func Validate(dst any) error {
	if err := binding.Validator.ValidateStruct(dst); err != nil {
		return apperr.Validation(err)
	}
	return nil
}

func bindError(err error, what string) error {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		return apperr.Validation(err)
	case errors.Is(err, io.EOF):
		return apperr.BadRequest("request body is empty")
	default:
		return apperr.Badf("malformed %s: %v", what, err)
	}
}

// BindJSON binds and validates a JSON body into dst.
func BindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return bindError(err, "JSON")
	}
	return nil
}

// BindPayload reads a content payload. Multipart requests carry the JSON in
// the form field named field and the files in the remaining parts; other
// requests are plain JSON with no files.
func BindPayload(c *gin.Context, field string, dst any, maxBytes int64) (map[string]*media.File, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		return map[string]*media.File{}, BindJSON(c, dst)
	}

	if err := c.Request.ParseMultipartForm(maxBytes); err != nil {
		return nil, apperr.Badf("invalid multipart body: %v", err)
	}
	raw := c.Request.FormValue(field)
	if raw == "" {
		return nil, apperr.Badf("%s is required", field)
	}
	if err := binding.JSON.BindBody([]byte(raw), dst); err != nil {
		return nil, bindError(err, field)
	}

	files, err := readFiles(c.Request.MultipartForm)
	if err != nil {
		return nil, err
	}
	return files, nil
}

// readFiles keeps the first part of every file field.
func readFiles(form *multipart.Form) (map[string]*media.File, error) {
	out := make(map[string]*media.File)
	if form == nil {
		return out, nil
	}
	for name, headers := range form.File {
		if len(headers) == 0 {
			continue
		}
		fh := headers[0]
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("open part %s: %w", name, err)
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("read part %s: %w", name, err)
		}
		ct := fh.Header.Get("Content-Type")
		if ct == "" || ct == "application/octet-stream" {
			ct = http.DetectContentType(data)
		}
		out[name] = &media.File{
			FieldName:    name,
			OriginalName: fh.Filename,
			ContentType:  ct,
			Size:         int64(len(data)),
			Data:         data,
		}
	}
	return out, nil
}

// Identity is the authenticated caller as set by the auth middleware.
type Identity struct {
	UserID uint
	Email  string
	Role   string
}

func (i Identity) IsAdmin() bool { return i.Role == "admin" }

func CurrentIdentity(c *gin.Context) (Identity, error) {
	id := Identity{
		UserID: c.GetUint("user_id"),
		Email:  c.GetString("email"),
		Role:   c.GetString("role"),
	}
	if id.UserID == 0 {
		return Identity{}, apperr.Unauthorized("Unauthorized")
	}
	return id, nil
}

// UintParam parses a numeric path parameter.
func UintParam(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, apperr.Badf("invalid %s", name)
	}
	return uint(v), nil
}

type Page struct {
	Page  int
	Limit int
}

func (p Page) Offset() int { return (p.Page - 1) * p.Limit }

// PageQuery reads ?page=&limit= with defaults 1 and 20, limit capped at 100.
func PageQuery(c *gin.Context) Page {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return Page{Page: page, Limit: limit}
}

type Paged[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

// IsAdmin reports whether the request carries an admin identity. Public
// routes use it to decide whether unpublished content is visible.
func IsAdmin(c *gin.Context) bool {
	return c.GetString("role") == "admin"
}
