package apperr

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type Envelope struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Error      string   `json:"error"`
	Category   Category `json:"category"`
	Timestamp  string   `json:"timestamp"`
	Path       string   `json:"path"`
	RetryAfter int      `json:"retryAfter,omitempty"`
}

// Respond writes the error envelope and aborts the chain.
func Respond(c *gin.Context, err error) {
	var ae *Error
	if !errors.As(err, &ae) {
		if errors.Is(err, context.DeadlineExceeded) {
			ae = Timeout()
		} else {
			ae = Internal(err)
		}
	}
	if ae.Category == CategoryServer && ae.Status != http.StatusServiceUnavailable {
		log.Error().Err(ae.Err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("unhandled error")
	}

	if ae.RetryAfter > 0 {
		c.Header("Retry-After", strconv.Itoa(ae.RetryAfter))
	}
	c.AbortWithStatusJSON(ae.Status, EnvelopeFor(ae, c.Request.URL.Path))
}

// EnvelopeFor renders ae as the body sent to clients.
func EnvelopeFor(ae *Error, path string) Envelope {
	return Envelope{
		StatusCode: ae.Status,
		Message:    ae.Error(),
		Error:      http.StatusText(ae.Status),
		Category:   ae.Category,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Path:       path,
		RetryAfter: ae.RetryAfter,
	}
}
