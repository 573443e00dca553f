package middleware

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"orfanato-app/internal/apperr"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
)

// timeoutWriter lets the timeout path and the handler share one response.
// Once timedOut is set every later handler write is dropped.
type timeoutWriter struct {
	gin.ResponseWriter
	mu       sync.Mutex
	h        http.Header
	copied   bool
	timedOut bool
}

func newTimeoutWriter(w gin.ResponseWriter) *timeoutWriter {
	return &timeoutWriter{ResponseWriter: w, h: w.Header().Clone()}
}

func (w *timeoutWriter) Header() http.Header { return w.h }

func (w *timeoutWriter) copyHeaderLocked() {
	if w.copied {
		return
	}
	dst := w.ResponseWriter.Header()
	for k, v := range w.h {
		dst[k] = v
	}
	w.copied = true
}

func (w *timeoutWriter) WriteHeader(code int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timedOut {
		return
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *timeoutWriter) WriteHeaderNow() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timedOut {
		return
	}
	w.copyHeaderLocked()
	w.ResponseWriter.WriteHeaderNow()
}

func (w *timeoutWriter) Write(b []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timedOut {
		return len(b), nil
	}
	w.copyHeaderLocked()
	return w.ResponseWriter.Write(b)
}

func (w *timeoutWriter) WriteString(s string) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timedOut {
		return len(s), nil
	}
	w.copyHeaderLocked()
	return w.ResponseWriter.WriteString(s)
}

func (w *timeoutWriter) Written() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.timedOut || w.ResponseWriter.Written()
}

// finish hands the handler's headers over when it never wrote a body.
func (w *timeoutWriter) finish() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.timedOut {
		w.copyHeaderLocked()
	}
}

// timeout sends the 503 envelope unless the handler already started its
// response, and drops everything the handler writes afterwards.
func (w *timeoutWriter) timeout(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timedOut {
		return
	}
	w.timedOut = true
	if w.ResponseWriter.Written() {
		return
	}
	out := w.ResponseWriter
	out.WriteHeader(http.StatusServiceUnavailable)
	_ = render.JSON{Data: apperr.EnvelopeFor(apperr.Timeout(), path)}.Render(out)
	out.Flush()
}

// RequestTimeout puts a deadline on the request context and answers 503
// "Request timeout" as soon as it passes, even when the handler ignores the
// context. The handler keeps the gin context until it returns; its late
// writes are discarded.
func RequestTimeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		tw := newTimeoutWriter(c.Writer)
		c.Writer = tw
		defer func() { c.Writer = tw.ResponseWriter }()

		path := c.Request.URL.Path
		finished := make(chan any, 1)
		go func() {
			defer func() { finished <- recover() }()
			c.Next()
		}()

		select {
		case p := <-finished:
			if p != nil {
				panic(p)
			}
			if !tw.Written() && errors.Is(ctx.Err(), context.DeadlineExceeded) {
				tw.timeout(path)
			}
			tw.finish()
			return
		case <-ctx.Done():
		}

		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			tw.timeout(path)
		}
		if p := <-finished; p != nil {
			panic(p)
		}
		c.Abort()
	}
}
