package middleware

import (
	"fmt"

	"orfanato-app/internal/apperr"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Recovery turns a panic into the SERVER 500 envelope.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Interface("panic", recovered).
			Msg("recovered from panic")
		apperr.Respond(c, apperr.Internal(fmt.Errorf("panic: %v", recovered)))
	})
}
