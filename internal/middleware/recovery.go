package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"client-portal-api/internal/auth"
	"client-portal-api/internal/metrics"
	"client-portal-api/internal/response"
)

// Recovery turns a handler panic into a 500 INTERNAL_ERROR.
// The log entry names the route template and, when known, the project and admin involved.
func Recovery(logger *zap.Logger, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			fields := []zap.Field{
				zap.Any("error", rec),
				zap.String("error_type", fmt.Sprintf("%T", rec)),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.String("route", c.FullPath()),
				zap.Stack("stacktrace"),
			}
			if projectID := c.Param("projectId"); projectID != "" {
				fields = append(fields, zap.String("project_id", projectID))
			}
			if session, ok := auth.SessionFromContext(c.Request.Context()); ok {
				fields = append(fields, zap.String("admin_id", session.AdminID.String()))
			}
			logger.Error("Panic recovered", fields...)
			m.RecordPanic(c.FullPath())

			response.AbortWithError(c, http.StatusInternalServerError, response.ErrCodeInternal, "Internal server error")
		}()

		c.Next()
	}
}
