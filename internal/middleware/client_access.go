package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"client-portal-api/internal/response"
	"client-portal-api/internal/service"
)

// PasscodeHeader carries the client's project passcode.
const PasscodeHeader = "X-Project-Passcode"

// ClientAccess admits requests whose passcode header opens the :projectId in the path.
// An unknown project and a wrong passcode both answer 401.
func ClientAccess(passcodes service.PasscodeService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.GetHeader(PasscodeHeader)
		if code == "" {
			response.AbortWithError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Passcode is required")
			return
		}

		projectID, err := uuid.Parse(c.Param("projectId"))
		if err != nil {
			response.AbortWithError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Invalid passcode")
			return
		}

		result, err := passcodes.Verify(c.Request.Context(), projectID, code)
		if err != nil {
			logger.Error("Passcode check failed", zap.String("project_id", projectID.String()), zap.Error(err))
			response.AbortWithError(c, http.StatusInternalServerError, response.ErrCodeGateway, "Failed to verify passcode")
			return
		}
		if !result.Granted {
			response.AbortWithError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Invalid passcode")
			return
		}

		c.Set("project_id", projectID)
		c.Next()
	}
}
