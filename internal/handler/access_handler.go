package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"client-portal-api/internal/dto"
	"client-portal-api/internal/response"
	"client-portal-api/internal/service"
)

type AccessHandler struct {
	passcodeService service.PasscodeService
}

func NewAccessHandler(passcodeService service.PasscodeService) *AccessHandler {
	return &AccessHandler{
		passcodeService: passcodeService,
	}
}

// VerifyPasscode godoc
// @Summary      Verify a project passcode
// @Description  Answers with a bare {success, message} body rather than the standard envelope.
// @Tags         access
// @Accept       json
// @Produce      json
// @Param        request body dto.VerifyPasscodeRequest true "Project and passcode"
// @Success      200 {object} dto.VerifyPasscodeResponse
// @Failure      400 {object} dto.VerifyPasscodeResponse "Missing projectId or passcode"
// @Failure      401 {object} dto.VerifyPasscodeResponse "Invalid passcode"
// @Failure      404 {object} dto.VerifyPasscodeResponse "Project not found"
// @Failure      500 {object} dto.VerifyPasscodeResponse "Server error"
// @Router       /verify-passcode [post]
func (h *AccessHandler) VerifyPasscode(c *gin.Context) {
	var req dto.VerifyPasscodeRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.ProjectID) == "" || req.Passcode == "" {
		c.JSON(http.StatusBadRequest, dto.VerifyPasscodeResponse{Message: "Missing projectId or passcode"})
		return
	}

	projectID, err := uuid.Parse(strings.TrimSpace(req.ProjectID))
	if err != nil {
		c.JSON(http.StatusNotFound, dto.VerifyPasscodeResponse{Message: "Project not found"})
		return
	}

	result, err := h.passcodeService.Verify(c.Request.Context(), projectID, req.Passcode)
	if err != nil {
		zap.L().Error("Passcode verification failed", zap.String("project_id", projectID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.VerifyPasscodeResponse{Message: "Server error"})
		return
	}

	switch {
	case !result.Found:
		c.JSON(http.StatusNotFound, dto.VerifyPasscodeResponse{Message: "Project not found"})
	case !result.Granted:
		c.JSON(http.StatusUnauthorized, dto.VerifyPasscodeResponse{Message: "Invalid passcode"})
	default:
		c.JSON(http.StatusOK, dto.VerifyPasscodeResponse{Success: true})
	}
}

// Access godoc
// @Summary      Open a project by passcode
// @Description  Resolves the project a passcode belongs to, case-insensitively.
// @Tags         access
// @Accept       json
// @Produce      json
// @Param        request body dto.AccessRequest true "Passcode"
// @Success      200 {object} response.SuccessResponse{data=dto.AccessResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      401 {object} response.ErrorResponse
// @Router       /access [post]
func (h *AccessHandler) Access(c *gin.Context) {
	var req dto.AccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Passcode is required")
		return
	}

	project, err := h.passcodeService.ResolveByPasscode(c.Request.Context(), req.Passcode)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, dto.AccessResponse{
		ProjectID:   project.ID,
		ProjectName: project.ProjectName,
		ClientName:  project.ClientName,
	})
}
