package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"client-portal-api/internal/domain"
	"client-portal-api/internal/response"
	"client-portal-api/internal/service"
)

type OnboardingHandler struct {
	onboardingService service.OnboardingService
}

func NewOnboardingHandler(onboardingService service.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{
		onboardingService: onboardingService,
	}
}

var unsafeFileNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// downloadFileName builds "{project_name}-onboarding.json" with header-safe characters.
func downloadFileName(projectName string) string {
	name := strings.Trim(unsafeFileNameChars.ReplaceAllString(strings.TrimSpace(projectName), "-"), "-")
	if name == "" {
		name = "project"
	}
	return name + "-onboarding.json"
}

// Submit godoc
// @Summary      Submit onboarding questionnaire
// @Description  Stores the questionnaire (schema_version 1) and flags the project as onboarded.
// @Description  Unknown keys are kept under extra_fields. If the flag write fails after the response
// @Description  was stored the call answers 500 PARTIAL_SEQUENCE_FAILURE and the stored response remains.
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Param        projectId path string true "Project ID (UUID)"
// @Param        X-Project-Passcode header string true "Project passcode"
// @Param        request body object true "Questionnaire document"
// @Success      201 {object} response.SuccessResponse{data=dto.SubmitOnboardingResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /client/projects/{projectId}/onboarding [post]
func (h *OnboardingHandler) Submit(c *gin.Context) {
	projectID, ok := parseIDParam(c, "projectId", "project")
	if !ok {
		return
	}

	body, err := c.GetRawData()
	if err != nil || !json.Valid(body) {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.onboardingService.Submit(c.Request.Context(), projectID, json.RawMessage(body))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, result)
}

// UploadAsset godoc
// @Summary      Upload an onboarding asset
// @Description  The asset stays temporary until a submitted questionnaire references its URL.
// @Tags         onboarding
// @Accept       multipart/form-data
// @Produce      json
// @Param        projectId path string true "Project ID (UUID)"
// @Param        X-Project-Passcode header string true "Project passcode"
// @Param        assetType formData string true "brand_guide, logo, font or media"
// @Param        file formData file true "File"
// @Success      201 {object} response.SuccessResponse{data=dto.OnboardingAssetResponse}
// @Failure      400 {object} response.ErrorResponse
// @Router       /client/projects/{projectId}/onboarding/assets [post]
func (h *OnboardingHandler) UploadAsset(c *gin.Context) {
	projectID, ok := parseIDParam(c, "projectId", "project")
	if !ok {
		return
	}

	upload, file, ok := openUpload(c, "file")
	if !ok {
		return
	}
	defer file.Close()

	assetType := domain.AssetType(c.PostForm("assetType"))
	result, err := h.onboardingService.UploadAsset(c.Request.Context(), projectID, assetType, upload)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, result)
}

// Status godoc
// @Summary      Onboarding status
// @Tags         onboarding
// @Produce      json
// @Param        projectId path string true "Project ID (UUID)"
// @Param        X-Project-Passcode header string true "Project passcode"
// @Success      200 {object} response.SuccessResponse{data=dto.OnboardingStatusResponse}
// @Router       /client/projects/{projectId}/onboarding/status [get]
func (h *OnboardingHandler) Status(c *gin.Context) {
	projectID, ok := parseIDParam(c, "projectId", "project")
	if !ok {
		return
	}

	status, err := h.onboardingService.Status(c.Request.Context(), projectID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, status)
}

// View godoc
// @Summary      View latest onboarding response
// @Description  Rendered into titled sections; missing required answers show N/A.
// @Tags         onboarding
// @Produce      json
// @Security     BearerAuth
// @Param        projectId path string true "Project ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.OnboardingViewResponse}
// @Failure      404 {object} response.ErrorResponse "No response submitted"
// @Router       /admin/projects/{projectId}/onboarding [get]
func (h *OnboardingHandler) View(c *gin.Context) {
	projectID, ok := parseIDParam(c, "projectId", "project")
	if !ok {
		return
	}

	view, err := h.onboardingService.View(c.Request.Context(), projectID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, view)
}

// Download godoc
// @Summary      Download latest onboarding response
// @Description  The stored JSON document as an attachment named {project_name}-onboarding.json
// @Tags         onboarding
// @Produce      json
// @Security     BearerAuth
// @Param        projectId path string true "Project ID (UUID)"
// @Success      200 {object} object
// @Failure      404 {object} response.ErrorResponse
// @Router       /admin/projects/{projectId}/onboarding/download [get]
func (h *OnboardingHandler) Download(c *gin.Context) {
	projectID, ok := parseIDParam(c, "projectId", "project")
	if !ok {
		return
	}

	latest, project, err := h.onboardingService.Latest(c.Request.Context(), projectID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, downloadFileName(project.ProjectName)))
	c.Data(http.StatusOK, "application/json", latest.ResponseData)
}
