package handler

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"client-portal-api/internal/response"
	"client-portal-api/internal/service"
)

type FileHandler struct {
	fileService service.FileService
}

func NewFileHandler(fileService service.FileService) *FileHandler {
	return &FileHandler{
		fileService: fileService,
	}
}

// optionalUUID parses an optional id from a form or query value.
func optionalUUID(raw string) (*uuid.UUID, bool) {
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, false
	}
	return &id, true
}

// openUpload turns the multipart field into a service upload. The caller closes the returned file.
func openUpload(c *gin.Context, field string) (*service.Upload, multipart.File, bool) {
	header, err := c.FormFile(field)
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "A file is required")
		return nil, nil, false
	}
	file, err := header.Open()
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Unreadable file")
		return nil, nil, false
	}
	return &service.Upload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	}, file, true
}

// UploadFile godoc
// @Summary      Upload a project file
// @Tags         files
// @Accept       multipart/form-data
// @Produce      json
// @Param        projectId path string true "Project ID (UUID)"
// @Param        file formData file true "File"
// @Param        deliverableId formData string false "Attach to this deliverable"
// @Success      201 {object} response.SuccessResponse{data=dto.FileResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /admin/projects/{projectId}/files [post]
// @Router       /client/projects/{projectId}/files [post]
func (h *FileHandler) UploadFile(c *gin.Context) {
	projectID, ok := parseIDParam(c, "projectId", "project")
	if !ok {
		return
	}
	deliverableID, ok := optionalUUID(c.PostForm("deliverableId"))
	if !ok {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid deliverable ID")
		return
	}

	upload, file, ok := openUpload(c, "file")
	if !ok {
		return
	}
	defer file.Close()

	result, err := h.fileService.UploadFile(c.Request.Context(), projectID, deliverableID, requestRole(c), upload)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, result)
}

// ListFiles godoc
// @Summary      List project files
// @Tags         files
// @Produce      json
// @Param        projectId path string true "Project ID (UUID)"
// @Param        deliverableId query string false "Only files of this deliverable"
// @Success      200 {object} response.SuccessResponse{data=[]dto.FileResponse}
// @Failure      400 {object} response.ErrorResponse
// @Router       /admin/projects/{projectId}/files [get]
// @Router       /client/projects/{projectId}/files [get]
func (h *FileHandler) ListFiles(c *gin.Context) {
	projectID, ok := parseIDParam(c, "projectId", "project")
	if !ok {
		return
	}
	deliverableID, ok := optionalUUID(c.Query("deliverableId"))
	if !ok {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid deliverable ID")
		return
	}

	files, err := h.fileService.ListFiles(c.Request.Context(), projectID, deliverableID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, files)
}
