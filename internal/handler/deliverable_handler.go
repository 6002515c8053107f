package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"client-portal-api/internal/auth"
	"client-portal-api/internal/domain"
	"client-portal-api/internal/dto"
	"client-portal-api/internal/response"
	"client-portal-api/internal/service"
)

type DeliverableHandler struct {
	deliverableService service.DeliverableService
}

func NewDeliverableHandler(deliverableService service.DeliverableService) *DeliverableHandler {
	return &DeliverableHandler{
		deliverableService: deliverableService,
	}
}

// requestRole is admin when the request carries an admin session, client otherwise.
func requestRole(c *gin.Context) domain.UserType {
	if _, ok := auth.SessionFromContext(c.Request.Context()); ok {
		return domain.UserTypeAdmin
	}
	return domain.UserTypeClient
}

// UpdateDeliverable godoc
// @Summary      Update deliverable
// @Tags         deliverables
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        deliverableId path string true "Deliverable ID (UUID)"
// @Param        request body dto.UpdateDeliverableRequest true "Fields to change"
// @Success      200 {object} response.SuccessResponse{data=dto.DeliverableResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /admin/deliverables/{deliverableId} [patch]
func (h *DeliverableHandler) UpdateDeliverable(c *gin.Context) {
	deliverableID, ok := parseIDParam(c, "deliverableId", "deliverable")
	if !ok {
		return
	}

	var req dto.UpdateDeliverableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	deliverable, err := h.deliverableService.UpdateDeliverable(c.Request.Context(), deliverableID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, deliverable)
}

// ListComments godoc
// @Summary      List deliverable comments
// @Description  Oldest first. Available to the admin and to the passcode holder.
// @Tags         comments
// @Produce      json
// @Param        projectId path string true "Project ID (UUID)"
// @Param        deliverableId path string true "Deliverable ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.CommentResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /admin/projects/{projectId}/deliverables/{deliverableId}/comments [get]
// @Router       /client/projects/{projectId}/deliverables/{deliverableId}/comments [get]
func (h *DeliverableHandler) ListComments(c *gin.Context) {
	projectID, ok := parseIDParam(c, "projectId", "project")
	if !ok {
		return
	}
	deliverableID, ok := parseIDParam(c, "deliverableId", "deliverable")
	if !ok {
		return
	}

	comments, err := h.deliverableService.ListComments(c.Request.Context(), projectID, deliverableID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, comments)
}

// AddComment godoc
// @Summary      Comment on a deliverable
// @Description  Admin comments are signed "Team"; client comments carry the client name.
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        projectId path string true "Project ID (UUID)"
// @Param        deliverableId path string true "Deliverable ID (UUID)"
// @Param        request body dto.CreateCommentRequest true "Comment"
// @Success      201 {object} response.SuccessResponse{data=dto.CommentResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /admin/projects/{projectId}/deliverables/{deliverableId}/comments [post]
// @Router       /client/projects/{projectId}/deliverables/{deliverableId}/comments [post]
func (h *DeliverableHandler) AddComment(c *gin.Context) {
	projectID, ok := parseIDParam(c, "projectId", "project")
	if !ok {
		return
	}
	deliverableID, ok := parseIDParam(c, "deliverableId", "deliverable")
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	comment, err := h.deliverableService.AddComment(c.Request.Context(), projectID, deliverableID, requestRole(c), req.Message)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, comment)
}
