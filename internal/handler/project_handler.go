package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"client-portal-api/internal/dto"
	"client-portal-api/internal/response"
	"client-portal-api/internal/service"
)

type ProjectHandler struct {
	projectService service.ProjectService
}

func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// Dashboard godoc
// @Summary      Admin dashboard
// @Description  Returns project counts and every project, newest first
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.SuccessResponse{data=dto.DashboardResponse}
// @Failure      401 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /admin/dashboard [get]
func (h *ProjectHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.projectService.Dashboard(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, dashboard)
}

// ListProjects godoc
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.SuccessResponse{data=[]dto.ProjectResponse}
// @Failure      401 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /admin/projects [get]
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.projectService.ListProjects(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, projects)
}

// CreateProject godoc
// @Summary      Create project
// @Description  Creates a project seeded with the five default phases, their tasks and deliverables
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateProjectRequest true "Project"
// @Success      201 {object} response.SuccessResponse{data=dto.ProjectTreeResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      409 {object} response.ErrorResponse "Passcode already in use"
// @Failure      500 {object} response.ErrorResponse
// @Router       /admin/projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, project)
}

// GetProject godoc
// @Summary      Get project tree
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        projectId path string true "Project ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.ProjectTreeResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /admin/projects/{projectId} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	projectID, ok := parseIDParam(c, "projectId", "project")
	if !ok {
		return
	}

	project, err := h.projectService.GetProjectTree(c.Request.Context(), projectID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, project)
}

// GetClientProject godoc
// @Summary      Client project view
// @Description  Read-only project tree for the passcode holder. The passcode itself is not returned.
// @Tags         client
// @Produce      json
// @Param        projectId path string true "Project ID (UUID)"
// @Param        X-Project-Passcode header string true "Project passcode"
// @Success      200 {object} response.SuccessResponse{data=dto.ProjectTreeResponse}
// @Failure      401 {object} response.ErrorResponse
// @Router       /client/projects/{projectId} [get]
func (h *ProjectHandler) GetClientProject(c *gin.Context) {
	projectID, ok := parseIDParam(c, "projectId", "project")
	if !ok {
		return
	}

	project, err := h.projectService.GetProjectTree(c.Request.Context(), projectID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	project.Passcode = ""
	response.SendSuccess(c, http.StatusOK, project)
}

// UpdateProject godoc
// @Summary      Update project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        projectId path string true "Project ID (UUID)"
// @Param        request body dto.UpdateProjectRequest true "Fields to change"
// @Success      200 {object} response.SuccessResponse{data=dto.ProjectResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Failure      409 {object} response.ErrorResponse
// @Router       /admin/projects/{projectId} [patch]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	projectID, ok := parseIDParam(c, "projectId", "project")
	if !ok {
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	project, err := h.projectService.UpdateProject(c.Request.Context(), projectID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, project)
}

// DeleteProject godoc
// @Summary      Delete project
// @Description  Deletes the project and everything under it, then its stored files
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        projectId path string true "Project ID (UUID)"
// @Success      200 {object} response.SuccessResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /admin/projects/{projectId} [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	projectID, ok := parseIDParam(c, "projectId", "project")
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(c.Request.Context(), projectID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, nil)
}

// DuplicateProject godoc
// @Summary      Duplicate project
// @Description  Copies the project structure with progress reset and a new passcode.
// @Description  A failure part way answers 500 PARTIAL_SEQUENCE_FAILURE; rows written before it are kept.
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        projectId path string true "Source project ID (UUID)"
// @Success      201 {object} response.SuccessResponse{data=dto.DuplicateProjectResponse}
// @Failure      404 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /admin/projects/{projectId}/duplicate [post]
func (h *ProjectHandler) DuplicateProject(c *gin.Context) {
	projectID, ok := parseIDParam(c, "projectId", "project")
	if !ok {
		return
	}

	result, err := h.projectService.DuplicateProject(c.Request.Context(), projectID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, result)
}

// UpdatePhase godoc
// @Summary      Update phase
// @Tags         phases
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        phaseId path string true "Phase ID (UUID)"
// @Param        request body dto.UpdatePhaseRequest true "Fields to change"
// @Success      200 {object} response.SuccessResponse{data=dto.PhaseResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /admin/phases/{phaseId} [patch]
func (h *ProjectHandler) UpdatePhase(c *gin.Context) {
	phaseID, ok := parseIDParam(c, "phaseId", "phase")
	if !ok {
		return
	}

	var req dto.UpdatePhaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	phase, err := h.projectService.UpdatePhase(c.Request.Context(), phaseID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, phase)
}
