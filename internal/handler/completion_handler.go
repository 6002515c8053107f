package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"client-portal-api/internal/dto"
	"client-portal-api/internal/response"
	"client-portal-api/internal/service"
)

type CompletionHandler struct {
	completionService service.CompletionService
}

func NewCompletionHandler(completionService service.CompletionService) *CompletionHandler {
	return &CompletionHandler{
		completionService: completionService,
	}
}

// ToggleTask godoc
// @Summary      Check or uncheck a task
// @Description  Stores the task state and recomputes the owning phase's completion from its tasks.
// @Description  When the recompute fails after the task was written the call answers 500 PARTIAL_SEQUENCE_FAILURE.
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        taskId path string true "Task ID (UUID)"
// @Param        request body dto.ToggleTaskRequest true "New state"
// @Success      200 {object} response.SuccessResponse{data=dto.ToggleTaskResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /admin/tasks/{taskId} [patch]
func (h *CompletionHandler) ToggleTask(c *gin.Context) {
	taskID, ok := parseIDParam(c, "taskId", "task")
	if !ok {
		return
	}

	var req dto.ToggleTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.completionService.SetTaskCompletion(c.Request.Context(), taskID, *req.Completed)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// SetPhaseCompletion godoc
// @Summary      Override phase completion
// @Description  Writes the percentage directly. The next task toggle in the phase recomputes it.
// @Tags         phases
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        phaseId path string true "Phase ID (UUID)"
// @Param        request body dto.SetPhaseCompletionRequest true "Completion 0-100"
// @Success      200 {object} response.SuccessResponse{data=dto.PhaseResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /admin/phases/{phaseId}/completion [put]
func (h *CompletionHandler) SetPhaseCompletion(c *gin.Context) {
	phaseID, ok := parseIDParam(c, "phaseId", "phase")
	if !ok {
		return
	}

	var req dto.SetPhaseCompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	phase, err := h.completionService.SetPhaseCompletionDirect(c.Request.Context(), phaseID, *req.Completion)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, phase)
}
