package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"client-portal-api/internal/dto"
	"client-portal-api/internal/response"
)

func setupProjectRouter(svc *MockProjectService) *gin.Engine {
	h := NewProjectHandler(svc)
	r := gin.New()
	r.GET("/admin/dashboard", h.Dashboard)
	r.GET("/admin/projects", h.ListProjects)
	r.POST("/admin/projects", h.CreateProject)
	r.GET("/admin/projects/:projectId", h.GetProject)
	r.PATCH("/admin/projects/:projectId", h.UpdateProject)
	r.DELETE("/admin/projects/:projectId", h.DeleteProject)
	r.POST("/admin/projects/:projectId/duplicate", h.DuplicateProject)
	r.PATCH("/admin/phases/:phaseId", h.UpdatePhase)
	r.GET("/client/projects/:projectId", h.GetClientProject)
	return r
}

func sampleTree(id uuid.UUID) *dto.ProjectTreeResponse {
	return &dto.ProjectTreeResponse{
		ProjectResponse: dto.ProjectResponse{
			ID:          id,
			ClientName:  "Acme Corp",
			ProjectName: "Acme Site",
			Passcode:    "WXYZ-2345",
		},
		Phases: []dto.PhaseResponse{{Name: "Discovery", Status: "in-progress"}},
	}
}

func TestProjectHandler_CreateProject(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		create         func(ctx context.Context, req *dto.CreateProjectRequest) (*dto.ProjectTreeResponse, error)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "created",
			body: map[string]string{"clientName": "Acme Corp", "projectName": "Acme Site"},
			create: func(ctx context.Context, req *dto.CreateProjectRequest) (*dto.ProjectTreeResponse, error) {
				return sampleTree(uuid.New()), nil
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing project name",
			body:           map[string]string{"clientName": "Acme Corp"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   response.ErrCodeValidation,
		},
		{
			name: "passcode taken",
			body: map[string]string{"clientName": "Acme Corp", "projectName": "Acme Site", "passcode": "WXYZ-2345"},
			create: func(ctx context.Context, req *dto.CreateProjectRequest) (*dto.ProjectTreeResponse, error) {
				return nil, response.NewAlreadyExistsError("Passcode already in use", "")
			},
			expectedStatus: http.StatusConflict,
			expectedCode:   response.ErrCodeAlreadyExists,
		},
		{
			name: "seeding stopped part way",
			body: map[string]string{"clientName": "Acme Corp", "projectName": "Acme Site"},
			create: func(ctx context.Context, req *dto.CreateProjectRequest) (*dto.ProjectTreeResponse, error) {
				return nil, response.NewPartialSequenceError("create_tasks", []string{"project:1"}, errors.New("boom"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   response.ErrCodePartialSequence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockProjectService{CreateProjectFunc: tt.create}
			w := perform(setupProjectRouter(svc), http.MethodPost, "/admin/projects", jsonBody(t, tt.body), nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, errorCode(t, w))
			}
		})
	}
}

func TestProjectHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{name: "record not found", err: gorm.ErrRecordNotFound, expectedStatus: http.StatusNotFound, expectedCode: response.ErrCodeNotFound},
		{name: "not found", err: response.NewNotFoundError("Project not found", ""), expectedStatus: http.StatusNotFound, expectedCode: response.ErrCodeNotFound},
		{name: "forbidden", err: response.NewForbiddenError("No", ""), expectedStatus: http.StatusForbidden, expectedCode: response.ErrCodeForbidden},
		{name: "gateway", err: response.NewGatewayError("Failed to load project", errors.New("timeout")), expectedStatus: http.StatusInternalServerError, expectedCode: response.ErrCodeGateway},
		{name: "unknown", err: errors.New("boom"), expectedStatus: http.StatusInternalServerError, expectedCode: response.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockProjectService{
				GetProjectTreeFunc: func(ctx context.Context, projectID uuid.UUID) (*dto.ProjectTreeResponse, error) {
					return nil, tt.err
				},
			}
			w := perform(setupProjectRouter(svc), http.MethodGet, "/admin/projects/"+uuid.NewString(), nil, nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedCode, errorCode(t, w))
		})
	}
}

func TestProjectHandler_InvalidIDs(t *testing.T) {
	r := setupProjectRouter(&MockProjectService{})

	requests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/admin/projects/not-a-uuid"},
		{http.MethodPatch, "/admin/projects/not-a-uuid"},
		{http.MethodDelete, "/admin/projects/not-a-uuid"},
		{http.MethodPost, "/admin/projects/not-a-uuid/duplicate"},
		{http.MethodPatch, "/admin/phases/not-a-uuid"},
		{http.MethodGet, "/client/projects/not-a-uuid"},
	}

	for _, req := range requests {
		t.Run(req.method+" "+req.path, func(t *testing.T) {
			w := perform(r, req.method, req.path, jsonBody(t, map[string]string{}), nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, response.ErrCodeValidation, errorCode(t, w))
		})
	}
}

func TestProjectHandler_GetProjectViews(t *testing.T) {
	projectID := uuid.New()
	svc := &MockProjectService{
		GetProjectTreeFunc: func(ctx context.Context, id uuid.UUID) (*dto.ProjectTreeResponse, error) {
			return sampleTree(id), nil
		},
	}
	r := setupProjectRouter(svc)

	w := perform(r, http.MethodGet, "/admin/projects/"+projectID.String(), nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var admin dto.ProjectTreeResponse
	decodeData(t, w, &admin)
	assert.Equal(t, "WXYZ-2345", admin.Passcode)

	w = perform(r, http.MethodGet, "/client/projects/"+projectID.String(), nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var client dto.ProjectTreeResponse
	decodeData(t, w, &client)
	assert.Empty(t, client.Passcode)
	assert.Equal(t, projectID, client.ID)
	assert.Len(t, client.Phases, 1)
}

func TestProjectHandler_DuplicateProject(t *testing.T) {
	sourceID := uuid.New()
	newID := uuid.New()
	svc := &MockProjectService{
		DuplicateProjectFunc: func(ctx context.Context, id uuid.UUID) (*dto.DuplicateProjectResponse, error) {
			assert.Equal(t, sourceID, id)
			return &dto.DuplicateProjectResponse{ProjectID: newID, Passcode: "KHTR-7QPM"}, nil
		},
	}

	w := perform(setupProjectRouter(svc), http.MethodPost, "/admin/projects/"+sourceID.String()+"/duplicate", nil, nil)

	assert.Equal(t, http.StatusCreated, w.Code)
	var got dto.DuplicateProjectResponse
	decodeData(t, w, &got)
	assert.Equal(t, newID, got.ProjectID)
}

func TestProjectHandler_UpdateAndDelete(t *testing.T) {
	projectID := uuid.New()
	deleted := false
	svc := &MockProjectService{
		UpdateProjectFunc: func(ctx context.Context, id uuid.UUID, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
			if assert.NotNil(t, req.CurrentPhase) {
				assert.Equal(t, 2, *req.CurrentPhase)
			}
			return &dto.ProjectResponse{ID: id, CurrentPhase: *req.CurrentPhase}, nil
		},
		DeleteProjectFunc: func(ctx context.Context, id uuid.UUID) error {
			deleted = id == projectID
			return nil
		},
	}
	r := setupProjectRouter(svc)

	w := perform(r, http.MethodPatch, "/admin/projects/"+projectID.String(), jsonBody(t, map[string]int{"currentPhase": 2}), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(r, http.MethodPatch, "/admin/projects/"+projectID.String(), jsonBody(t, "[1,2"), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(r, http.MethodDelete, "/admin/projects/"+projectID.String(), nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, deleted)
}

func TestProjectHandler_Dashboard(t *testing.T) {
	svc := &MockProjectService{
		DashboardFunc: func(ctx context.Context) (*dto.DashboardResponse, error) {
			return &dto.DashboardResponse{
				Stats:    dto.DashboardStats{Total: 3, Active: 2, LaunchingSoon: 1},
				Projects: []*dto.ProjectResponse{{ProjectName: "Acme Site"}},
			}, nil
		},
	}

	w := perform(setupProjectRouter(svc), http.MethodGet, "/admin/dashboard", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var got dto.DashboardResponse
	decodeData(t, w, &got)
	assert.Equal(t, dto.DashboardStats{Total: 3, Active: 2, LaunchingSoon: 1}, got.Stats)
	assert.Len(t, got.Projects, 1)
}
