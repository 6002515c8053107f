package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"client-portal-api/internal/auth"
	"client-portal-api/internal/domain"
	"client-portal-api/internal/dto"
	"client-portal-api/internal/response"
)

// withAdminSession stands in for AdminAuth.
func withAdminSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := &auth.Session{AdminID: uuid.New(), Email: "team@agency.test", ExpiresAt: time.Now().Add(time.Hour)}
		c.Request = c.Request.WithContext(auth.WithSession(c.Request.Context(), session))
		c.Next()
	}
}

func setupDeliverableRouter(svc *MockDeliverableService) *gin.Engine {
	h := NewDeliverableHandler(svc)
	r := gin.New()
	admin := r.Group("/admin", withAdminSession())
	admin.PATCH("/deliverables/:deliverableId", h.UpdateDeliverable)
	admin.POST("/projects/:projectId/deliverables/:deliverableId/comments", h.AddComment)
	r.GET("/client/projects/:projectId/deliverables/:deliverableId/comments", h.ListComments)
	r.POST("/client/projects/:projectId/deliverables/:deliverableId/comments", h.AddComment)
	return r
}

func TestDeliverableHandler_AddCommentRole(t *testing.T) {
	projectID := uuid.New()
	deliverableID := uuid.New()

	tests := []struct {
		name     string
		prefix   string
		wantRole domain.UserType
	}{
		{name: "admin session", prefix: "/admin", wantRole: domain.UserTypeAdmin},
		{name: "client passcode", prefix: "/client", wantRole: domain.UserTypeClient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotRole domain.UserType
			svc := &MockDeliverableService{
				AddCommentFunc: func(ctx context.Context, pid, did uuid.UUID, role domain.UserType, message string) (*dto.CommentResponse, error) {
					gotRole = role
					assert.Equal(t, projectID, pid)
					assert.Equal(t, deliverableID, did)
					assert.Equal(t, "Looks great", message)
					return &dto.CommentResponse{ProjectID: pid, DeliverableID: did, UserType: string(role), Message: message}, nil
				},
			}
			path := tt.prefix + "/projects/" + projectID.String() + "/deliverables/" + deliverableID.String() + "/comments"

			w := perform(setupDeliverableRouter(svc), http.MethodPost, path, jsonBody(t, map[string]string{"message": "Looks great"}), nil)

			assert.Equal(t, http.StatusCreated, w.Code)
			assert.Equal(t, tt.wantRole, gotRole)
		})
	}
}

func TestDeliverableHandler_AddCommentRejectsEmptyMessage(t *testing.T) {
	path := "/client/projects/" + uuid.NewString() + "/deliverables/" + uuid.NewString() + "/comments"
	w := perform(setupDeliverableRouter(&MockDeliverableService{}), http.MethodPost, path, jsonBody(t, map[string]string{"message": ""}), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, response.ErrCodeValidation, errorCode(t, w))
}

func TestDeliverableHandler_ListComments(t *testing.T) {
	svc := &MockDeliverableService{
		ListCommentsFunc: func(ctx context.Context, pid, did uuid.UUID) ([]*dto.CommentResponse, error) {
			return []*dto.CommentResponse{
				{UserType: "admin", UserName: "Team", Message: "First"},
				{UserType: "client", UserName: "Acme Corp", Message: "Second"},
			}, nil
		},
	}
	path := "/client/projects/" + uuid.NewString() + "/deliverables/" + uuid.NewString() + "/comments"

	w := perform(setupDeliverableRouter(svc), http.MethodGet, path, nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var got []dto.CommentResponse
	decodeData(t, w, &got)
	if assert.Len(t, got, 2) {
		assert.Equal(t, "First", got[0].Message)
	}
}

func TestDeliverableHandler_UpdateDeliverable(t *testing.T) {
	deliverableID := uuid.New()

	t.Run("updated", func(t *testing.T) {
		svc := &MockDeliverableService{
			UpdateDeliverableFunc: func(ctx context.Context, id uuid.UUID, req *dto.UpdateDeliverableRequest) (*dto.DeliverableResponse, error) {
				return &dto.DeliverableResponse{ID: id, Status: *req.Status}, nil
			},
		}
		w := perform(setupDeliverableRouter(svc), http.MethodPatch, "/admin/deliverables/"+deliverableID.String(), jsonBody(t, map[string]string{"status": "review"}), nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var got dto.DeliverableResponse
		decodeData(t, w, &got)
		assert.Equal(t, "review", got.Status)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &MockDeliverableService{
			UpdateDeliverableFunc: func(ctx context.Context, id uuid.UUID, req *dto.UpdateDeliverableRequest) (*dto.DeliverableResponse, error) {
				return nil, response.NewNotFoundError("Deliverable not found", "")
			},
		}
		w := perform(setupDeliverableRouter(svc), http.MethodPatch, "/admin/deliverables/"+deliverableID.String(), jsonBody(t, map[string]string{"status": "review"}), nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
