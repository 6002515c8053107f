package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"go.uber.org/zap/zapcore"

	"client-portal-api/internal/auth"
	"client-portal-api/internal/domain"
	"client-portal-api/internal/metrics"
	"client-portal-api/internal/response"
	"client-portal-api/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type stubSessionParser struct {
	session *auth.Session
	err     error
	token   string
}

func (s *stubSessionParser) Parse(ctx context.Context, token string) (*auth.Session, error) {
	s.token = token
	return s.session, s.err
}

func TestAdminAuth(t *testing.T) {
	adminID := uuid.New()

	tests := []struct {
		name           string
		header         string
		parser         *stubSessionParser
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "valid session",
			header:         "Bearer good-token",
			parser:         &stubSessionParser{session: &auth.Session{AdminID: adminID}},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing header",
			parser:         &stubSessionParser{},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Authorization header is required",
		},
		{
			name:           "wrong scheme",
			header:         "Basic abc",
			parser:         &stubSessionParser{},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Invalid authorization header format",
		},
		{
			name:           "empty token",
			header:         "Bearer ",
			parser:         &stubSessionParser{},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Invalid authorization header format",
		},
		{
			name:           "expired",
			header:         "Bearer old",
			parser:         &stubSessionParser{err: auth.ErrSessionExpired},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Session expired",
		},
		{
			name:           "revoked",
			header:         "Bearer gone",
			parser:         &stubSessionParser{err: auth.ErrSessionRevoked},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Session revoked",
		},
		{
			name:           "garbage",
			header:         "Bearer garbage",
			parser:         &stubSessionParser{err: auth.ErrInvalidSession},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Invalid or expired token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/admin/ping", AdminAuth(tt.parser), func(c *gin.Context) {
				session, ok := auth.SessionFromContext(c.Request.Context())
				require.True(t, ok)
				assert.Equal(t, adminID, session.AdminID)
				assert.Equal(t, adminID, c.MustGet("admin_id"))
				c.Status(http.StatusOK)
			})

			headers := map[string]string{}
			if tt.header != "" {
				headers["Authorization"] = tt.header
			}
			w := serve(r, http.MethodGet, "/admin/ping", headers)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, w.Body.String(), tt.expectedBody)
				assert.Contains(t, w.Body.String(), response.ErrCodeUnauthorized)
			}
		})
	}
}

func TestAdminAuth_WithSessionManager(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	clock := now
	manager := auth.NewSessionManager("secret", time.Hour, auth.NewMemoryRevocationStore()).
		WithClock(func() time.Time { return clock })

	token, session, err := manager.Issue(uuid.New(), "team@agency.test")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/admin/ping", AdminAuth(manager), func(c *gin.Context) { c.Status(http.StatusOK) })
	bearer := map[string]string{"Authorization": "Bearer " + token}

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/admin/ping", bearer).Code)

	require.NoError(t, manager.Revoke(context.Background(), session))
	w := serve(r, http.MethodGet, "/admin/ping", bearer)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Session revoked")

	token, _, err = manager.Issue(uuid.New(), "team@agency.test")
	require.NoError(t, err)
	clock = now.Add(2 * time.Hour)
	w = serve(r, http.MethodGet, "/admin/ping", map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Session expired")
}

type stubPasscodeService struct {
	result *service.VerifyResult
	err    error
	calls  int
}

func (s *stubPasscodeService) Verify(ctx context.Context, projectID uuid.UUID, code string) (*service.VerifyResult, error) {
	s.calls++
	return s.result, s.err
}

func (s *stubPasscodeService) ResolveByPasscode(ctx context.Context, code string) (*domain.Project, error) {
	return nil, errors.New("not used")
}

func TestClientAccess(t *testing.T) {
	projectID := uuid.New()

	tests := []struct {
		name           string
		path           string
		passcode       string
		stub           *stubPasscodeService
		expectedStatus int
		expectedCalls  int
	}{
		{
			name:           "granted",
			path:           "/client/projects/" + projectID.String(),
			passcode:       "WXYZ-2345",
			stub:           &stubPasscodeService{result: &service.VerifyResult{Found: true, Granted: true}},
			expectedStatus: http.StatusOK,
			expectedCalls:  1,
		},
		{
			name:           "no header",
			path:           "/client/projects/" + projectID.String(),
			stub:           &stubPasscodeService{},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "malformed project id",
			path:           "/client/projects/abc",
			passcode:       "WXYZ-2345",
			stub:           &stubPasscodeService{},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong passcode",
			path:           "/client/projects/" + projectID.String(),
			passcode:       "AAAA-2222",
			stub:           &stubPasscodeService{result: &service.VerifyResult{Found: true}},
			expectedStatus: http.StatusUnauthorized,
			expectedCalls:  1,
		},
		{
			name:           "unknown project",
			path:           "/client/projects/" + projectID.String(),
			passcode:       "WXYZ-2345",
			stub:           &stubPasscodeService{result: &service.VerifyResult{}},
			expectedStatus: http.StatusUnauthorized,
			expectedCalls:  1,
		},
		{
			name:           "store failure",
			path:           "/client/projects/" + projectID.String(),
			passcode:       "WXYZ-2345",
			stub:           &stubPasscodeService{err: errors.New("connection refused")},
			expectedStatus: http.StatusInternalServerError,
			expectedCalls:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/client/projects/:projectId", ClientAccess(tt.stub, zap.NewNop()), func(c *gin.Context) {
				assert.Equal(t, projectID, c.MustGet("project_id"))
				c.Status(http.StatusOK)
			})

			headers := map[string]string{}
			if tt.passcode != "" {
				headers[PasscodeHeader] = tt.passcode
			}
			w := serve(r, http.MethodGet, tt.path, headers)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedCalls, tt.stub.calls)
		})
	}
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name        string
		allowed     []string
		origin      string
		wantAllowed bool
	}{
		{name: "wildcard", allowed: []string{"*"}, origin: "https://portal.example.com", wantAllowed: true},
		{name: "listed", allowed: []string{"https://portal.example.com"}, origin: "https://portal.example.com", wantAllowed: true},
		{name: "not listed", allowed: []string{"https://portal.example.com"}, origin: "https://evil.example.com"},
		{name: "no origin", allowed: []string{"*"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(CORS(tt.allowed))
			r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

			headers := map[string]string{}
			if tt.origin != "" {
				headers["Origin"] = tt.origin
			}
			w := serve(r, http.MethodGet, "/x", headers)

			assert.Equal(t, http.StatusOK, w.Code)
			if tt.wantAllowed {
				assert.Equal(t, tt.origin, w.Header().Get("Access-Control-Allow-Origin"))
				assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), PasscodeHeader)
			} else {
				assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}

	t.Run("preflight", func(t *testing.T) {
		r := gin.New()
		r.Use(CORS([]string{"*"}))
		r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := serve(r, http.MethodOptions, "/x", map[string]string{"Origin": "https://portal.example.com"})
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestRecovery(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	m := metrics.NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())
	adminID := uuid.New()

	r := gin.New()
	r.Use(Recovery(zap.New(core), m))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })
	r.GET("/admin/projects/:projectId", func(c *gin.Context) {
		ctx := auth.WithSession(c.Request.Context(), &auth.Session{AdminID: adminID, Email: "team@agency.test"})
		c.Request = c.Request.WithContext(ctx)
		panic(errors.New("nil tree"))
	})

	w := serve(r, http.MethodGet, "/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), response.ErrCodeInternal)

	projectID := uuid.New().String()
	w = serve(r, http.MethodGet, "/admin/projects/"+projectID, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	entries := logs.FilterMessage("Panic recovered").All()
	require.Len(t, entries, 2)

	plain := entries[0].ContextMap()
	assert.Equal(t, "/boom", plain["route"])
	assert.NotContains(t, plain, "project_id")
	assert.NotContains(t, plain, "admin_id")

	scoped := entries[1].ContextMap()
	assert.Equal(t, "/admin/projects/:projectId", scoped["route"])
	assert.Equal(t, projectID, scoped["project_id"])
	assert.Equal(t, adminID.String(), scoped["admin_id"])
	assert.Equal(t, "*errors.errorString", scoped["error_type"])

	assert.Equal(t, float64(1), testutil.ToFloat64(m.HTTPPanicsTotal.WithLabelValues("/boom")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.HTTPPanicsTotal.WithLabelValues("/admin/projects/:projectId")))
}

func TestRecovery_NilMetrics(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(zap.NewNop(), nil))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := serve(r, http.MethodGet, "/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestLogger_LevelFollowsStatus(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	r := gin.New()
	r.Use(Logger(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	r.GET("/fail", func(c *gin.Context) { c.Status(http.StatusBadGateway) })

	serve(r, http.MethodGet, "/ok", nil)
	serve(r, http.MethodGet, "/bad", nil)
	serve(r, http.MethodGet, "/fail", nil)
	serve(r, http.MethodGet, "/health", nil)

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
}

func TestMetrics_RecordsRoutes(t *testing.T) {
	m := metrics.NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())
	r := gin.New()
	r.Use(Metrics(m))
	r.GET("/projects/:projectId", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve(r, http.MethodGet, "/projects/"+uuid.NewString(), nil)
	serve(r, http.MethodGet, "/projects/"+uuid.NewString(), nil)
	serve(r, http.MethodGet, "/nowhere", nil)
	serve(r, http.MethodGet, "/metrics", nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/projects/:projectId", "2xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "4xx")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/metrics", "2xx")))
}
