package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/avopro-hr/hr-backend-go/internal/domain/leave"
	"github.com/avopro-hr/hr-backend-go/internal/domain/request"
	"github.com/avopro-hr/hr-backend-go/internal/domain/user"
	"github.com/avopro-hr/hr-backend-go/internal/handler/http/response"
	"github.com/avopro-hr/hr-backend-go/internal/pkg/jwt"
	"github.com/avopro-hr/hr-backend-go/internal/pkg/ratelimit"
	"github.com/avopro-hr/hr-backend-go/internal/pkg/sse"
	authservice "github.com/avopro-hr/hr-backend-go/internal/service/auth"
	dashboardservice "github.com/avopro-hr/hr-backend-go/internal/service/dashboard"
	notificationservice "github.com/avopro-hr/hr-backend-go/internal/service/notification"
	"github.com/avopro-hr/hr-backend-go/internal/service/servicetest"
	userservice "github.com/avopro-hr/hr-backend-go/internal/service/user"
	verificationservice "github.com/avopro-hr/hr-backend-go/internal/service/verification"
	"github.com/avopro-hr/hr-backend-go/internal/service/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type testServer struct {
	t       *testing.T
	store   *servicetest.Store
	jwt     *jwt.JWTService
	handler http.Handler

	employee user.Account
	hr       user.Account
}

func newTestServer(t *testing.T, limiter *ratelimit.KeyedLimiter) *testServer {
	t.Helper()

	store := servicetest.NewStore()
	jwtService := jwt.NewJWTService("test-secret-key", time.Hour)
	notifier := notificationservice.NewNotificationService(store.Notifications(), store.Users(), sse.NewHub())
	docs := &servicetest.Documents{Content: []byte("%PDF-1.3 test")}

	handlers := Handlers{
		Auth: NewAuthHandler(authservice.NewAuthService(store.Users(), jwtService, &servicetest.Mailer{}, notifier, authservice.Config{
			FrontendURL:   "http://localhost:3000",
			ResetTokenTTL: time.Hour,
		})),
		Leave:        NewLeaveHandler(workflow.NewLeaveService(store, store.Users(), store.Leaves(), notifier, docs)),
		Overtime:     NewOvertimeHandler(workflow.NewOvertimeService(store.Users(), store.Overtimes(), notifier)),
		Requests:     NewRequestHandler(workflow.NewFeedService(store.Leaves(), store.Overtimes())),
		Notification: NewNotificationHandler(notifier, jwtService),
		User:         NewUserHandler(userservice.NewUserService(store.Users())),
		Dashboard:    NewDashboardHandler(dashboardservice.NewDashboardService(store.Dashboard(), store.Users())),
		Verification: NewVerificationHandler(verificationservice.NewVerificationService(store.Leaves())),
	}

	return &testServer{
		t:        t,
		store:    store,
		jwt:      jwtService,
		handler:  NewRouter(RouterConfig{AllowedOrigins: []string{"http://localhost:3000"}, PublicLimiter: limiter}, jwtService, handlers),
		employee: store.AddAccount(servicetest.NewAccount("Jane Wanjiku", user.RoleEmployee, user.GenderFemale, true)),
		hr:       store.AddAccount(servicetest.NewAccount("Grace Achieng", user.RoleHR, user.GenderFemale, true)),
	}
}

func (s *testServer) tokenFor(a user.Account) string {
	s.t.Helper()
	token, _, err := s.jwt.GenerateAccessToken(a)
	require.NoError(s.t, err)
	return token
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()

	var payload bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&payload).Encode(body))
	}
	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func dataMap(t *testing.T, resp response.Response) map[string]interface{} {
	t.Helper()
	m, ok := resp.Data.(map[string]interface{})
	require.True(t, ok, "data is %T", resp.Data)
	return m
}

func TestRouter_RequiresAuthentication(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(http.MethodGet, "/api/v1/leave/my", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/leave/my", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	streamToken, _, err := s.jwt.GenerateStreamToken(s.employee.ID)
	require.NoError(t, err)
	rec = s.do(http.MethodGet, "/api/v1/leave/my", streamToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "stream tokens are not access tokens")
}

func TestRouter_LogoutRevokesToken(t *testing.T) {
	s := newTestServer(t, nil)
	token := s.tokenFor(s.employee)

	require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/v1/profile", token, nil).Code)
	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/v1/auth/logout", token, nil).Code)

	rec := s.do(http.MethodGet, "/api/v1/profile", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_LogoutRevokesTokenSentAsCookie(t *testing.T) {
	s := newTestServer(t, nil)
	token := s.tokenFor(s.employee)
	otherSession := s.tokenFor(s.employee)

	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/v1/auth/logout", token, nil).Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	req.AddCookie(&http.Cookie{Name: "jwt", Value: token})
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/profile", otherSession, nil)
	assert.Equal(t, http.StatusOK, rec.Code, "other sessions of the account stay valid")
}

func TestRouter_LeaveLifecycle(t *testing.T) {
	s := newTestServer(t, nil)
	employeeToken := s.tokenFor(s.employee)
	hrToken := s.tokenFor(s.hr)

	rec := s.do(http.MethodPost, "/api/v1/leave/", employeeToken, map[string]string{
		"leave_type": "ANNUAL",
		"start_date": "2024-06-01",
		"end_date":   "2024-06-05",
		"reason":     "Family trip",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	id := dataMap(t, decode(t, rec))["id"].(string)

	rec = s.do(http.MethodPatch, "/api/v1/leave/"+id+"/status", employeeToken, map[string]string{"status": "APPROVED"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/verify/"+id, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, "pending requests are not verifiable")

	rec = s.do(http.MethodPatch, "/api/v1/leave/"+id+"/status", hrToken, map[string]string{"status": "APPROVED"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "APPROVED", dataMap(t, decode(t, rec))["status"])
	assert.Equal(t, 20, s.store.Account(s.employee.ID).Balances.Annual)

	rec = s.do(http.MethodPatch, "/api/v1/leave/"+id+"/status", hrToken, map[string]string{"status": "DENIED"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "request has already been approved", decode(t, rec).Error.Message)

	rec = s.do(http.MethodPost, "/api/v1/leave/", employeeToken, map[string]string{
		"leave_type": "ANNUAL",
		"start_date": "2024-06-03",
		"end_date":   "2024-06-04",
		"reason":     "Overlap",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/verify/"+id, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view := dataMap(t, decode(t, rec))
	assert.Len(t, view, 6)
	assert.Equal(t, "Jane Wanjiku", view["owner_name"])

	rec = s.do(http.MethodGet, "/api/v1/leave/"+id+"/document", employeeToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, "%PDF-1.3 test", rec.Body.String())

	rec = s.do(http.MethodGet, "/api/v1/notifications", employeeToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items := decode(t, rec).Data.([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "Your annual leave request has been approved.", items[0].(map[string]interface{})["message"])
}

func TestRouter_ErrorMapping(t *testing.T) {
	s := newTestServer(t, nil)
	employeeToken := s.tokenFor(s.employee)
	hrToken := s.tokenFor(s.hr)

	t.Run("validation error is 422", func(t *testing.T) {
		rec := s.do(http.MethodPost, "/api/v1/overtime/", employeeToken, map[string]interface{}{
			"date":   "2024-06-01",
			"hours":  "0.25",
			"reason": "Stocktake",
		})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, decode(t, rec).Error.Details, "hours")
	})

	t.Run("gender restriction is 400", func(t *testing.T) {
		rec := s.do(http.MethodPost, "/api/v1/leave/", employeeToken, map[string]string{
			"leave_type": "PATERNITY",
			"start_date": "2024-07-01",
			"end_date":   "2024-07-02",
			"reason":     "Newborn",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, leave.ErrPaternityRestricted.Error(), decode(t, rec).Error.Message)
	})

	t.Run("invalid decision is 422", func(t *testing.T) {
		pending := s.store.AddLeave(leave.LeaveRequest{
			UserID:    s.employee.ID,
			Category:  leave.CategorySick,
			StartDate: time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC),
			Reason:    "Flu",
		})
		rec := s.do(http.MethodPatch, "/api/v1/leave/"+pending.ID+"/status", hrToken, map[string]string{"status": "MAYBE"})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, request.StatusPending, s.store.Leave(pending.ID).Status)
	})

	t.Run("unknown and malformed ids are 404", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/api/v1/leave/0190a1b2-7c3d-7e4f-8a9b-0c1d2e3f4a5b", hrToken, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = s.do(http.MethodGet, "/api/v1/verify/not-an-id", "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("employees cannot list users", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/api/v1/users/", employeeToken, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("bad json is 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader("{"))
		rec := httptest.NewRecorder()
		s.handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRouter_ForgotPasswordIsUniform(t *testing.T) {
	s := newTestServer(t, nil)

	known := s.do(http.MethodPost, "/api/v1/auth/forgot-password", "", map[string]string{"email": s.employee.Email})
	unknown := s.do(http.MethodPost, "/api/v1/auth/forgot-password", "", map[string]string{"email": "nobody@example.com"})

	assert.Equal(t, http.StatusOK, known.Code)
	assert.Equal(t, known.Code, unknown.Code)
	assert.Equal(t, known.Body.String(), unknown.Body.String())
}

func TestRouter_RegisterThenLoginRequiresActivation(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":         "brian@example.com",
		"name":          "Brian Kamau",
		"password":      "s3cret-pass",
		"date_of_birth": "1990-01-15",
		"gender":        "MALE",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	account := dataMap(t, decode(t, rec))
	assert.NotContains(t, account, "password_hash")
	id := account["id"].(string)

	login := map[string]string{"email": "brian@example.com", "password": "s3cret-pass"}
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodPost, "/api/v1/auth/login", "", login).Code)

	rec = s.do(http.MethodPatch, "/api/v1/users/"+id, s.tokenFor(s.hr), map[string]interface{}{"is_active": true})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/v1/auth/login", "", login)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, dataMap(t, decode(t, rec))["access_token"])
}

func TestRouter_RateLimitsPublicRoutes(t *testing.T) {
	s := newTestServer(t, ratelimit.NewKeyedLimiter(rate.Every(time.Hour), 2))

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/v1/verify/not-an-id", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/v1/verify/not-an-id", "", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, s.do(http.MethodGet, "/api/v1/verify/not-an-id", "", nil).Code)

	// Authenticated routes are not throttled
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/v1/profile", s.tokenFor(s.employee), nil).Code)
}

func TestRouter_DashboardAndFeed(t *testing.T) {
	s := newTestServer(t, nil)
	s.store.AddLeave(leave.LeaveRequest{
		UserID:    s.employee.ID,
		Category:  leave.CategoryAnnual,
		StartDate: time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 9, 3, 0, 0, 0, 0, time.UTC),
		Reason:    "Rest",
	})

	rec := s.do(http.MethodGet, "/api/v1/dashboard/summary", s.tokenFor(s.hr), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	summary := dataMap(t, decode(t, rec))
	assert.Equal(t, float64(1), summary["pending_leave_requests"])

	rec = s.do(http.MethodGet, "/api/v1/requests", s.tokenFor(s.hr), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode(t, rec)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(1), resp.Meta.TotalItems)

	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/api/v1/requests", s.tokenFor(s.employee), nil).Code)
}
