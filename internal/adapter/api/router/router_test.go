package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"studymarket/internal/adapter/api"
	"studymarket/internal/adapter/api/handler"
	"studymarket/internal/adapter/api/middleware"
	"studymarket/internal/adapter/repository/memory"
	"studymarket/internal/domain/entity"
	"studymarket/internal/domain/repository"
	"studymarket/internal/infrastructure/auth"
	"studymarket/internal/infrastructure/ratelimit"
	"studymarket/internal/usecase"
)

type testServer struct {
	t      *testing.T
	e      *echo.Echo
	store  *memory.Store
	tokens *auth.TokenService
}

func newTestServer(t *testing.T, ping handler.Pinger) *testServer {
	t.Helper()

	store := memory.NewStore()
	tokens, err := auth.NewTokenService("router-test", time.Hour)
	require.NoError(t, err)
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	tx := usecase.NewTransactor(store, store, store.AuditLogs())

	handler.Setup(handler.UseCases{
		Auth:          usecase.NewAuthUseCase(store.Users(), store, hasher, tokens),
		User:          usecase.NewUserUseCase(store.Users(), store.Payments(), hasher, ratelimit.NewMemoryCooldownStore(), time.Minute),
		Course:        usecase.NewCourseUseCase(store.Courses(), store.Teachers(), store.Reviews(), store.TeacherReviews(), tx),
		StudySheet:    usecase.NewStudySheetUseCase(store.StudySheets(), store.Courses(), store.Purchases(), store.Payments(), store.Approvals(), tx),
		LeaseListing:  usecase.NewLeaseListingUseCase(store.LeaseListings(), store.InterestRequests(), store.Approvals(), tx),
		Review:        usecase.NewReviewUseCase(store.Reviews(), store.Courses(), store.Reports(), tx),
		TeacherReview: usecase.NewTeacherReviewUseCase(store.TeacherReviews(), store.Courses(), store.Reports(), tx),
		Moderation:    usecase.NewModerationUseCase(store.StudySheets(), store.LeaseListings(), store.Reviews(), store.TeacherReviews(), store.Teachers(), store.Approvals(), tx),
		Payment:       usecase.NewPaymentUseCase(store.Payments(), store.Users(), tx),
		Report:        usecase.NewReportUseCase(store.Reports(), store.Reviews(), store.TeacherReviews(), tx),
		Withdrawal:    usecase.NewWithdrawalUseCase(store.Withdrawals(), store.Users(), tx),
	})
	handler.SetupHealthHandler(ping)

	e := echo.New()
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.ErrorHandler
	Setup(e, middleware.NewAuthMiddleware(tokens), middleware.NewLimiters(1000, 1000))

	return &testServer{t: t, e: e, store: store, tokens: tokens}
}

// user inserts a user directly and returns a bearer token for it.
func (s *testServer) user(role entity.Role, balance int64) (*entity.User, string) {
	s.t.Helper()
	ctx := context.Background()

	id, err := s.store.NextID(ctx, repository.SeqUsers)
	require.NoError(s.t, err)
	now := time.Now().UTC()
	u := &entity.User{
		ID:            id,
		Email:         fmt.Sprintf("%s-%d@example.com", role, id),
		Name:          string(role),
		Role:          role,
		WalletBalance: balance,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(s.t, s.store.Users().Create(ctx, u))

	token, err := s.tokens.Issue(id, role)
	require.NoError(s.t, err)
	return u, token
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
}

type errorBody struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Error      string `json:"error"`
}

func requireError(t *testing.T, rec *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	var body errorBody
	decode(t, rec, &body)
	assert.Equal(t, status, body.StatusCode)
	assert.Equal(t, message, body.Message)
	assert.Equal(t, http.StatusText(status), body.Error)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, func(context.Context) error { return nil })
	rec := s.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	decode(t, rec, &body)
	assert.Equal(t, "ok", body["status"])

	s = newTestServer(t, func(context.Context) error { return errors.New("no primary") })
	rec = s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAuthAndRoleGuards(t *testing.T) {
	s := newTestServer(t, nil)
	_, studentToken := s.user(entity.RoleStudent, 0)
	_, staffToken := s.user(entity.RoleStaff, 0)

	requireError(t, s.do(http.MethodGet, "/v1/me", "", nil), http.StatusUnauthorized, "Unauthorized")
	requireError(t, s.do(http.MethodGet, "/v1/me", "garbage", nil), http.StatusUnauthorized, "Unauthorized")

	requireError(t, s.do(http.MethodGet, "/v1/moderation/study-sheets?status=PENDING", studentToken, nil), http.StatusForbidden, "Forbidden")
	requireError(t, s.do(http.MethodGet, "/v1/admin/payments?status=PENDING", staffToken, nil), http.StatusForbidden, "Forbidden")
	requireError(t, s.do(http.MethodPost, "/v1/study-sheets", staffToken, map[string]interface{}{}), http.StatusForbidden, "Forbidden")

	rec := s.do(http.MethodGet, "/v1/moderation/study-sheets?status=pending", staffToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	requireError(t, s.do(http.MethodGet, "/v1/moderation/study-sheets", staffToken, nil), http.StatusBadRequest, "Validation failed")
	requireError(t, s.do(http.MethodGet, "/v1/moderation/study-sheets?status=DONE", staffToken, nil), http.StatusBadRequest, "Validation failed")
}

func TestRegisterLoginAndProfile(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(http.MethodPost, "/v1/auth/register", "", map[string]string{
		"email": "new@example.com", "name": "New", "password": "pw",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var registered struct {
		AccessToken string `json:"access_token"`
	}
	decode(t, rec, &registered)
	require.NotEmpty(t, registered.AccessToken)

	requireError(t, s.do(http.MethodPost, "/v1/auth/register", "", map[string]string{
		"email": "NEW@example.com", "name": "Dup", "password": "pw",
	}), http.StatusBadRequest, "Email already exists")

	requireError(t, s.do(http.MethodPost, "/v1/auth/register", "", map[string]string{
		"email": "not-an-email", "name": "x", "password": "pw",
	}), http.StatusBadRequest, "email must be a valid email address")

	requireError(t, s.do(http.MethodPost, "/v1/auth/login", "", map[string]string{
		"email": "new@example.com", "password": "nope",
	}), http.StatusUnauthorized, "Invalid credentials")

	rec = s.do(http.MethodGet, "/v1/me", registered.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me map[string]interface{}
	decode(t, rec, &me)
	assert.Equal(t, "new@example.com", me["email"])
	assert.Equal(t, "STUDENT", me["role"])
	assert.NotContains(t, me, "passwordHash")
}

func TestStudySheetPurchaseFlow(t *testing.T) {
	s := newTestServer(t, nil)
	seller, sellerToken := s.user(entity.RoleStudent, 0)
	_, buyerToken := s.user(entity.RoleStudent, 0)
	_, staffToken := s.user(entity.RoleStaff, 0)
	_, adminToken := s.user(entity.RoleAdmin, 0)

	requireError(t, s.do(http.MethodPost, "/v1/study-sheets", sellerToken, map[string]interface{}{
		"title": "Notes", "fileUrl": "https://f/x.pdf", "courseCode": "CS101",
	}), http.StatusBadRequest, "priceCents is required")

	rec := s.do(http.MethodPost, "/v1/study-sheets", sellerToken, map[string]interface{}{
		"title": " Notes ", "fileUrl": "https://f/x.pdf", "priceCents": 1200, "courseCode": "CS101",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var sheet entity.StudySheet
	decode(t, rec, &sheet)
	assert.Equal(t, "Notes", sheet.Title)
	assert.Equal(t, entity.StudySheetPending, sheet.Status)

	requireError(t, s.do(http.MethodPost, fmt.Sprintf("/v1/moderation/study-sheets/%d/reject", sheet.ID), staffToken, map[string]string{}),
		http.StatusBadRequest, "reason is required")

	rec = s.do(http.MethodPost, fmt.Sprintf("/v1/moderation/study-sheets/%d/approve", sheet.ID), staffToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/v1/study-sheets?courseCode=CS101", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []entity.StudySheet
	decode(t, rec, &listed)
	require.Len(t, listed, 1)

	rec = s.do(http.MethodPost, fmt.Sprintf("/v1/study-sheets/%d/purchase", sheet.ID), buyerToken, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var receipt entity.PurchaseReceipt
	decode(t, rec, &receipt)
	assert.EqualValues(t, 1200, receipt.Amount)
	assert.Regexp(t, `^REF-[0-9A-Z]+-[0-9A-F]{6}$`, receipt.ReferenceCode)

	requireError(t, s.do(http.MethodPost, fmt.Sprintf("/v1/study-sheets/%d/purchase", sheet.ID), buyerToken, nil),
		http.StatusBadRequest, "Already purchased")

	requireError(t, s.do(http.MethodGet, "/v1/admin/payments", adminToken, nil), http.StatusBadRequest, "Validation failed")

	rec = s.do(http.MethodPost, fmt.Sprintf("/v1/admin/payments/%d/confirm", receipt.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = s.do(http.MethodPost, fmt.Sprintf("/v1/admin/payments/%d/release", receipt.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	requireError(t, s.do(http.MethodPost, fmt.Sprintf("/v1/admin/payments/%d/release", receipt.ID), adminToken, nil),
		http.StatusBadRequest, "Payment cannot be released")

	rec = s.do(http.MethodGet, "/v1/me/wallet", sellerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var wallet entity.WalletSummary
	decode(t, rec, &wallet)
	assert.EqualValues(t, 1200, wallet.WalletBalance)
	assert.EqualValues(t, 1200, wallet.TotalEarned)

	rec = s.do(http.MethodPost, "/v1/withdrawals", sellerToken, map[string]int64{"amountCents": 1000})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	requireError(t, s.do(http.MethodPost, "/v1/withdrawals", sellerToken, map[string]int64{"amountCents": 1000}),
		http.StatusBadRequest, "Insufficient wallet balance")

	stored, err := s.store.Users().GetByID(context.Background(), seller.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 200, stored.WalletBalance)
}

func TestReportAndRemoveTargetFlow(t *testing.T) {
	s := newTestServer(t, nil)
	_, authorToken := s.user(entity.RoleStudent, 0)
	_, reporterToken := s.user(entity.RoleStudent, 0)
	_, adminToken := s.user(entity.RoleAdmin, 0)

	rec := s.do(http.MethodPost, "/v1/courses", authorToken, map[string]string{"code": "ART1", "name": "Drawing"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var course entity.Course
	decode(t, rec, &course)

	requireError(t, s.do(http.MethodPost, "/v1/courses", authorToken, map[string]string{"code": "ART1", "name": "Again"}),
		http.StatusConflict, "Course code already exists")

	rec = s.do(http.MethodPost, "/v1/reviews", authorToken, map[string]interface{}{"courseId": course.ID, "rating": 5, "text": "fun"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var review entity.Review
	decode(t, rec, &review)

	requireError(t, s.do(http.MethodPost, "/v1/reviews", reporterToken, map[string]interface{}{"courseId": course.ID, "rating": 6, "text": "x"}),
		http.StatusBadRequest, "rating must be at most 5")

	reportPath := fmt.Sprintf("/v1/reviews/%d/report", review.ID)
	requireError(t, s.do(http.MethodPost, reportPath, reporterToken, map[string]string{"reason": "  "}),
		http.StatusBadRequest, "reason is required")

	rec = s.do(http.MethodPost, reportPath, reporterToken, map[string]string{"reason": "spam"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var report entity.Report
	decode(t, rec, &report)

	requireError(t, s.do(http.MethodPost, reportPath, reporterToken, map[string]string{"reason": "spam"}),
		http.StatusConflict, "Report already submitted")

	rec = s.do(http.MethodGet, fmt.Sprintf("/v1/courses/%d/reviews", course.ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var visible []entity.Review
	decode(t, rec, &visible)
	assert.Empty(t, visible, "reported reviews leave the public list")

	rec = s.do(http.MethodGet, "/v1/admin/reports", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var pending []entity.Report
	decode(t, rec, &pending)
	require.Len(t, pending, 1)

	rec = s.do(http.MethodPost, fmt.Sprintf("/v1/admin/reports/%d/remove-target", report.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var result usecase.ReportStatusResult
	decode(t, rec, &result)
	assert.Equal(t, entity.ReportResolved, result.Status)

	requireError(t, s.do(http.MethodPatch, fmt.Sprintf("/v1/admin/reports/%d/status", report.ID), adminToken, map[string]string{"status": "rejected"}),
		http.StatusBadRequest, "Report cannot be updated")
}

func TestRateLimitReturns429(t *testing.T) {
	s := newTestServer(t, nil)
	limited := echo.New()
	limited.Validator = api.NewValidator()
	limited.HTTPErrorHandler = api.ErrorHandler
	Setup(limited, middleware.NewAuthMiddleware(s.tokens), middleware.NewLimiters(0, 2))
	s.e = limited

	for i := 0; i < 2; i++ {
		assert.NotEqual(t, http.StatusTooManyRequests, s.do(http.MethodGet, "/v1/courses", "", nil).Code)
	}
	rec := s.do(http.MethodGet, "/v1/courses", "", nil)
	requireError(t, rec, http.StatusTooManyRequests, "Too many requests")
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}
