package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/safezone_notifier/internal/config"
	"github.com/shenikar/safezone_notifier/internal/models"
	"github.com/shenikar/safezone_notifier/internal/service"
	"github.com/shenikar/safezone_notifier/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type handlerMocks struct {
	notifier      *mocks.MockNotifier
	reports       *mocks.MockReportService
	subscriptions *mocks.MockSubscriptionService
	votes         *mocks.MockVoteService
}

// newTestHandler создает Handler с мокированными сервисами
func newTestHandler(t *testing.T) (*Handler, *handlerMocks, *gin.Engine) {
	ctrl := gomock.NewController(t)
	m := &handlerMocks{
		notifier:      mocks.NewMockNotifier(ctrl),
		reports:       mocks.NewMockReportService(ctrl),
		subscriptions: mocks.NewMockSubscriptionService(ctrl),
		votes:         mocks.NewMockVoteService(ctrl),
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		APIKeys: []string{"test-api-key"},
	}

	handler := NewHandler(m.notifier, m.reports, m.subscriptions, m.votes, logger, cfg)

	// Настройка Gin роутера для тестов
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return handler, m, router
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

var adminKey = map[string]string{"X-API-Key": "test-api-key"}

// --- reports ---

func TestCreateReport_Success(t *testing.T) {
	_, m, router := newTestHandler(t)
	createdAt := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	reqBody := CreateReportRequest{
		UserID:      "user-1",
		Latitude:    -6.2,
		Longitude:   106.8,
		Category:    models.CategoryFlood,
		Description: "Banjir setinggi lutut",
	}

	m.reports.EXPECT().
		CreateReport(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r *models.Report) error {
			assert.Equal(t, reqBody.Description, r.Description)
			r.ID = 17
			r.Status = models.ReportStatusPendingReview
			r.CreatedAt = createdAt
			return nil
		}).Times(1)

	w := makeRequest(router, "POST", "/api/v1/reports", jsonBody(t, reqBody))

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp ReportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(17), resp.ID)
	assert.Equal(t, models.ReportStatusPendingReview, resp.Status)
	assert.Equal(t, "🌊", resp.Icon)
	assert.Equal(t, "#2563eb", resp.Color)
}

func TestCreateReport_InvalidJSON(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.reports.EXPECT().CreateReport(gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	w := makeRequest(router, "POST", "/api/v1/reports", bytes.NewBufferString(`{"user_id": "u"`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestCreateReport_UnknownCategory(t *testing.T) {
	_, m, router := newTestHandler(t)
	reqBody := CreateReportRequest{
		UserID:      "user-1",
		Latitude:    -6.2,
		Longitude:   106.8,
		Category:    "meteor",
		Description: "Something fell",
	}

	m.reports.EXPECT().CreateReport(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "POST", "/api/v1/reports", jsonBody(t, reqBody))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Error:Field validation for 'Category' failed on the 'report_category' tag")
}

func TestCreateReport_OutOfRangeLatitude(t *testing.T) {
	_, m, router := newTestHandler(t)
	reqBody := CreateReportRequest{
		UserID:      "user-1",
		Latitude:    91,
		Longitude:   106.8,
		Category:    models.CategoryRoad,
		Description: "Jalan berlubang",
	}

	m.reports.EXPECT().CreateReport(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "POST", "/api/v1/reports", jsonBody(t, reqBody))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "'Latitude' failed on the 'latitude' tag")
}

func TestCreateReport_ServiceError(t *testing.T) {
	_, m, router := newTestHandler(t)
	reqBody := CreateReportRequest{
		UserID:      "user-1",
		Latitude:    -6.2,
		Longitude:   106.8,
		Category:    models.CategoryCrime,
		Description: "Pencurian motor",
	}

	m.reports.EXPECT().
		CreateReport(gomock.Any(), gomock.Any()).
		Return(errors.New("service: could not create report: connection reset")).
		Times(1)

	w := makeRequest(router, "POST", "/api/v1/reports", jsonBody(t, reqBody))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
}

func TestGetReport_Success(t *testing.T) {
	_, m, router := newTestHandler(t)
	expected := &models.Report{
		ID:          5,
		UserID:      "user-2",
		Latitude:    -6.9,
		Longitude:   107.6,
		Category:    models.CategoryLamp,
		Description: "Lampu jalan mati",
		Status:      models.ReportStatusOpen,
	}

	m.reports.EXPECT().GetReport(gomock.Any(), int64(5)).Return(expected, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/reports/5", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp ReportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, "💡", resp.Icon)
}

func TestGetReport_InvalidID(t *testing.T) {
	for _, id := range []string{"abc", "0", "-3"} {
		_, m, router := newTestHandler(t)

		m.reports.EXPECT().GetReport(gomock.Any(), gomock.Any()).Times(0)

		w := makeRequest(router, "GET", "/api/v1/reports/"+id, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code, id)
		assert.Contains(t, w.Body.String(), "invalid report ID")
	}
}

func TestGetReport_NotFound(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.reports.EXPECT().GetReport(gomock.Any(), int64(404)).Return(nil, &service.ReportNotFoundError{ReportID: 404}).Times(1)

	w := makeRequest(router, "GET", "/api/v1/reports/404", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "report not found")
}

func TestListReports_PassesQuery(t *testing.T) {
	_, m, router := newTestHandler(t)
	reports := []*models.Report{
		{ID: 2, Category: models.CategoryAccident, Status: models.ReportStatusOpen},
		{ID: 1, Category: models.CategoryOther, Status: models.ReportStatusOpen},
	}

	m.reports.EXPECT().ListReports(gomock.Any(), "open", 2, 10).Return(reports, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/reports?status=open&page=2&pageSize=10", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []ReportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, int64(2), resp[0].ID)
}

func TestListReports_UnknownStatus(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.reports.EXPECT().
		ListReports(gomock.Any(), "archived", 1, 20).
		Return(nil, &service.ValidationError{Field: "status", Constraint: "unknown report status"}).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/reports?status=archived", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid status: unknown report status")
}

func TestListReportScores_Success(t *testing.T) {
	_, m, router := newTestHandler(t)
	scores := []*models.ReportScore{
		{ReportID: 3, Upvotes: 5, Downvotes: 1, Score: 4},
		{ReportID: 8, Upvotes: 1, Downvotes: 2, Score: -1},
	}

	m.reports.EXPECT().ListReportScores(gomock.Any(), 10).Return(scores, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/reports/scores?limit=10", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []ReportScoreResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, 4, resp[0].Score)
	assert.Equal(t, -1, resp[1].Score)
}

func TestUpdateReportStatus_Success(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.reports.EXPECT().UpdateReportStatus(gomock.Any(), int64(9), models.ReportStatusVerified).Return(nil).Times(1)

	w := makeRequest(router, "PATCH", "/api/v1/admin/reports/9/status",
		jsonBody(t, UpdateReportStatusRequest{Status: models.ReportStatusVerified}), adminKey)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestUpdateReportStatus_InvalidStatus(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.reports.EXPECT().UpdateReportStatus(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "PATCH", "/api/v1/admin/reports/9/status",
		jsonBody(t, UpdateReportStatusRequest{Status: "archived"}), adminKey)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "failed on the 'oneof' tag")
}

func TestUpdateReportStatus_NotFound(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.reports.EXPECT().
		UpdateReportStatus(gomock.Any(), int64(9), models.ReportStatusResolved).
		Return(&service.ReportNotFoundError{ReportID: 9}).
		Times(1)

	w := makeRequest(router, "PATCH", "/api/v1/admin/reports/9/status",
		jsonBody(t, UpdateReportStatusRequest{Status: models.ReportStatusResolved}), adminKey)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// --- votes ---

func TestCastVote_Success(t *testing.T) {
	_, m, router := newTestHandler(t)
	expected := &models.Vote{ReportID: 5, UserID: "user-3", Type: models.VoteUp}

	m.votes.EXPECT().CastVote(gomock.Any(), expected).Return(nil).Times(1)

	w := makeRequest(router, "PUT", "/api/v1/reports/5/votes",
		jsonBody(t, CastVoteRequest{UserID: "user-3", VoteType: models.VoteUp}))

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCastVote_InvalidType(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.votes.EXPECT().CastVote(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "PUT", "/api/v1/reports/5/votes",
		jsonBody(t, CastVoteRequest{UserID: "user-3", VoteType: "meh"}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCastVote_ReportNotFound(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.votes.EXPECT().CastVote(gomock.Any(), gomock.Any()).Return(&service.ReportNotFoundError{ReportID: 5}).Times(1)

	w := makeRequest(router, "PUT", "/api/v1/reports/5/votes",
		jsonBody(t, CastVoteRequest{UserID: "user-3", VoteType: models.VoteDown}))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "report not found")
}

func TestRetractVote(t *testing.T) {
	_, m, router := newTestHandler(t)

	gomock.InOrder(
		m.votes.EXPECT().RetractVote(gomock.Any(), int64(5), "user-3").Return(nil),
		m.votes.EXPECT().RetractVote(gomock.Any(), int64(5), "user-3").
			Return(fmt.Errorf("service: vote of user user-3 on report 5: %w", service.ErrNotFound)),
	)

	w := makeRequest(router, "DELETE", "/api/v1/reports/5/votes/user-3", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = makeRequest(router, "DELETE", "/api/v1/reports/5/votes/user-3", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "vote not found")
}

// --- subscriptions ---

func TestUpsertSubscription_Success(t *testing.T) {
	_, m, router := newTestHandler(t)
	reqBody := SubscriptionRequest{UserID: "user-4", CenterLat: -6.2, CenterLng: 106.8, RadiusMeters: 1500}

	m.subscriptions.EXPECT().
		Subscribe(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, sub *models.Subscription) error {
			assert.Equal(t, 1500.0, sub.RadiusMeters)
			sub.ID = 11
			return nil
		}).Times(1)

	w := makeRequest(router, "PUT", "/api/v1/subscriptions", jsonBody(t, reqBody))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp SubscriptionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(11), resp.ID)
	assert.Equal(t, "user-4", resp.UserID)
}

func TestUpsertSubscription_RadiusOutOfRange(t *testing.T) {
	for _, radius := range []float64{0, -10, 50001} {
		_, m, router := newTestHandler(t)

		m.subscriptions.EXPECT().Subscribe(gomock.Any(), gomock.Any()).Times(0)

		w := makeRequest(router, "PUT", "/api/v1/subscriptions",
			jsonBody(t, SubscriptionRequest{UserID: "user-4", CenterLat: 1, CenterLng: 1, RadiusMeters: radius}))

		assert.Equal(t, http.StatusBadRequest, w.Code, radius)
		assert.Contains(t, w.Body.String(), "'RadiusMeters'")
	}
}

func TestGetSubscription_NotFound(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.subscriptions.EXPECT().
		GetSubscription(gomock.Any(), "ghost").
		Return(nil, fmt.Errorf("service: subscription for user ghost: %w", service.ErrNotFound)).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/subscriptions/ghost", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "subscription not found")
}

func TestDeleteSubscription_Success(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.subscriptions.EXPECT().Unsubscribe(gomock.Any(), "user-4").Return(nil).Times(1)

	w := makeRequest(router, "DELETE", "/api/v1/subscriptions/user-4", nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

// --- misc ---

func TestListCategories(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/categories", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]models.CategoryStyle
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 7)
	assert.Equal(t, "🚨", resp[models.CategoryCrime].Icon)
}

func TestHealthCheck_Success(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

// --- auth ---

func TestAPIKeyAuthMiddleware_BearerToken(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.reports.EXPECT().UpdateReportStatus(gomock.Any(), int64(1), models.ReportStatusApproved).Return(nil).Times(1)

	w := makeRequest(router, "PATCH", "/api/v1/admin/reports/1/status",
		jsonBody(t, UpdateReportStatusRequest{Status: models.ReportStatusApproved}),
		map[string]string{"Authorization": "Bearer test-api-key"})

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestAPIKeyAuthMiddleware_MissingKey(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.reports.EXPECT().UpdateReportStatus(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "PATCH", "/api/v1/admin/reports/1/status",
		jsonBody(t, UpdateReportStatusRequest{Status: models.ReportStatusApproved}))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "API key required")
}

func TestAPIKeyAuthMiddleware_InvalidKey(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.reports.EXPECT().UpdateReportStatus(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "PATCH", "/api/v1/admin/reports/1/status",
		jsonBody(t, UpdateReportStatusRequest{Status: models.ReportStatusApproved}),
		map[string]string{"X-API-Key": "wrong"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid API key")
}
