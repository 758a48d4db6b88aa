package v1

import (
	"bytes"
	"errors"
	"net/http"
	"testing"

	"github.com/shenikar/safezone_notifier/internal/models"
	"github.com/shenikar/safezone_notifier/internal/service"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func assertCORS(t *testing.T, header http.Header) {
	t.Helper()
	assert.Equal(t, "*", header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "authorization, x-client-info, apikey, content-type", header.Get("Access-Control-Allow-Headers"))
}

func TestNotify_Success(t *testing.T) {
	_, m, router := newTestHandler(t)
	result := &models.NotifyResult{
		NotifiedCount: 2,
		Notifications: []models.NotificationIntent{
			{UserID: "user-a", ReportID: 42, Status: models.NotificationStatusNotified},
			{UserID: "user-b", ReportID: 42, Status: models.NotificationStatusNotified},
		},
		SubscriptionCount: 5,
	}

	m.notifier.EXPECT().NotifySubscribers(gomock.Any(), int64(42)).Return(result, nil).Times(1)

	w := makeRequest(router, "POST", "/api/v1/notify", bytes.NewBufferString(`{"report_id": 42}`))

	assert.Equal(t, http.StatusOK, w.Code)
	assertCORS(t, w.Header())
	assert.JSONEq(t, `{
		"message": "Successfully processed report 42. Notified 2 subscribers.",
		"notified_users": [
			{"userId": "user-a", "status": "notified"},
			{"userId": "user-b", "status": "notified"}
		]
	}`, w.Body.String())
}

func TestNotify_IntegerNotations(t *testing.T) {
	cases := []struct {
		name string
		body string
		id   int64
	}{
		{name: "trailing zero fraction", body: `{"report_id": 5.0}`, id: 5},
		{name: "exponent", body: `{"report_id": 5e0}`, id: 5},
		{name: "positive exponent", body: `{"report_id": 1e2}`, id: 100},
		{name: "trailing whitespace", body: "{\"report_id\": 9}\n", id: 9},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, m, router := newTestHandler(t)
			m.notifier.EXPECT().NotifySubscribers(gomock.Any(), tc.id).Return(&models.NotifyResult{
				Notifications: []models.NotificationIntent{},
			}, nil).Times(1)

			w := makeRequest(router, "POST", "/api/v1/notify", bytes.NewBufferString(tc.body))

			assert.Equal(t, http.StatusOK, w.Code)
			assertCORS(t, w.Header())
		})
	}
}

func TestNotify_NoSubscribers(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.notifier.EXPECT().
		NotifySubscribers(gomock.Any(), int64(3)).
		Return(&models.NotifyResult{Notifications: []models.NotificationIntent{}}, nil).
		Times(1)

	w := makeRequest(router, "POST", "/api/v1/notify", bytes.NewBufferString(`{"report_id": 3}`))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message": "No subscribers to notify.", "notified_users": []}`, w.Body.String())
}

func TestNotify_NoMatches(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.notifier.EXPECT().
		NotifySubscribers(gomock.Any(), int64(3)).
		Return(&models.NotifyResult{Notifications: []models.NotificationIntent{}, SubscriptionCount: 4}, nil).
		Times(1)

	w := makeRequest(router, "POST", "/api/v1/notify", bytes.NewBufferString(`{"report_id": 3}`))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message": "Successfully processed report 3. Notified 0 subscribers.", "notified_users": []}`, w.Body.String())
}

func TestNotify_InvalidInput(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		expected string
	}{
		{
			name:     "zero id",
			body:     `{"report_id": 0}`,
			expected: `{"error":"Invalid input","details":{"formErrors":[],"fieldErrors":{"report_id":["Number must be greater than 0"]}}}`,
		},
		{
			name:     "negative id",
			body:     `{"report_id": -1}`,
			expected: `{"error":"Invalid input","details":{"formErrors":[],"fieldErrors":{"report_id":["Number must be greater than 0"]}}}`,
		},
		{
			name:     "missing id",
			body:     `{}`,
			expected: `{"error":"Invalid input","details":{"formErrors":[],"fieldErrors":{"report_id":["Required"]}}}`,
		},
		{
			name:     "string id",
			body:     `{"report_id": "42"}`,
			expected: `{"error":"Invalid input","details":{"formErrors":[],"fieldErrors":{"report_id":["Expected number"]}}}`,
		},
		{
			name:     "fractional id",
			body:     `{"report_id": 4.5}`,
			expected: `{"error":"Invalid input","details":{"formErrors":[],"fieldErrors":{"report_id":["Expected integer"]}}}`,
		},
		{
			name:     "id beyond int64",
			body:     `{"report_id": 1e300}`,
			expected: `{"error":"Invalid input","details":{"formErrors":[],"fieldErrors":{"report_id":["Number must be less than or equal to 9223372036854775807"]}}}`,
		},
		{
			name:     "negative exponent form",
			body:     `{"report_id": -2e0}`,
			expected: `{"error":"Invalid input","details":{"formErrors":[],"fieldErrors":{"report_id":["Number must be greater than 0"]}}}`,
		},
		{
			name:     "trailing data",
			body:     `{"report_id": 1}garbage`,
			expected: `{"error":"Invalid input","details":{"formErrors":["Expected a JSON object body"],"fieldErrors":{}}}`,
		},
		{
			name:     "two objects",
			body:     `{"report_id": 1} {"report_id": 2}`,
			expected: `{"error":"Invalid input","details":{"formErrors":["Expected a JSON object body"],"fieldErrors":{}}}`,
		},
		{
			name:     "malformed body",
			body:     `{"report_id": `,
			expected: `{"error":"Invalid input","details":{"formErrors":["Expected a JSON object body"],"fieldErrors":{}}}`,
		},
		{
			name:     "array body",
			body:     `[42]`,
			expected: `{"error":"Invalid input","details":{"formErrors":["Expected a JSON object body"],"fieldErrors":{}}}`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, m, router := newTestHandler(t)

			// До обращения к хранилищу дело не доходит
			m.notifier.EXPECT().NotifySubscribers(gomock.Any(), gomock.Any()).Times(0)

			w := makeRequest(router, "POST", "/api/v1/notify", bytes.NewBufferString(tc.body))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assertCORS(t, w.Header())
			assert.JSONEq(t, tc.expected, w.Body.String())
		})
	}
}

func TestNotify_ReportNotFound(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.notifier.EXPECT().
		NotifySubscribers(gomock.Any(), int64(7)).
		Return(nil, &service.ReportNotFoundError{ReportID: 7}).
		Times(1)

	w := makeRequest(router, "POST", "/api/v1/notify", bytes.NewBufferString(`{"report_id": 7}`))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assertCORS(t, w.Header())
	assert.JSONEq(t, `{"error": "report 7 not found"}`, w.Body.String())
}

func TestNotify_StorageError(t *testing.T) {
	_, m, router := newTestHandler(t)
	storageErr := &service.StorageError{Op: "list_subscriptions", Err: errors.New("connection refused")}

	m.notifier.EXPECT().NotifySubscribers(gomock.Any(), int64(7)).Return(nil, storageErr).Times(1)

	w := makeRequest(router, "POST", "/api/v1/notify", bytes.NewBufferString(`{"report_id": 7}`))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error": "storage error during list_subscriptions: connection refused"}`, w.Body.String())
}

func TestNotify_Preflight(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.notifier.EXPECT().NotifySubscribers(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "OPTIONS", "/api/v1/notify", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assertCORS(t, w.Header())
	assert.Equal(t, "ok", w.Body.String())
}
