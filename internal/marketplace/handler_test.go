package marketplace_test

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hustlehub/backend/common"
	"github.com/hustlehub/backend/internal/config"
	"github.com/hustlehub/backend/internal/dto"
	"github.com/hustlehub/backend/internal/marketplace"
	"github.com/hustlehub/backend/internal/mocks"
	"github.com/hustlehub/backend/internal/models"
	"github.com/hustlehub/backend/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestRouter(store *mocks.StoreMock, service *mocks.ServiceMock) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(middleware.ErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil))))

	api := r.Group("/api/v1")
	api.Use(marketplace.RequireActor(store))
	marketplace.NewHandler(service).Routes(api)
	return r
}

func doRequest(r *gin.Engine, method, path, userID, body string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func stubActor(store *mocks.StoreMock, id uint) {
	store.On("GetUser", mock.Anything, id).Return(&models.User{
		ID:               id,
		Email:            fmt.Sprintf("user%d@example.com", id),
		CanActAsCustomer: true,
		CanActAsHustler:  true,
	}, nil)
}

func TestHandler_CreateJob(t *testing.T) {
	start := time.Now().Add(24 * time.Hour).Format(time.RFC3339)

	tests := []struct {
		name           string
		userID         string
		body           string
		setupMock      func(*mocks.ServiceMock)
		expectedStatus int
	}{
		{
			name:   "created",
			userID: "1",
			body: fmt.Sprintf(`{"title":"Mow the lawn","category":"yardwork","address":"12 Main St",
				"scheduled_date":%q,"scheduled_start":%q,"pay_type":"flat","amount":60}`, start, start),
			setupMock: func(m *mocks.ServiceMock) {
				m.On("CreateJob", mock.Anything, mock.Anything, mock.Anything).
					Return(&dto.JobDTO{ID: 1, Status: config.JobStatusOpen}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "malformed body",
			userID:         "1",
			body:           "{not json}",
			setupMock:      func(m *mocks.ServiceMock) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing required fields",
			userID:         "1",
			body:           `{"title":"x"}`,
			setupMock:      func(m *mocks.ServiceMock) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "service rejects category",
			userID: "1",
			body: fmt.Sprintf(`{"title":"Weld","category":"welding","address":"12 Main St",
				"scheduled_date":%q,"scheduled_start":%q,"pay_type":"flat","amount":60}`, start, start),
			setupMock: func(m *mocks.ServiceMock) {
				m.On("CreateJob", mock.Anything, mock.Anything, mock.Anything).
					Return(nil, common.Errf(http.StatusBadRequest, "invalid category"))
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing user header",
			userID:         "",
			body:           `{}`,
			setupMock:      func(m *mocks.ServiceMock) {},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(mocks.StoreMock)
			stubActor(store, 1)

			service := new(mocks.ServiceMock)
			tt.setupMock(service)

			r := newTestRouter(store, service)
			w := doRequest(r, http.MethodPost, "/api/v1/jobs", tt.userID, tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code, "body: %s", w.Body.String())
			service.AssertExpectations(t)
		})
	}
}

func TestHandler_GetJob(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		setupMock      func(*mocks.ServiceMock)
		expectedStatus int
	}{
		{
			name: "found",
			path: "/api/v1/jobs/5",
			setupMock: func(m *mocks.ServiceMock) {
				m.On("GetJob", mock.Anything, mock.Anything, uint(5)).
					Return(&dto.JobDTO{ID: 5, Status: config.JobStatusOpen}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "non-numeric id",
			path:           "/api/v1/jobs/abc",
			setupMock:      func(m *mocks.ServiceMock) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "not found",
			path: "/api/v1/jobs/99",
			setupMock: func(m *mocks.ServiceMock) {
				m.On("GetJob", mock.Anything, mock.Anything, uint(99)).
					Return(nil, common.NotFoundf("job 99 not found"))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(mocks.StoreMock)
			stubActor(store, 1)

			service := new(mocks.ServiceMock)
			tt.setupMock(service)

			r := newTestRouter(store, service)
			w := doRequest(r, http.MethodGet, tt.path, "1", "")

			assert.Equal(t, tt.expectedStatus, w.Code)
			service.AssertExpectations(t)
		})
	}
}

func TestHandler_ConfirmCompletion(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(*mocks.ServiceMock)
		expectedStatus int
	}{
		{
			name: "confirmed",
			body: `{"code":"567890","tip":10}`,
			setupMock: func(m *mocks.ServiceMock) {
				m.On("ConfirmCompletion", mock.Anything, mock.Anything, uint(5), "567890", 10.0).
					Return(&dto.JobDTO{ID: 5, Status: config.JobStatusCompleted}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing code fails validation",
			body:           `{"tip":10}`,
			setupMock:      func(m *mocks.ServiceMock) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "dispute freeze surfaces as conflict",
			body: `{"code":"567890"}`,
			setupMock: func(m *mocks.ServiceMock) {
				m.On("ConfirmCompletion", mock.Anything, mock.Anything, uint(5), "567890", 0.0).
					Return(nil, common.Conflictf("payment release is frozen while a dispute is open"))
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "gateway failure maps to bad gateway",
			body: `{"code":"567890"}`,
			setupMock: func(m *mocks.ServiceMock) {
				m.On("ConfirmCompletion", mock.Anything, mock.Anything, uint(5), "567890", 0.0).
					Return(nil, common.NewGatewayError("capture", false, fmt.Errorf("provider down")))
			},
			expectedStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(mocks.StoreMock)
			stubActor(store, 1)

			service := new(mocks.ServiceMock)
			tt.setupMock(service)

			r := newTestRouter(store, service)
			w := doRequest(r, http.MethodPost, "/api/v1/jobs/5/confirm", "1", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code, "body: %s", w.Body.String())
			service.AssertExpectations(t)
		})
	}
}

func TestHandler_ReleaseOverdue(t *testing.T) {
	store := new(mocks.StoreMock)
	stubActor(store, 1)

	service := new(mocks.ServiceMock)
	service.On("ReleaseOverdue", mock.Anything).Return(3, nil)

	r := newTestRouter(store, service)
	w := doRequest(r, http.MethodPost, "/api/v1/internal/release-overdue", "1", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"released":3}`, w.Body.String())
}

func TestHandler_RequireActor(t *testing.T) {
	t.Run("unknown user is unauthorized", func(t *testing.T) {
		store := new(mocks.StoreMock)
		store.On("GetUser", mock.Anything, uint(42)).
			Return(nil, fmt.Errorf("record not found"))

		r := newTestRouter(store, new(mocks.ServiceMock))
		w := doRequest(r, http.MethodGet, "/api/v1/jobs", "42", "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage header is unauthorized", func(t *testing.T) {
		r := newTestRouter(new(mocks.StoreMock), new(mocks.ServiceMock))
		w := doRequest(r, http.MethodGet, "/api/v1/jobs", "zero", "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
