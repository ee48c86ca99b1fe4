package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"feedsvc/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestIdentityRequired(t *testing.T) {
	mockRepo := new(MockPostRepository)
	mockRepo.On("List", mock.Anything, mock.Anything).Return([]*models.Post{}, int64(0), nil)
	app := newTestApp(&Server{postRepo: mockRepo})

	tests := []struct {
		name           string
		setHeader      func(req *http.Request)
		expectedStatus int
	}{
		{
			name:           "Missing Header",
			setHeader:      func(req *http.Request) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "Blank Header",
			setHeader: func(req *http.Request) {
				req.Header.Set("X-Firebase-Uid", "   ")
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "Lowercase Header Name",
			setHeader: func(req *http.Request) {
				req.Header.Set("x-firebase-uid", "uid-123")
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Canonical Header Name",
			setHeader: func(req *http.Request) {
				req.Header.Set("X-Firebase-Uid", "uid-123")
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/posts", nil)
			tt.setHeader(req)

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			if tt.expectedStatus == http.StatusUnauthorized {
				var body models.ErrorResponse
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, models.CodeUnauthenticated, body.Code)
			}
		})
	}
}

func TestStatusCheck(t *testing.T) {
	s := &Server{}
	app := fiber.New()
	app.Get("/", s.StatusCheck)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Feed Service running", body["status"])
}
