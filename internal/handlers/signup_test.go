package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sbilibin2017/blog-api/internal/logger"
	"github.com/sbilibin2017/blog-api/internal/middlewares"
	"github.com/sbilibin2017/blog-api/internal/services"
)

func TestSignupHandler(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		mockSetup    func(m *MockSignUpper)
		expectedCode int
		expectedBody map[string]string
	}{
		{
			name: "success",
			body: `{"username":"a","email":"a@x.com","password":"p"}`,
			mockSetup: func(m *MockSignUpper) {
				m.EXPECT().
					Signup(gomock.Any(), "a", "a@x.com", "p").
					Return(nil)
			},
			expectedCode: http.StatusCreated,
			expectedBody: map[string]string{"message": "User registered in MongoDB"},
		},
		{
			name: "user already exists",
			body: `{"username":"a","email":"a@x.com","password":"p"}`,
			mockSetup: func(m *MockSignUpper) {
				m.EXPECT().
					Signup(gomock.Any(), "a", "a@x.com", "p").
					Return(services.ErrUserAlreadyExists)
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: map[string]string{"message": "User already exists"},
		},
		{
			name: "internal server error",
			body: `{"username":"bob","email":"bob@example.com","password":"pass"}`,
			mockSetup: func(m *MockSignUpper) {
				m.EXPECT().
					Signup(gomock.Any(), "bob", "bob@example.com", "pass").
					Return(errors.New("database failure"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: map[string]string{"message": "Server error"},
		},
		{
			name:         "missing password",
			body:         `{"username":"a","email":"a@x.com"}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: map[string]string{"message": "Invalid field password: failed on required"},
		},
		{
			name: "email stored as given",
			body: `{"username":"a","email":"not-an-email","password":"p"}`,
			mockSetup: func(m *MockSignUpper) {
				m.EXPECT().
					Signup(gomock.Any(), "a", "not-an-email", "p").
					Return(nil)
			},
			expectedCode: http.StatusCreated,
			expectedBody: map[string]string{"message": "User registered in MongoDB"},
		},
		{
			name:         "empty body",
			body:         ``,
			expectedCode: http.StatusBadRequest,
			expectedBody: map[string]string{"message": "Invalid field username: failed on required"},
		},
		{
			name:         "password of wrong type",
			body:         `{"username":"a","email":"a@x.com","password":12345}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: map[string]string{"message": "Invalid value for field password: expected string"},
		},
		{
			name:         "invalid json",
			body:         `{invalid json}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: map[string]string{"message": "Invalid request body"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockSvc := NewMockSignUpper(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/signup", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()

			NewSignupHandler(mockSvc)(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			var resp map[string]string
			err := json.Unmarshal(rr.Body.Bytes(), &resp)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedBody, resp)
		})
	}
}

func TestSignupHandler_LogsRequestID(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	prev := logger.Log
	logger.Log = zap.New(core).Sugar()
	t.Cleanup(func() { logger.Log = prev })

	ctrl := gomock.NewController(t)
	mockSvc := NewMockSignUpper(ctrl)
	mockSvc.EXPECT().
		Signup(gomock.Any(), "a", "a@x.com", "p").
		Return(errors.New("database failure"))

	handler := middlewares.LoggingMiddleware(zap.NewNop().Sugar())(NewSignupHandler(mockSvc))

	req := httptest.NewRequest(http.MethodPost, "/api/signup",
		bytes.NewBufferString(`{"username":"a","email":"a@x.com","password":"p"}`))
	req.Header.Set(middlewares.RequestIDHeader, "req-42")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	entries := logs.FilterMessage("failed to sign up user").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "req-42", entries[0].ContextMap()["request_id"])
}
