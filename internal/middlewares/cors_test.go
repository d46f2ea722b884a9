package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORSMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name           string
		origins        []string
		method         string
		origin         string
		expectedStatus int
		expectedAllow  string
	}{
		{
			name:           "any origin allowed by default",
			method:         http.MethodGet,
			origin:         "http://example.com",
			expectedStatus: http.StatusOK,
			expectedAllow:  "*",
		},
		{
			name:           "preflight answered",
			method:         http.MethodOptions,
			origin:         "http://example.com",
			expectedStatus: http.StatusOK,
			expectedAllow:  "*",
		},
		{
			name:           "configured origin echoed",
			origins:        []string{"http://frontend.local"},
			method:         http.MethodGet,
			origin:         "http://frontend.local",
			expectedStatus: http.StatusOK,
			expectedAllow:  "http://frontend.local",
		},
		{
			name:           "unknown origin gets no header",
			origins:        []string{"http://frontend.local"},
			method:         http.MethodGet,
			origin:         "http://evil.local",
			expectedStatus: http.StatusOK,
			expectedAllow:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := CORSMiddleware(tt.origins)(next)

			req := httptest.NewRequest(tt.method, "/api/blogs", nil)
			req.Header.Set("Origin", tt.origin)
			if tt.method == http.MethodOptions {
				req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, tt.expectedAllow, rr.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
