package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAPIToken(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		header   string
		expected int
	}{
		{name: "disabled", token: "", header: "", expected: http.StatusOK},
		{name: "missing header", token: "secret", header: "", expected: http.StatusUnauthorized},
		{name: "wrong token", token: "secret", header: "Bearer nope", expected: http.StatusUnauthorized},
		{name: "matching token", token: "secret", header: "Bearer secret", expected: http.StatusOK},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			handler := RequireAPIToken(testCase.token)(okHandler())

			request := httptest.NewRequest(http.MethodPost, "/api/meals", nil)
			if testCase.header != "" {
				request.Header.Set("Authorization", testCase.header)
			}
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			if recorder.Code != testCase.expected {
				t.Errorf("expected status %d, got %d", testCase.expected, recorder.Code)
			}
		})
	}
}
