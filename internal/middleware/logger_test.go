package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/astropulse/internal/logger"
)

func TestToString(t *testing.T) {
	if s := toString(nil); s != "" {
		t.Fatalf("nil -> %q, want empty", s)
	}
	if s := toString("abc"); s != "abc" {
		t.Fatalf("string -> %q, want 'abc'", s)
	}
	if s := toString(123); s != "" {
		t.Fatalf("non-string -> %q, want empty", s)
	}
}

// captureLog routes the global logger into a buffer for one test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	t.Setenv("LOG_PRETTY", "false")
	t.Setenv("LOG_LEVEL", "info")
	var buf bytes.Buffer
	logger.InitWithWriter(&buf)
	t.Cleanup(logger.Init)
	return &buf
}

func TestRequestLogger_Fields(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name      string
		userID    string
		status    int
		wantLevel string
	}{
		{"anonymous ok", "", http.StatusOK, "info"},
		{"authenticated client error", "astronaut-42", http.StatusForbidden, "warn"},
		{"server error", "astronaut-42", http.StatusBadGateway, "error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			buf := captureLog(t)
			router := gin.New()
			router.Use(RequestID(), RequestLogger())
			router.GET("/api/v1/favorites/:id", func(c *gin.Context) {
				if tc.userID != "" {
					c.Set(UserIDKey, tc.userID)
				}
				c.Status(tc.status)
			})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/favorites/7", nil))
			if w.Code != tc.status {
				t.Fatalf("status %d, want %d", w.Code, tc.status)
			}

			var line map[string]any
			if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
				t.Fatalf("log line is not json: %v (%q)", err, buf.String())
			}
			if line["level"] != tc.wantLevel || line["message"] != "http_request" {
				t.Fatalf("unexpected level/message: %v", line)
			}
			if line["route"] != "/api/v1/favorites/:id" || line["path"] != "/api/v1/favorites/7" {
				t.Fatalf("unexpected route/path: %v", line)
			}
			if line["request_id"] != w.Header().Get("X-Request-ID") || line["service"] != logger.ServiceName {
				t.Fatalf("request_id or service missing: %v", line)
			}
			uid, found := line["user_id"]
			if tc.userID == "" && found {
				t.Fatalf("anonymous request logged user_id %v", uid)
			}
			if tc.userID != "" && uid != tc.userID {
				t.Fatalf("user_id = %v, want %s", uid, tc.userID)
			}
		})
	}
}

func TestRequestLogger_RecordsGinErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureLog(t)
	router := gin.New()
	router.Use(RequestID(), RequestLogger())
	router.GET("/api/v1/neo/summary", func(c *gin.Context) {
		_ = c.Error(http.ErrHandlerTimeout)
		c.Status(http.StatusGatewayTimeout)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/neo/summary", nil))

	if !bytes.Contains(buf.Bytes(), []byte(`"errors":`)) {
		t.Fatalf("expected errors field in %s", buf.String())
	}
}
