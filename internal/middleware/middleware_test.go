package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestTokenRoundTrip(t *testing.T) {
	SetSecret("test-secret")
	tok, err := GenerateToken(7, "ravi", "operator", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	claims, err := ValidateToken(tok)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != 7 || claims.UserName != "ravi" || claims.Role != "operator" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestValidateTokenRejectsExpiredAndForeign(t *testing.T) {
	SetSecret("test-secret")
	expired, _ := GenerateToken(1, "a", "admin", -time.Minute)
	if _, err := ValidateToken(expired); err == nil {
		t.Error("expired token accepted")
	}

	SetSecret("other-secret")
	foreign, _ := GenerateToken(1, "a", "admin", time.Hour)
	SetSecret("test-secret")
	if _, err := ValidateToken(foreign); err == nil {
		t.Error("token signed with another key accepted")
	}
}

func protected(mw gin.HandlerFunc, ran *bool) *gin.Engine {
	r := gin.New()
	r.GET("/x", mw, func(c *gin.Context) {
		*ran = true
		c.String(http.StatusOK, c.GetString("role"))
	})
	return r
}

func TestRequireAuthWithRole(t *testing.T) {
	SetSecret("test-secret")
	admin, _ := GenerateToken(1, "boss", "admin", time.Hour)
	driver, _ := GenerateToken(2, "9800000001", "driver", time.Hour)

	cases := []struct {
		name    string
		header  string
		status  int
		handler bool
	}{
		{"no header", "", http.StatusUnauthorized, false},
		{"not bearer", "Token " + admin, http.StatusUnauthorized, false},
		{"garbage", "Bearer nope", http.StatusUnauthorized, false},
		{"wrong role", "Bearer " + driver, http.StatusForbidden, false},
		{"allowed", "Bearer " + admin, http.StatusOK, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var ran bool
			r := protected(RequireAuthWithRole("admin", "operator"), &ran)
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.status {
				t.Errorf("status = %d, want %d", w.Code, tc.status)
			}
			if ran != tc.handler {
				t.Errorf("handler ran = %v, want %v", ran, tc.handler)
			}
		})
	}
}

func TestRequestIDReusesCallerID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	r.ServeHTTP(w, req)
	if w.Body.String() != "abc-123" || w.Header().Get(RequestIDHeader) != "abc-123" {
		t.Errorf("body %q header %q", w.Body.String(), w.Header().Get(RequestIDHeader))
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if len(w.Header().Get(RequestIDHeader)) != 36 {
		t.Errorf("generated id = %q", w.Header().Get(RequestIDHeader))
	}
}

func TestEnableCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) })
	h := EnableCORS(next, []string{"https://ops.example.in"})

	req := httptest.NewRequest(http.MethodOptions, "/api/technician", nil)
	req.Header.Set("Origin", "https://ops.example.in")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent || w.Header().Get("Access-Control-Allow-Origin") != "https://ops.example.in" {
		t.Errorf("preflight = %d %q", w.Code, w.Header().Get("Access-Control-Allow-Origin"))
	}

	req = httptest.NewRequest(http.MethodGet, "/api/technician", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusTeapot || w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Errorf("foreign origin = %d %q", w.Code, w.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestLoginRateLimitFailsOpen(t *testing.T) {
	var ran bool
	r := protected(LoginRateLimit(nil, 1, 0), &ran)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if !ran {
		t.Error("nil client blocked the request")
	}

	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 100 * time.Millisecond})
	defer client.Close()
	ran = false
	r = protected(LoginRateLimit(client, 1, time.Minute), &ran)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if !ran || w.Code != http.StatusOK {
		t.Errorf("unreachable redis blocked login: %d", w.Code)
	}
}
