package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

var defaultOrigins = []string{"http://localhost:*", "chrome-extension://*"}

func TestIsAllowedOrigin(t *testing.T) {
	tests := []struct {
		origin  string
		allowed []string
		want    bool
	}{
		{"http://localhost:3000", defaultOrigins, true},
		{"http://localhost:5173", defaultOrigins, true},
		{"chrome-extension://shopassist", defaultOrigins, true},
		{"https://shop.example.com", []string{"https://shop.example.com"}, true},
		{"https://shop.example.com.evil.io", []string{"https://shop.example.com"}, false},
		{"http://127.0.0.1:3000", defaultOrigins, false},
		{"", defaultOrigins, false},
		{"http://localhost:3000", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			if got := isAllowedOrigin(tt.origin, tt.allowed); got != tt.want {
				t.Errorf("isAllowedOrigin(%q) = %v, want %v", tt.origin, got, tt.want)
			}
		})
	}
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(CORSMiddleware(defaultOrigins))
	router.POST("/api/recommend", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	tests := []struct {
		name       string
		method     string
		origin     string
		wantStatus int
		wantOrigin string
	}{
		{"frontend request", http.MethodPost, "http://localhost:3000", http.StatusOK, "http://localhost:3000"},
		{"extension preflight", http.MethodOptions, "chrome-extension://shopassist", http.StatusNoContent, "chrome-extension://shopassist"},
		{"foreign origin served without headers", http.MethodPost, "https://elsewhere.io", http.StatusOK, ""},
		{"foreign preflight still answered", http.MethodOptions, "https://elsewhere.io", http.StatusNoContent, ""},
		{"no origin", http.MethodPost, "", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/recommend", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Status = %d, want %d", w.Code, tt.wantStatus)
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
			if tt.wantOrigin == "" {
				return
			}
			if got := w.Header().Get("Access-Control-Expose-Headers"); got != requestIDHeader {
				t.Errorf("Access-Control-Expose-Headers = %q, want %q", got, requestIDHeader)
			}
			if !strings.Contains(w.Header().Get("Access-Control-Allow-Methods"), http.MethodDelete) {
				t.Errorf("Access-Control-Allow-Methods missing DELETE for product management")
			}
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(requestIDKey))
	})

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	id := w.Header().Get("X-Request-ID")
	if id == "" {
		t.Fatal("X-Request-ID not generated")
	}
	if w.Body.String() != id {
		t.Errorf("request id in context = %q, want %q", w.Body.String(), id)
	}
}

func TestIPLimiter(t *testing.T) {
	limiter := newIPLimiter(60) // one per second, burst of 6
	now := time.Now()

	for i := 0; i < 6; i++ {
		if !limiter.allow("10.0.0.1", now) {
			t.Fatalf("request %d denied within burst", i+1)
		}
	}
	if limiter.allow("10.0.0.1", now) {
		t.Error("request beyond burst allowed")
	}
	if !limiter.allow("10.0.0.2", now) {
		t.Error("other client denied")
	}
	if !limiter.allow("10.0.0.1", now.Add(2*time.Second)) {
		t.Error("request after refill denied")
	}
}

func TestIPLimiter_EvictsIdleClients(t *testing.T) {
	limiter := newIPLimiter(60)
	now := time.Now()

	limiter.allow("10.0.0.1", now)
	limiter.allow("10.0.0.2", now.Add(limiter.idle+time.Minute))

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	if _, ok := limiter.limiters["10.0.0.1"]; ok {
		t.Error("idle client not evicted")
	}
	if len(limiter.limiters) != 1 {
		t.Errorf("len(limiters) = %d, want 1", len(limiter.limiters))
	}
}

func TestRateLimitMiddleware_Disabled(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RateLimitMiddleware(0))
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	for i := 0; i < 20; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/test", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: Status = %d, want %d", i+1, w.Code, http.StatusOK)
		}
	}
}
