package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(handlers...)
	return router
}

func TestRequestID(t *testing.T) {
	router := newRouter(RequestID())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(RequestIDKey))
	})

	t.Run("Generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		id := w.Header().Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			t.Errorf("Expected uuid request ID, got %q", id)
		}
		if w.Body.String() != id {
			t.Errorf("Expected context request ID %q, got %q", id, w.Body.String())
		}
	})

	t.Run("Propagated", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "caller-id")
		router.ServeHTTP(w, req)

		if got := w.Header().Get(RequestIDHeader); got != "caller-id" {
			t.Errorf("Expected caller-id, got %q", got)
		}
	})
}

func TestRecovery(t *testing.T) {
	router := newRouter(RequestID(), Recovery("https://luna.example"))
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), InternalErrorMessage) {
		t.Errorf("Expected generic error body, got %s", w.Body.String())
	}
	if strings.Contains(w.Body.String(), "boom") {
		t.Error("Panic value leaked to the caller")
	}
	if got := w.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Expected application/json, got %q", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://luna.example" {
		t.Errorf("Expected configured origin, got %q", got)
	}
}

func TestSecurityHeaders(t *testing.T) {
	router := newRouter(SecurityHeaders())
	router.GET("/", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("Expected X-Content-Type-Options header")
	}
	if w.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("Expected X-Frame-Options header")
	}
}

func TestRequestSizeLimit(t *testing.T) {
	echo := func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.String(http.StatusOK, string(body))
	}

	t.Run("DeclaredLengthOverLimit", func(t *testing.T) {
		router := newRouter(RequestSizeLimit(8, ""))
		router.POST("/", echo)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("a", 16))))

		if w.Code != http.StatusRequestEntityTooLarge {
			t.Errorf("Expected 413, got %d", w.Code)
		}
		if w.Body.String() != `{"error":"`+RequestTooLargeMessage+`"}` {
			t.Errorf("Unexpected body %s", w.Body.String())
		}
		if got := w.Header().Get("Content-Type"); got != "application/json" {
			t.Errorf("Expected application/json, got %q", got)
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("Expected default origin, got %q", got)
		}
	})

	t.Run("UnderLimit", func(t *testing.T) {
		router := newRouter(RequestSizeLimit(8, "*"))
		router.POST("/", echo)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("hi")))

		if w.Code != http.StatusOK || w.Body.String() != "hi" {
			t.Errorf("Expected echo of body, got %d %q", w.Code, w.Body.String())
		}
	})

	t.Run("Disabled", func(t *testing.T) {
		router := newRouter(RequestSizeLimit(0, "*"))
		router.POST("/", echo)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("a", 1024))))

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200 with limit disabled, got %d", w.Code)
		}
	})
}

func TestStructuredLoggerPassesThrough(t *testing.T) {
	router := newRouter(RequestID(), StructuredLogger())
	router.GET("/missing", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing?q=1", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}
