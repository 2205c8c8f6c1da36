package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Caller-facing middleware errors
const (
	InternalErrorMessage   = "An unexpected error occurred. Luna is momentarily perplexed."
	RequestTooLargeMessage = "Request body too large."
)

// ErrorResponse is the JSON error body written by middleware
type ErrorResponse struct {
	Error string `json:"error"`
}

// abortJSON ends the chain with the same content and CORS headers the
// handlers write, so middleware errors look like any other API error.
func abortJSON(c *gin.Context, status int, allowOrigin, message string) {
	if allowOrigin == "" {
		allowOrigin = "*"
	}
	body, err := json.Marshal(ErrorResponse{Error: message})
	if err != nil {
		body = []byte(`{"error":"` + InternalErrorMessage + `"}`)
	}

	c.Header("Content-Type", "application/json")
	c.Header("Access-Control-Allow-Origin", allowOrigin)
	c.Data(status, "application/json", body)
	c.Abort()
}

// Recovery turns a panic anywhere below it into a generic 500
func Recovery(allowOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logrus.WithFields(logrus.Fields{
					"request_id": c.GetString(RequestIDKey),
					"method":     c.Request.Method,
					"path":       c.Request.URL.Path,
					"panic":      fmt.Sprint(r),
					"stack":      string(debug.Stack()),
				}).Error("Recovered from panic")

				abortJSON(c, http.StatusInternalServerError, allowOrigin, InternalErrorMessage)
			}
		}()

		c.Next()
	}
}

// SecurityHeaders adds security headers to responses
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		c.Next()
	}
}

// RequestSizeLimit limits the size of request bodies. A limit of zero
// disables the check.
func RequestSizeLimit(maxSize int64, allowOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxSize <= 0 {
			c.Next()
			return
		}

		if c.Request.ContentLength > maxSize {
			logrus.WithFields(logrus.Fields{
				"request_id":     c.GetString(RequestIDKey),
				"content_length": c.Request.ContentLength,
				"max_size":       maxSize,
			}).Warn("Request body too large")

			abortJSON(c, http.StatusRequestEntityTooLarge, allowOrigin, RequestTooLargeMessage)
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		c.Next()
	}
}
