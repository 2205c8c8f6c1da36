package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"luna-chat-api/internal/middleware"
	"luna-chat-api/pkg/lambda"
)

// GinHandler serves a framework-agnostic handler through gin, so the
// server and Lambda paths share one response contract. allowOrigin is
// used for the errors raised before the handler runs.
func GinHandler(fn lambda.HandlerFunc, allowOrigin string) gin.HandlerFunc {
	if allowOrigin == "" {
		allowOrigin = "*"
	}

	return func(c *gin.Context) {
		req, err := lambda.FromHTTPRequest(c.Request)
		if err != nil {
			status, message := http.StatusBadRequest, InvalidJSONMessage

			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				status, message = http.StatusRequestEntityTooLarge, middleware.RequestTooLargeMessage
			}

			logrus.WithFields(logrus.Fields{
				"request_id": c.GetString(middleware.RequestIDKey),
				"status":     status,
				"error":      err.Error(),
			}).Warn("Failed to read request")

			lambda.WriteHTTP(c.Writer, &lambda.Response{
				StatusCode: status,
				Headers: map[string]string{
					"Content-Type":                "application/json",
					"Access-Control-Allow-Origin": allowOrigin,
				},
				Body: encodeJSON(ErrorResponse{Error: message}),
			})
			c.Abort()
			return
		}

		req.RequestID = c.GetString(middleware.RequestIDKey)
		lambda.WriteHTTP(c.Writer, fn(c.Request.Context(), req))
	}
}
