package lambda

import (
	"context"
	"time"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// WithLogging wraps a handler with one structured log line per invocation
func WithLogging(name string, next HandlerFunc) HandlerFunc {
	return func(ctx context.Context, req *Request) *Response {
		start := time.Now()

		if req.RequestID == "" {
			if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
				req.RequestID = lc.AwsRequestID
			} else {
				req.RequestID = uuid.New().String()
			}
		}

		resp := next(ctx, req)

		fields := logrus.Fields{
			"function":    name,
			"request_id":  req.RequestID,
			"method":      req.Method,
			"path":        req.Path,
			"status_code": resp.StatusCode,
			"latency_ms":  float64(time.Since(start).Nanoseconds()) / 1000000,
		}

		switch {
		case resp.StatusCode >= 500:
			logrus.WithFields(fields).Error("Invocation failed")
		case resp.StatusCode >= 400:
			logrus.WithFields(fields).Warn("Invocation rejected")
		default:
			logrus.WithFields(fields).Info("Invocation completed")
		}

		return resp
	}
}
