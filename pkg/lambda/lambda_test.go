package lambda

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"

	"luna-chat-api/internal/config"
)

func TestFromAPIGateway(t *testing.T) {
	event := events.APIGatewayProxyRequest{
		HTTPMethod:            "POST",
		Path:                  "/api/v1/chat",
		Headers:               map[string]string{"content-type": "application/json"},
		QueryStringParameters: map[string]string{"debug": "1"},
		Body:                  `{"message": "hello"}`,
		RequestContext:        events.APIGatewayProxyRequestContext{RequestID: "req-1"},
	}

	req := FromAPIGateway(event)
	if req.Method != "POST" || req.Path != "/api/v1/chat" {
		t.Errorf("Unexpected request line: %s %s", req.Method, req.Path)
	}
	if string(req.Body) != `{"message": "hello"}` {
		t.Errorf("Unexpected body %q", req.Body)
	}
	if req.RequestID != "req-1" {
		t.Errorf("Expected request ID req-1, got %s", req.RequestID)
	}
	if req.Header("Content-Type") != "application/json" {
		t.Error("Header lookup should be case-insensitive")
	}
	if req.QueryParams["debug"] != "1" {
		t.Error("Query parameters were not copied")
	}
}

func TestFromAPIGatewayBase64(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		event := events.APIGatewayProxyRequest{
			HTTPMethod:      "POST",
			Body:            base64.StdEncoding.EncodeToString([]byte(`{"message": "hi"}`)),
			IsBase64Encoded: true,
		}
		if got := string(FromAPIGateway(event).Body); got != `{"message": "hi"}` {
			t.Errorf("Expected decoded body, got %q", got)
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		event := events.APIGatewayProxyRequest{
			HTTPMethod:      "POST",
			Body:            "%%%not-base64",
			IsBase64Encoded: true,
		}
		if got := FromAPIGateway(event).Body; len(got) != 0 {
			t.Errorf("Expected undecodable body to be dropped, got %q", got)
		}
	})
}

func TestToAPIGateway(t *testing.T) {
	resp := ToAPIGateway(&Response{
		StatusCode: 204,
		Headers:    map[string]string{"Access-Control-Allow-Origin": "*"},
	})

	if resp.StatusCode != 204 {
		t.Errorf("Expected 204, got %d", resp.StatusCode)
	}
	if resp.Body != "" {
		t.Errorf("Expected empty body, got %q", resp.Body)
	}
	if resp.Headers["Access-Control-Allow-Origin"] != "*" {
		t.Error("Headers were not copied")
	}
}

func TestHTTPRoundTrip(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/chat?x=1", strings.NewReader(`{"message": "hi"}`))
	r.Header.Set("Content-Type", "application/json")

	req, err := FromHTTPRequest(r)
	if err != nil {
		t.Fatalf("FromHTTPRequest failed: %v", err)
	}
	if req.Method != http.MethodPost || req.Path != "/chat" || req.QueryParams["x"] != "1" {
		t.Errorf("Unexpected request: %+v", req)
	}
	if string(req.Body) != `{"message": "hi"}` {
		t.Errorf("Unexpected body %q", req.Body)
	}
	if req.Header("content-type") != "application/json" {
		t.Error("Expected Content-Type header")
	}

	w := httptest.NewRecorder()
	WriteHTTP(w, &Response{
		StatusCode: 405,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       []byte(`{"error": "nope"}`),
	})
	if w.Code != 405 || w.Body.String() != `{"error": "nope"}` || w.Header().Get("Content-Type") != "application/json" {
		t.Errorf("Unexpected recorded response: %d %q", w.Code, w.Body.String())
	}
}

func TestWithLoggingUsesLambdaRequestID(t *testing.T) {
	var seen string
	handler := WithLogging("test", func(ctx context.Context, req *Request) *Response {
		seen = req.RequestID
		return &Response{StatusCode: 200}
	})

	ctx := lambdacontext.NewContext(context.Background(), &lambdacontext.LambdaContext{AwsRequestID: "aws-123"})
	resp := handler(ctx, &Request{Method: "POST"})

	if resp.StatusCode != 200 {
		t.Errorf("Expected 200, got %d", resp.StatusCode)
	}
	if seen != "aws-123" {
		t.Errorf("Expected request ID from lambda context, got %q", seen)
	}
}

func TestContainerManager(t *testing.T) {
	loads := 0
	manager := NewContainerManager(func() (*config.Config, error) {
		loads++
		return &config.Config{
			Log:  config.LogConfig{Level: "info", Format: "text"},
			Chat: config.ChatConfig{ResponseMode: config.ResponseModeEcho, MaxMessageLength: 100},
			AI:   config.AIConfig{Provider: config.ProviderGemini, Timeout: time.Second, MaxAttempts: 1},
		}, nil
	})

	if manager.IsHealthy() {
		t.Error("Manager should not be healthy before first use")
	}

	first, err := manager.GetContainer(context.Background())
	if err != nil {
		t.Fatalf("GetContainer failed: %v", err)
	}
	second, _ := manager.GetContainer(context.Background())

	if first != second {
		t.Error("Container should be built once")
	}
	if loads != 1 {
		t.Errorf("Expected 1 config load, got %d", loads)
	}
	if !manager.IsHealthy() {
		t.Error("Manager should be healthy after initialization")
	}

	if err := first.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}

func TestContainerManagerSticksToInitError(t *testing.T) {
	loads := 0
	manager := NewContainerManager(func() (*config.Config, error) {
		loads++
		return nil, errors.New("bad env")
	})

	for i := 0; i < 2; i++ {
		if _, err := manager.GetContainer(context.Background()); err == nil {
			t.Fatal("Expected initialization error")
		}
	}
	if loads != 1 {
		t.Errorf("Expected 1 config load, got %d", loads)
	}
	if manager.IsHealthy() {
		t.Error("Manager should not be healthy after failed initialization")
	}
}

func TestWithLoggingGeneratesRequestID(t *testing.T) {
	var seen string
	handler := WithLogging("test", func(ctx context.Context, req *Request) *Response {
		seen = req.RequestID
		return &Response{StatusCode: 500}
	})

	handler(context.Background(), &Request{Method: "POST"})

	if _, err := uuid.Parse(seen); err != nil {
		t.Errorf("Expected generated uuid request ID, got %q", seen)
	}
}
