package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"luna-chat-api/internal/models"
	"luna-chat-api/internal/services"
	"luna-chat-api/pkg/lambda"
)

// CORS values advertised by the chat endpoint
const (
	AllowedMethods = "POST, OPTIONS"
	AllowedHeaders = "Content-Type"
)

// ChatHandler serves the chat endpoint for both Lambda and gin
type ChatHandler struct {
	chatService services.ChatService
	allowOrigin string
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService services.ChatService, allowOrigin string) *ChatHandler {
	if allowOrigin == "" {
		allowOrigin = "*"
	}
	return &ChatHandler{
		chatService: chatService,
		allowOrigin: allowOrigin,
	}
}

// Handle processes one chat request. It never returns nil and never panics.
func (h *ChatHandler) Handle(ctx context.Context, req *lambda.Request) (resp *lambda.Response) {
	method := strings.ToUpper(req.Method)

	defer func() {
		if r := recover(); r != nil {
			logrus.WithFields(logrus.Fields{
				"request_id": req.RequestID,
				"panic":      fmt.Sprint(r),
				"stack":      string(debug.Stack()),
			}).Error("Chat handler panicked")
			resp = h.errorResponse(method, errInternal(fmt.Errorf("panic: %v", r)))
		}
	}()

	switch method {
	case http.MethodOptions:
		return &lambda.Response{
			StatusCode: http.StatusNoContent,
			Headers:    h.headers(method),
		}
	case http.MethodPost:
	default:
		return h.errorResponse(method, errMethodNotAllowed())
	}

	chatReq, err := models.DecodeChatRequest(req.Body)
	if err != nil {
		return h.errorResponse(method, classifyError(err))
	}

	result, err := h.chatService.Reply(ctx, chatReq.Message)
	if err != nil {
		return h.errorResponse(method, classifyError(err))
	}

	logrus.WithFields(logrus.Fields{
		"request_id": req.RequestID,
		"responder":  result.Responder,
		"blocked":    result.Blocked,
	}).Debug("Chat reply produced")

	return h.jsonResponse(method, http.StatusOK, models.ChatResponse{Response: result.Text})
}

func (h *ChatHandler) errorResponse(method string, chatErr *ChatError) *lambda.Response {
	entry := logrus.WithFields(logrus.Fields{
		"kind":   chatErr.Kind,
		"status": chatErr.Status,
	})
	if chatErr.Cause != nil {
		entry = entry.WithError(chatErr.Cause)
	}
	if chatErr.Status >= http.StatusInternalServerError {
		entry.Error("Chat request failed")
	} else {
		entry.Info("Chat request rejected")
	}

	resp := h.jsonResponse(method, chatErr.Status, chatErr.Body)
	if chatErr.Kind == KindMethodNotAllowed {
		resp.Headers["Allow"] = AllowedMethods
	}
	return resp
}

func (h *ChatHandler) jsonResponse(method string, status int, body interface{}) *lambda.Response {
	return &lambda.Response{
		StatusCode: status,
		Headers:    h.headers(method),
		Body:       encodeJSON(body),
	}
}

// headers returns the CORS and content headers for a response.
// Preflight and POST responses also advertise the allowed methods.
func (h *ChatHandler) headers(method string) map[string]string {
	headers := map[string]string{
		"Content-Type":                "application/json",
		"Access-Control-Allow-Origin": h.allowOrigin,
	}
	if method == http.MethodPost || method == http.MethodOptions {
		headers["Access-Control-Allow-Methods"] = AllowedMethods
		headers["Access-Control-Allow-Headers"] = AllowedHeaders
	}
	return headers
}

func encodeJSON(body interface{}) []byte {
	data, err := json.Marshal(body)
	if err != nil {
		logrus.WithError(err).Error("Failed to encode response body")
		return []byte(`{"error":"` + InternalErrorMessage + `"}`)
	}
	return data
}

// Chat godoc
// @Summary Send a message to Luna
// @Description Replies in character. Blocked messages get a polite refusal with status 200.
// @Tags chat
// @Accept json
// @Produce json
// @Param request body models.ChatRequest true "Chat message"
// @Success 200 {object} models.ChatResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 405 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /chat [post]
func (h *ChatHandler) Chat(c *gin.Context) {
	GinHandler(h.Handle, h.allowOrigin)(c)
}

// UnavailableResponse answers when the function could not initialize.
// The configured origin is unknown at that point, so it falls back to "*".
func UnavailableResponse() *lambda.Response {
	h := &ChatHandler{allowOrigin: "*"}
	return h.jsonResponse(http.MethodPost, http.StatusInternalServerError, ErrorResponse{Error: InternalErrorMessage})
}
