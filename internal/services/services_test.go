package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"luna-chat-api/internal/adapters/genai"
	"luna-chat-api/internal/models"
)

func TestBlocklistFilter(t *testing.T) {
	filter := NewBlocklistFilter(nil)

	tests := []struct {
		message string
		term    string
		blocked bool
	}{
		{"you are stupid", "stupid", true},
		{"YOU ARE STUPID", "stupid", true},
		{"please Shut Up now", "shut up", true},
		{"that's scrap metal", "crap", true},
		{"hello there", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			term, blocked := filter.Match(tt.message)
			if blocked != tt.blocked {
				t.Fatalf("Expected blocked=%v for %q", tt.blocked, tt.message)
			}
			if term != tt.term {
				t.Errorf("Expected term %q, got %q", tt.term, term)
			}
		})
	}

	custom := NewBlocklistFilter([]string{"  Rubbish ", ""})
	if _, blocked := custom.Match("what rubbish"); !blocked {
		t.Error("Custom terms should be normalized")
	}
	if _, blocked := custom.Match("you are stupid"); blocked {
		t.Error("Custom list should replace the default")
	}
}

func TestStaticResponder(t *testing.T) {
	ctx := context.Background()

	t.Run("Greeting", func(t *testing.T) {
		responder, err := NewStaticResponder(ModeGreeting)
		if err != nil {
			t.Fatalf("NewStaticResponder failed: %v", err)
		}

		for i := range GreetingReplies {
			responder.WithPicker(func(n int) int { return i })
			reply, err := responder.Respond(ctx, "hello")
			if err != nil {
				t.Fatalf("Respond failed: %v", err)
			}
			if reply != GreetingReplies[i] {
				t.Errorf("Expected %q, got %q", GreetingReplies[i], reply)
			}
		}

		if responder.Name() != "static-greeting" {
			t.Errorf("Unexpected name %s", responder.Name())
		}
	})

	t.Run("GreetingUsesRandomSource", func(t *testing.T) {
		responder, _ := NewStaticResponder("")
		for i := 0; i < 50; i++ {
			reply, _ := responder.Respond(ctx, "hello")
			if !contains(GreetingReplies, reply) {
				t.Fatalf("Reply %q is not a known greeting", reply)
			}
		}
	})

	t.Run("Echo", func(t *testing.T) {
		responder, err := NewStaticResponder(ModeEcho)
		if err != nil {
			t.Fatalf("NewStaticResponder failed: %v", err)
		}
		reply, _ := responder.Respond(ctx, "hello")
		if reply != "You said: hello" {
			t.Errorf("Expected echo, got %q", reply)
		}
	})

	t.Run("UnknownMode", func(t *testing.T) {
		if _, err := NewStaticResponder("shout"); err == nil {
			t.Error("Expected error for unknown mode")
		}
	})
}

func TestExternalAIResponder(t *testing.T) {
	t.Run("PassesPersonaAndModel", func(t *testing.T) {
		mock := genai.NewMockClient()
		mock.Reply = "Tea first, then philosophy."

		responder := NewExternalAIResponder(mock, "gemini-test", "Be Luna.", time.Second)
		reply, err := responder.Respond(context.Background(), "what should I do?")
		if err != nil {
			t.Fatalf("Respond failed: %v", err)
		}
		if reply != mock.Reply {
			t.Errorf("Expected %q, got %q", mock.Reply, reply)
		}

		reqs := mock.Requests()
		if len(reqs) != 1 {
			t.Fatalf("Expected 1 request, got %d", len(reqs))
		}
		if reqs[0].SystemPrompt != "Be Luna." || reqs[0].Model != "gemini-test" || reqs[0].Prompt != "what should I do?" {
			t.Errorf("Unexpected request: %+v", reqs[0])
		}
		if responder.Name() != "ai-mock" {
			t.Errorf("Unexpected name %s", responder.Name())
		}
	})

	t.Run("WrapsProviderError", func(t *testing.T) {
		mock := genai.NewMockClient().Enqueue("", genai.NewProviderError("mock", "Generate", 429, genai.ErrQuotaExceeded, true))

		_, err := NewExternalAIResponder(mock, "", "", time.Second).Respond(context.Background(), "hi")
		if !errors.Is(err, genai.ErrQuotaExceeded) {
			t.Errorf("Expected ErrQuotaExceeded, got %v", err)
		}
	})

	t.Run("AppliesTimeout", func(t *testing.T) {
		responder := NewExternalAIResponder(slowClient{}, "", "", 10*time.Millisecond)

		start := time.Now()
		_, err := responder.Respond(context.Background(), "hi")
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("Expected deadline exceeded, got %v", err)
		}
		if time.Since(start) > time.Second {
			t.Error("Timeout was not applied")
		}
	})
}

func TestChatServiceReply(t *testing.T) {
	ctx := context.Background()
	responder, _ := NewStaticResponder(ModeEcho)
	service := NewChatService(NewBlocklistFilter(nil), responder, 20)

	t.Run("Reply", func(t *testing.T) {
		result, err := service.Reply(ctx, "  hello  ")
		if err != nil {
			t.Fatalf("Reply failed: %v", err)
		}
		if result.Text != "You said: hello" || result.Blocked {
			t.Errorf("Unexpected result: %+v", result)
		}
		if result.Responder != "static-echo" {
			t.Errorf("Unexpected responder %s", result.Responder)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		if _, err := service.Reply(ctx, "   "); !errors.Is(err, models.ErrEmptyMessage) {
			t.Errorf("Expected ErrEmptyMessage, got %v", err)
		}
	})

	t.Run("TooLong", func(t *testing.T) {
		if _, err := service.Reply(ctx, strings.Repeat("a", 21)); !errors.Is(err, models.ErrMessageTooLong) {
			t.Errorf("Expected ErrMessageTooLong, got %v", err)
		}
	})

	t.Run("Blocked", func(t *testing.T) {
		result, err := service.Reply(ctx, "you are stupid")
		if err != nil {
			t.Fatalf("Reply failed: %v", err)
		}
		if !result.Blocked || result.Text != BlockedReply {
			t.Errorf("Expected blocked reply, got %+v", result)
		}
	})

	t.Run("ResponderFailure", func(t *testing.T) {
		mock := genai.NewMockClient().Enqueue("", genai.ErrUnauthorized)
		failing := NewChatService(NewBlocklistFilter(nil), NewExternalAIResponder(mock, "", "", time.Second), 20)

		_, err := failing.Reply(ctx, "hello")
		if !errors.Is(err, ErrResponderFailed) {
			t.Errorf("Expected ErrResponderFailed, got %v", err)
		}
		if !genai.IsAuthError(err) {
			t.Errorf("Expected cause to be preserved, got %v", err)
		}
	})

	t.Run("EmptyResponderText", func(t *testing.T) {
		mock := genai.NewMockClient()
		mock.Reply = "  "
		failing := NewChatService(NewBlocklistFilter(nil), NewExternalAIResponder(mock, "", "", time.Second), 20)

		if _, err := failing.Reply(ctx, "hello"); !errors.Is(err, ErrResponderFailed) {
			t.Errorf("Expected ErrResponderFailed, got %v", err)
		}
	})
}

func TestNewServiceContainer(t *testing.T) {
	t.Run("StaticWithoutCredential", func(t *testing.T) {
		container, err := NewServiceContainer(&ServiceConfig{
			ResponseMode: ModeGreeting,
			AI:           &AIConfig{Enabled: false, Provider: "gemini"},
		})
		if err != nil {
			t.Fatalf("NewServiceContainer failed: %v", err)
		}
		if container.ChatService.ResponderName() != "static-greeting" {
			t.Errorf("Expected static responder, got %s", container.ChatService.ResponderName())
		}
	})

	t.Run("ExternalWithCredential", func(t *testing.T) {
		container, err := NewServiceContainer(&ServiceConfig{
			ResponseMode: ModeGreeting,
			AI: &AIConfig{
				Enabled:     true,
				Provider:    "gemini",
				APIKey:      "secret",
				Timeout:     time.Second,
				MaxAttempts: 2,
			},
		})
		if err != nil {
			t.Fatalf("NewServiceContainer failed: %v", err)
		}
		if _, ok := container.Responder.(*ExternalAIResponder); !ok {
			t.Errorf("Expected *ExternalAIResponder, got %T", container.Responder)
		}
		if container.Responder.Name() != "ai-gemini" {
			t.Errorf("Unexpected responder name %s", container.Responder.Name())
		}
	})

	t.Run("NilConfig", func(t *testing.T) {
		container, err := NewServiceContainer(nil)
		if err != nil {
			t.Fatalf("NewServiceContainer failed: %v", err)
		}
		if container.ChatService == nil {
			t.Error("ChatService is nil")
		}
	})

	t.Run("InvalidProvider", func(t *testing.T) {
		_, err := NewServiceContainer(&ServiceConfig{
			AI: &AIConfig{Enabled: true, Provider: "oracle", APIKey: "k"},
		})
		if err == nil {
			t.Error("Expected error for unknown provider")
		}
	})
}

type slowClient struct{}

func (slowClient) Generate(ctx context.Context, req genai.GenerateRequest) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func (slowClient) Provider() string { return "slow" }

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
