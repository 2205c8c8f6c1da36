package services

import (
	"context"
	"fmt"
	"math/rand/v2"
)

// Static response modes
const (
	ModeGreeting = "greeting"
	ModeEcho     = "echo"
)

// StaticResponder answers without calling out: either a random greeting
// or an echo of the message.
type StaticResponder struct {
	mode    string
	replies []string
	pick    func(n int) int
}

// NewStaticResponder creates a responder for mode ("greeting" or "echo")
func NewStaticResponder(mode string) (*StaticResponder, error) {
	switch mode {
	case "", ModeGreeting:
		mode = ModeGreeting
	case ModeEcho:
	default:
		return nil, fmt.Errorf("unsupported response mode: %s", mode)
	}

	return &StaticResponder{
		mode:    mode,
		replies: GreetingReplies,
		pick:    rand.IntN,
	}, nil
}

// WithPicker replaces the random source; pick(n) must return a value in [0, n)
func (r *StaticResponder) WithPicker(pick func(n int) int) *StaticResponder {
	r.pick = pick
	return r
}

// Respond implements Responder.Respond
func (r *StaticResponder) Respond(ctx context.Context, message string) (string, error) {
	if r.mode == ModeEcho {
		return EchoPrefix + message, nil
	}

	return r.replies[r.pick(len(r.replies))], nil
}

// Name implements Responder.Name
func (r *StaticResponder) Name() string {
	return "static-" + r.mode
}
