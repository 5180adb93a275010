package therapy

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mindhaven/mindhaven-api/internal/models"
)

// Generator produces free-form text for a prompt. It is optional; a nil
// Generator means the Responder always answers from the curated pools.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Responder is the two-stage response pipeline: attempt bounded generation,
// validate the output, and otherwise fall back to deterministic selection.
// Generation failures are logged and never surfaced to the caller.
type Responder struct {
	selector  *Selector
	generator Generator
	timeout   time.Duration
	logger    *zap.Logger
}

const defaultGenerateTimeout = 10 * time.Second

// NewResponder wires a Responder. generator may be nil.
func NewResponder(selector *Selector, generator Generator, timeout time.Duration, logger *zap.Logger) *Responder {
	if timeout <= 0 {
		timeout = defaultGenerateTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Responder{
		selector:  selector,
		generator: generator,
		timeout:   timeout,
		logger:    logger,
	}
}

// Respond classifies the message and returns a response string. Crisis
// messages bypass generation entirely, and greetings and casual small talk
// always answer from their pools; generation stands in only for the
// emotion, modality, and generic stages. Empty or whitespace-only input is
// treated as neutral and answered from the generic pool.
func (r *Responder) Respond(ctx context.Context, message string, therapyType models.TherapyType, history []string) string {
	tags := Classify(message)

	if tags.IsCrisis {
		return CrisisResponse
	}

	if strings.TrimSpace(message) != "" && !tags.IsGreeting && !tags.IsCasual && r.generator != nil {
		if response, ok := r.generate(ctx, message, therapyType, history); ok {
			return response
		}
	}

	return r.selector.Select(message, therapyType, tags)
}

// Classify exposes the tag set for a message so callers can persist it
// alongside the response.
func (r *Responder) Classify(message string) Classification {
	return Classify(message)
}

func (r *Responder) generate(ctx context.Context, message string, therapyType models.TherapyType, history []string) (string, bool) {
	genCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	prompt := BuildPrompt(message, therapyType, history)
	raw, err := r.generator.Generate(genCtx, prompt)
	if err != nil {
		r.logger.Warn("generation_failed_falling_back",
			zap.String("therapy_type", string(therapyType)),
			zap.Error(err))
		return "", false
	}

	cleaned := CleanGenerated(raw, prompt)
	if !Acceptable(cleaned) {
		r.logger.Debug("generated_response_rejected",
			zap.Int("length", len(cleaned)))
		return "", false
	}
	return cleaned, true
}
