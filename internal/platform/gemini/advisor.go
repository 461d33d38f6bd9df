package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/phrazzld/fitload/internal/config"
	"github.com/phrazzld/fitload/internal/domain"
	"google.golang.org/genai"
)

// contentGenerator is the subset of genai.Models used by the Advisor.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Advisor produces coaching notes with a Gemini model.
type Advisor struct {
	models     contentGenerator
	model      string
	maxRetries int
	baseDelay  time.Duration
	logger     *slog.Logger
}

// NewAdvisor creates an Advisor backed by the Gemini API.
// Returns ErrInvalidConfig when the API key or model name is missing.
func NewAdvisor(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Advisor, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		return nil, fmt.Errorf("%w: gemini API key is required", ErrInvalidConfig)
	}
	if strings.TrimSpace(cfg.ModelName) == "" {
		return nil, fmt.Errorf("%w: model name is required", ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	logger.InfoContext(ctx, "gemini advisor initialized", slog.String("model", cfg.ModelName))
	return newAdvisor(client.Models, cfg, logger), nil
}

func newAdvisor(models contentGenerator, cfg config.LLMConfig, logger *slog.Logger) *Advisor {
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	delay := time.Duration(cfg.RetryDelaySeconds) * time.Second
	if delay < 0 {
		delay = 0
	}
	return &Advisor{
		models:     models,
		model:      cfg.ModelName,
		maxRetries: maxRetries,
		baseDelay:  delay,
		logger:     logger.With(slog.String("component", "gemini_advisor")),
	}
}

// Advise implements service.Advisor.
func (a *Advisor) Advise(
	ctx context.Context,
	hint domain.OverloadHint,
	history []domain.WorkoutSet,
	policy domain.LoadProgression,
) (string, error) {
	prompt, err := buildPrompt(hint, history, policy)
	if err != nil {
		return "", err
	}

	text, err := a.generateWithRetry(ctx, prompt)
	if err != nil {
		return "", err
	}
	return text, nil
}

// generateWithRetry calls the model up to maxRetries+1 times, sleeping with
// exponential backoff and jitter between attempts.
func (a *Advisor) generateWithRetry(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	genConfig := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	var lastErr error
	for attempt := 0; attempt <= a.maxRetries; attempt++ {
		resp, err := a.models.GenerateContent(ctx, a.model, contents, genConfig)
		if err == nil {
			text := ""
			if resp != nil {
				text = strings.TrimSpace(resp.Text())
			}
			if text != "" {
				return text, nil
			}
			err = ErrEmptyResponse
		}
		lastErr = err

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		if attempt == a.maxRetries {
			break
		}

		backoff := float64(a.baseDelay) * math.Pow(2, float64(attempt))
		delay := time.Duration(backoff * (0.8 + 0.4*rng.Float64()))
		a.logger.WarnContext(ctx, "gemini call failed, retrying",
			slog.Int("attempt", attempt+1),
			slog.Duration("delay", delay),
			slog.String("error", err.Error()))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	a.logger.ErrorContext(ctx, "gemini advice failed",
		slog.Int("attempts", a.maxRetries+1),
		slog.String("error", lastErr.Error()))
	return "", fmt.Errorf("%w after %d attempts: %w", ErrAdviceFailed, a.maxRetries+1, lastErr)
}
