// Package generate owns the single call to the Gemini API: it sends the
// instruction and schema for a workout request, then parses and validates
// the returned plan without trusting the schema constraint.
package generate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/claude/fitgen/internal/prompt"
	"github.com/claude/fitgen/internal/workout"
	"google.golang.org/genai"
)

// Defaults applied by New when the config leaves them unset.
const (
	DefaultModel       = "gemini-2.5-flash"
	DefaultTemperature = 0.8
)

// Config carries everything the client needs from the outside world.
type Config struct {
	APIKey      string
	Model       string
	Temperature float32
}

// Model is the subset of *genai.Models used by Client.
type Model interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client generates workout plans. It is safe for concurrent use.
type Client struct {
	cfg   Config
	model Model
	log   *slog.Logger
}

// New creates a Client over model. A client with an empty API key or a nil
// model refuses every call with a configuration error.
func New(cfg Config, model Model, log *slog.Logger) *Client {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = DefaultTemperature
	}
	return &Client{cfg: cfg, model: model, log: log}
}

// NewGemini creates a Client backed by the Gemini API. Without an API key
// no genai client is created and the returned Client is not Ready.
func NewGemini(ctx context.Context, cfg Config, log *slog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return New(cfg, nil, log), nil
	}
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &Error{Kind: KindConfiguration, Err: fmt.Errorf("creating genai client: %w", err)}
	}
	return New(cfg, gc.Models, log), nil
}

// Ready reports whether the client can make calls. It returns a
// configuration error otherwise.
func (c *Client) Ready() error {
	if c.cfg.APIKey == "" {
		return &Error{Kind: KindConfiguration, Err: errors.New("gemini api key is not set")}
	}
	if c.model == nil {
		return &Error{Kind: KindConfiguration, Err: errors.New("no model backend")}
	}
	return nil
}

// ModelName returns the model identifier sent with each request.
func (c *Client) ModelName() string { return c.cfg.Model }

// Generate makes exactly one call to the model and returns a validated plan.
// Every failure is an *Error; use UserMessage for what to show the user.
func (c *Client) Generate(ctx context.Context, req workout.Request) (*workout.Plan, error) {
	if err := c.Ready(); err != nil {
		c.log.Error("generation unavailable", "error", err)
		return nil, err
	}

	start := time.Now()
	resp, err := c.model.GenerateContent(ctx, c.cfg.Model, genai.Text(prompt.Build(req)), &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(c.cfg.Temperature),
		ResponseMIMEType: "application/json",
		ResponseSchema:   prompt.Schema(),
	})
	if err != nil {
		return nil, c.fail(&Error{Kind: KindTransport, Err: fmt.Errorf("calling %s: %w", c.cfg.Model, err)}, start)
	}

	text, err := responseText(resp)
	if err != nil {
		return nil, c.fail(&Error{Kind: KindTransport, Err: err}, start)
	}

	plan, err := ParsePlan(text)
	if err != nil {
		c.log.Debug("rejected model output", "text", text)
		return nil, c.fail(err, start)
	}

	c.log.Info("workout generated",
		"model", c.cfg.Model,
		"workout_name", plan.WorkoutName,
		"exercises", len(plan.Exercises),
		"duration", time.Since(start).String(),
	)
	return plan, nil
}

func (c *Client) fail(err error, start time.Time) error {
	c.log.Error("workout generation failed",
		"model", c.cfg.Model,
		"kind", KindOf(err).String(),
		"error", err,
		"duration", time.Since(start).String(),
	)
	return err
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", errors.New("nil response")
	}
	if len(resp.Candidates) == 0 {
		if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" {
			return "", fmt.Errorf("prompt blocked: %s", fb.BlockReason)
		}
		return "", errors.New("response has no candidates")
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil {
		if cand != nil {
			return "", fmt.Errorf("candidate has no content (finish reason %q)", cand.FinishReason)
		}
		return "", errors.New("nil candidate")
	}
	var sb strings.Builder
	for _, p := range cand.Content.Parts {
		if p == nil || p.Thought {
			continue
		}
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}
