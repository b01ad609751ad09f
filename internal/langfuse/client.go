// Package langfuse sends advisor traces and user feedback scores to Langfuse
// over its public HTTP ingestion API. Without credentials the client is a no-op.
package langfuse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/blaisecz/sleep-records/pkg/logger"
	"github.com/google/uuid"
)

const (
	// asyncTimeout bounds a single background ingestion call.
	asyncTimeout = 5 * time.Second

	// FeedbackScoreName is the score name used for advice ratings.
	FeedbackScoreName = "user_rating"
)

// Client is the subset of Langfuse the API uses.
type Client interface {
	IsEnabled() bool
	// CreateTrace queues a trace and returns its ID. The ID is generated when in.ID is empty.
	CreateTrace(ctx context.Context, in TraceInput) (string, error)
	// CreateScore queues a score for an existing trace.
	CreateScore(ctx context.Context, in ScoreInput) error
	// Flush blocks until queued events are sent or ctx is done.
	Flush(ctx context.Context) error
}

type TraceInput struct {
	ID       string
	Name     string
	Input    any
	Output   any
	Tags     []string
	Metadata map[string]any
}

type ScoreInput struct {
	TraceID string
	Name    string
	Value   float64
	Comment string
}

type Config struct {
	BaseURL     string
	PublicKey   string
	SecretKey   string
	Environment string
}

func (c Config) enabled() bool {
	return c.BaseURL != "" && c.PublicKey != "" && c.SecretKey != ""
}

type client struct {
	cfg        Config
	log        *logger.Logger
	httpClient *http.Client
	pending    sync.WaitGroup
}

// NewClient returns a Langfuse client. A nil log discards client logs.
func NewClient(cfg Config, log *logger.Logger) Client {
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("langfuse")
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")

	switch {
	case cfg.BaseURL == "":
		log.Info().Msg("Langfuse disabled: LANGFUSE_BASE_URL is empty")
	case cfg.PublicKey == "":
		log.Info().Msg("Langfuse disabled: LANGFUSE_PUBLIC_KEY is empty")
	case cfg.SecretKey == "":
		log.Info().Msg("Langfuse disabled: LANGFUSE_SECRET_KEY is empty")
	default:
		log.Info().Str("base_url", cfg.BaseURL).Str("env", cfg.Environment).Msg("Langfuse enabled")
	}

	return &client{
		cfg:        cfg,
		log:        log,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *client) IsEnabled() bool {
	return c.cfg.enabled()
}

func (c *client) CreateTrace(ctx context.Context, in TraceInput) (string, error) {
	if !c.IsEnabled() {
		return "", nil
	}

	traceID := in.ID
	if traceID == "" {
		traceID = uuid.NewString()
	}

	metadata := make(map[string]any, len(in.Metadata)+1)
	for k, v := range in.Metadata {
		metadata[k] = v
	}
	if c.cfg.Environment != "" {
		metadata["environment"] = c.cfg.Environment
	}

	c.enqueue("trace", traceBody{
		ID:       traceID,
		Name:     in.Name,
		Input:    in.Input,
		Output:   in.Output,
		Tags:     in.Tags,
		Metadata: metadata,
	}, "trace-create")

	return traceID, nil
}

func (c *client) CreateScore(ctx context.Context, in ScoreInput) error {
	if !c.IsEnabled() {
		return nil
	}
	if in.TraceID == "" {
		return fmt.Errorf("score %q: trace id is required", in.Name)
	}

	c.enqueue("score", scoreBody{
		ID:      uuid.NewString(),
		TraceID: in.TraceID,
		Name:    in.Name,
		Value:   in.Value,
		Comment: in.Comment,
	}, "score-create")

	return nil
}

func (c *client) Flush(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		c.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// enqueue sends the event in the background so the request path never waits on Langfuse.
func (c *client) enqueue(kind string, body any, eventType string) {
	event := ingestionEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Body:      body,
	}

	c.pending.Add(1)
	go func() {
		defer c.pending.Done()

		ctx, cancel := context.WithTimeout(context.Background(), asyncTimeout)
		defer cancel()

		if err := c.send(ctx, []ingestionEvent{event}); err != nil {
			c.log.Warn().Err(err).Str("kind", kind).Msg("Langfuse ingestion failed")
		}
	}()
}

func (c *client) send(ctx context.Context, events []ingestionEvent) error {
	body, err := json.Marshal(batchPayload{Batch: events})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/api/public/ingestion", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.cfg.PublicKey, c.cfg.SecretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("ingestion failed with status %d", resp.StatusCode)
	}
	return nil
}

type batchPayload struct {
	Batch []ingestionEvent `json:"batch"`
}

type ingestionEvent struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
	Body      any    `json:"body"`
}

type traceBody struct {
	ID       string         `json:"id"`
	Name     string         `json:"name,omitempty"`
	Input    any            `json:"input,omitempty"`
	Output   any            `json:"output,omitempty"`
	Tags     []string       `json:"tags,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type scoreBody struct {
	ID      string  `json:"id"`
	TraceID string  `json:"traceId"`
	Name    string  `json:"name"`
	Value   float64 `json:"value"`
	Comment string  `json:"comment,omitempty"`
}
