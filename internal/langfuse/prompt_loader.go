package langfuse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/blaisecz/sleep-records/pkg/logger"
)

// PromptConfig names a managed prompt and an optional local cache file.
type PromptConfig struct {
	Config

	Name     string
	Label    string
	SavePath string
}

var (
	errPromptDisabled = errors.New("langfuse prompt loading disabled")
	// ErrNoPrompt is returned when neither Langfuse nor the local file yields a prompt.
	ErrNoPrompt = errors.New("no prompt available")
)

// LoadPrompt fetches a text or chat prompt from Langfuse, caching it at SavePath.
// When Langfuse is unreachable the cached copy is used instead.
func LoadPrompt(ctx context.Context, cfg PromptConfig, log *logger.Logger) (string, error) {
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("langfuse")

	prompt, err := fetchPrompt(ctx, cfg)
	if err == nil {
		if err := savePrompt(cfg.SavePath, prompt); err != nil {
			log.Warn().Err(err).Str("path", cfg.SavePath).Msg("Failed to cache prompt locally")
		}
		return prompt, nil
	}
	if !errors.Is(err, errPromptDisabled) {
		log.Warn().Err(err).Str("prompt", cfg.Name).Msg("Prompt fetch failed, trying local copy")
	}

	return readPrompt(cfg.SavePath)
}

func fetchPrompt(ctx context.Context, cfg PromptConfig) (string, error) {
	if cfg.Name == "" || !cfg.Config.enabled() {
		return "", errPromptDisabled
	}

	endpoint, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid LANGFUSE_BASE_URL: %w", err)
	}
	endpoint.Path = strings.TrimSuffix(endpoint.Path, "/") + "/api/public/v2/prompts/" + url.PathEscape(cfg.Name)
	if cfg.Label != "" {
		endpoint.RawQuery = url.Values{"label": {cfg.Label}}.Encode()
	}

	ctx, cancel := context.WithTimeout(ctx, asyncTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return "", fmt.Errorf("create prompt request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(cfg.PublicKey, cfg.SecretKey)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call prompt API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("prompt API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload struct {
		Type   string          `json:"type"`
		Prompt json.RawMessage `json:"prompt"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode prompt response: %w", err)
	}

	switch payload.Type {
	case "", "text":
		var text string
		if err := json.Unmarshal(payload.Prompt, &text); err != nil {
			return "", fmt.Errorf("parse text prompt: %w", err)
		}
		return text, nil
	case "chat":
		var messages []chatMessage
		if err := json.Unmarshal(payload.Prompt, &messages); err != nil {
			return "", fmt.Errorf("parse chat prompt: %w", err)
		}
		return flattenChat(messages), nil
	default:
		return "", fmt.Errorf("unsupported prompt type %q", payload.Type)
	}
}

type chatMessage struct {
	Type    string `json:"type"`
	Role    string `json:"role"`
	Content string `json:"content"`
	Name    string `json:"name"`
}

// flattenChat joins chat messages into one system prompt, "ROLE: content" per block.
func flattenChat(messages []chatMessage) string {
	var parts []string
	for _, msg := range messages {
		content := msg.Content
		if msg.Type == "placeholder" {
			if msg.Name == "" {
				continue
			}
			content = "{{" + msg.Name + "}}"
		}
		if content == "" {
			continue
		}
		role := msg.Role
		if role == "" {
			role = "message"
		}
		parts = append(parts, strings.ToUpper(role)+": "+content)
	}
	return strings.Join(parts, "\n\n")
}

func readPrompt(path string) (string, error) {
	if path == "" {
		return "", ErrNoPrompt
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %v", ErrNoPrompt, path, err)
	}
	return string(data), nil
}

func savePrompt(path, prompt string) error {
	if path == "" {
		return nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(prompt), 0o600)
}
