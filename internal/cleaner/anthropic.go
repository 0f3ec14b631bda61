package cleaner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/zjrosen/polish/internal/log"
)

const defaultModel = "claude-3-5-haiku-latest"

// ErrMissingAPIKey is returned by NewAnthropic when no API key is available.
var ErrMissingAPIKey = errors.New("anthropic backend not configured: export ANTHROPIC_API_KEY")

// messageClient is the slice of the Anthropic SDK the cleaner needs.
// Narrowed to an interface so tests can inject a scripted client.
type messageClient interface {
	New(ctx context.Context, body anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// AnthropicConfig configures the remote cleaner.
type AnthropicConfig struct {
	// Model is the Anthropic model name. Defaults to defaultModel.
	Model string
	// MaxTokens caps the response size. Defaults to 4096.
	MaxTokens int64
	// APIKey overrides the ANTHROPIC_API_KEY env var when non-empty.
	APIKey string
	// BaseURL overrides the API endpoint when non-empty.
	BaseURL string
}

// Anthropic cleans text through the Anthropic Messages API.
type Anthropic struct {
	messages  messageClient
	model     string
	maxTokens int64
}

// NewAnthropic builds the remote cleaner from config and environment.
func NewAnthropic(cfg AnthropicConfig) (*Anthropic, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		apiKey = strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY"))
	}
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL := strings.TrimSpace(cfg.BaseURL); baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	client := anthropic.NewClient(opts...)
	service := client.Messages

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 4096
	}

	return &Anthropic{
		messages:  &service,
		model:     model,
		maxTokens: maxTokens,
	}, nil
}

// newAnthropicWithClient is used by tests to inject a scripted client.
func newAnthropicWithClient(client messageClient, model string) *Anthropic {
	return &Anthropic{messages: client, model: model, maxTokens: 4096}
}

// Clean sends the text and the rendered option instructions to the model
// and returns the cleaned text. The call blocks until the API responds or
// ctx is cancelled; failures are returned unwrapped into user-facing state
// by the session layer.
func (a *Anthropic) Clean(ctx context.Context, text string, opts Options) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: a.maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: opts.Instructions()},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(text)),
		},
	}

	resp, err := a.messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("cleaning request: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	cleaned := strings.TrimSpace(sb.String())
	if cleaned == "" {
		return "", fmt.Errorf("cleaning request: empty response from model %s", a.model)
	}

	log.Debug(log.CatCleaner, "clean completed", "model", a.model, "in", len(text), "out", len(cleaned))
	return cleaned, nil
}
