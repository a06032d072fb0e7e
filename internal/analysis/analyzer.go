// Package analysis asks a language model how well the user's listening
// profile lines up with the station schedule.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/sashabaranov/go-openai"

	"github.com/alessandroseni/spotisync/internal/config"
	"github.com/alessandroseni/spotisync/internal/logger"
	"github.com/alessandroseni/spotisync/internal/models"
)

// Provider names accepted in configuration.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Analyzer errors.
var (
	ErrUnknownProvider = errors.New("unknown analysis provider")
	ErrEmptyResponse   = errors.New("model response contained no text")
)

// Analyzer compares a listening profile against a schedule using the
// configured language-model provider.
type Analyzer struct {
	cfg    config.AnalysisConfig
	logger *logger.Logger
}

// NewAnalyzer creates an analyzer from the analysis configuration.
func NewAnalyzer(cfg config.AnalysisConfig, log *logger.Logger) *Analyzer {
	return &Analyzer{
		cfg:    cfg,
		logger: log,
	}
}

// Analyze sends the profile and the schedule to the model and returns
// its compatibility verdict.
func (a *Analyzer) Analyze(profile *models.ListeningProfile, schedule *models.Schedule) (*models.Analysis, error) {
	userPrompt := buildUserPrompt(profile, schedule)

	a.logger.Info("🤖 Starting LLM analysis...")
	a.logger.Debug("analysis request", "provider", a.cfg.Provider, "model", a.cfg.Model, "prompt_chars", len(userPrompt))

	var text string
	var tokens int
	var err error

	switch a.cfg.Provider {
	case ProviderOpenAI:
		text, tokens, err = a.callOpenAI(systemPrompt, userPrompt)
	case ProviderAnthropic:
		text, tokens, err = a.callAnthropic(systemPrompt, userPrompt)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, a.cfg.Provider)
	}

	if err != nil {
		return nil, err
	}

	a.logger.Info("✅ LLM analysis completed!")

	return &models.Analysis{
		Text:       strings.TrimSpace(text),
		Provider:   a.cfg.Provider,
		Model:      a.cfg.Model,
		TokensUsed: tokens,
	}, nil
}

// --- OpenAI ---

func (a *Analyzer) callOpenAI(system, user string) (string, int, error) {
	client := openai.NewClient(a.cfg.OpenAIAPIKey)

	resp, err := client.CreateChatCompletion(
		context.Background(),
		openai.ChatCompletionRequest{
			Model:       a.cfg.Model,
			Temperature: a.cfg.Temperature,
			MaxTokens:   a.cfg.MaxTokens,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: system,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: user,
				},
			},
		},
	)
	if err != nil {
		return "", 0, fmt.Errorf("openai request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", resp.Usage.TotalTokens, ErrEmptyResponse
	}

	return resp.Choices[0].Message.Content, resp.Usage.TotalTokens, nil
}

// --- Anthropic ---

func (a *Analyzer) callAnthropic(system, user string) (string, int, error) {
	client := anthropic.NewClient(option.WithAPIKey(a.cfg.AnthropicAPIKey))

	message, err := client.Messages.New(context.Background(), anthropic.MessageNewParams{
		Model:     anthropic.Model(a.cfg.Model),
		MaxTokens: int64(a.cfg.MaxTokens),
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	})
	if err != nil {
		return "", 0, fmt.Errorf("anthropic request failed: %w", err)
	}

	tokens := int(message.Usage.InputTokens + message.Usage.OutputTokens)

	for _, block := range message.Content {
		if block.Type == "text" {
			return block.Text, tokens, nil
		}
	}

	return "", tokens, ErrEmptyResponse
}
