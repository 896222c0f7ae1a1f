package services

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const openAITimeout = 90 * time.Second

// OpenAIService implements LLMService against the OpenAI
// chat-completions API.
type OpenAIService struct {
	client    *openai.Client
	modelName string
	logger    *slog.Logger
}

// Ensure OpenAIService implements LLMService
var _ LLMService = (*OpenAIService)(nil)

// NewOpenAIService creates an OpenAI-backed completion gateway. The
// bearer credential is injected once here; nothing else reads it.
func NewOpenAIService(apiKey string, modelName string, logger *slog.Logger) *OpenAIService {
	config := openai.DefaultConfig(apiKey)
	config.HTTPClient = &http.Client{Timeout: openAITimeout}
	return newOpenAIService(config, modelName, logger)
}

// NewOpenAIServiceWithBaseURL creates a gateway pointed at an
// alternate endpoint. Tests use it with an httptest server.
func NewOpenAIServiceWithBaseURL(apiKey string, baseURL string, modelName string, logger *slog.Logger) *OpenAIService {
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL
	config.HTTPClient = &http.Client{Timeout: openAITimeout}
	return newOpenAIService(config, modelName, logger)
}

func newOpenAIService(config openai.ClientConfig, modelName string, logger *slog.Logger) *OpenAIService {
	return &OpenAIService{
		client:    openai.NewClientWithConfig(config),
		modelName: modelName,
		logger:    logger,
	}
}

// Complete sends one system+user exchange and returns the raw
// assistant text from the first choice.
func (s *OpenAIService) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.modelName,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: req.UserPrompt},
		},
		Temperature:      req.Temperature,
		TopP:             req.TopP,
		FrequencyPenalty: req.FrequencyPenalty,
		PresencePenalty:  req.PresencePenalty,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			s.logger.Error("OpenAI API error", "status", apiErr.HTTPStatusCode, "message", apiErr.Message)
			return "", &ProviderError{StatusCode: apiErr.HTTPStatusCode, Message: apiErr.Message}
		}
		var reqErr *openai.RequestError
		if errors.As(err, &reqErr) {
			s.logger.Error("OpenAI request rejected", "status", reqErr.HTTPStatusCode, "error", err)
			return "", &ProviderError{StatusCode: reqErr.HTTPStatusCode, Message: err.Error()}
		}
		s.logger.Error("OpenAI request failed", "error", err)
		return "", &TransportError{Err: err}
	}

	if len(resp.Choices) == 0 {
		return "", &ProviderError{Message: "no choices returned from API"}
	}

	s.logger.Debug("OpenAI completion received",
		"model", resp.Model,
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens)

	return resp.Choices[0].Message.Content, nil
}
