package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	openaigo "github.com/sashabaranov/go-openai"
)

// openAIClient implementa Client sobre qualquer API OpenAI-compatível
// (OpenAI, OpenRouter, DeepSeek).
type openAIClient struct {
	client  *openaigo.Client
	model   string
	timeout time.Duration
}

func (c *openAIClient) GenerateText(ctx context.Context, systemPrompt, userInput string, structured bool) (string, UsageInfo, error) {
	usage := UsageInfo{}

	if strings.TrimSpace(systemPrompt) == "" {
		aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error"}).Inc()
		return "", usage, fmt.Errorf("%w: system prompt vazio", ErrGenerationFailed)
	}

	messages := []openaigo.ChatCompletionMessage{
		{Role: openaigo.ChatMessageRoleSystem, Content: systemPrompt},
	}
	if userInput != "" {
		messages = append(messages, openaigo.ChatCompletionMessage{
			Role:    openaigo.ChatMessageRoleUser,
			Content: userInput,
		})
	}

	req := openaigo.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: 0.7,
		TopP:        0.95,
	}
	if structured {
		req.ResponseFormat = &openaigo.ChatCompletionResponseFormat{
			Type: openaigo.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	startTime := time.Now()
	log.Debug().Str("model", c.model).Bool("structured", structured).
		Int("systemPromptBytes", len(systemPrompt)).Int("userInputBytes", len(userInput)).
		Msg("Enviando requisição ao AI")

	resp, err := c.client.CreateChatCompletion(ctx, req)
	duration := time.Since(startTime)

	if err != nil {
		log.Error().Err(err).Dur("duration", duration).Msg("Erro do AI API")
		aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error"}).Inc()
		// %w duplo preserva o *openai.APIError na cadeia para IsTransient e
		// IsRateLimited.
		return "", usage, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		log.Warn().Dur("duration", duration).Msg("AI API retornou resposta vazia")
		aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error_empty_response"}).Inc()
		return "", usage, fmt.Errorf("%w: resposta vazia", ErrGenerationFailed)
	}

	aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "success"}).Inc()
	aiRequestDuration.With(prometheus.Labels{"model": c.model}).Observe(duration.Seconds())

	usage.PromptTokens = resp.Usage.PromptTokens
	usage.CompletionTokens = resp.Usage.CompletionTokens
	usage.TotalTokens = resp.Usage.TotalTokens
	usage = observeUsage(c.model, usage, systemPrompt, userInput)

	generated := resp.Choices[0].Message.Content
	log.Info().Dur("duration", duration).Int("responseLen", len(generated)).
		Int("totalTokens", usage.TotalTokens).Msg("Resposta do AI API recebida")

	return generated, usage, nil
}
