package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
	"github.com/prometheus/client_golang/prometheus"
)

// ollamaClient implementa Client sobre o API nativo do Ollama, para
// implantações auto-hospedadas.
type ollamaClient struct {
	client  *api.Client
	model   string
	timeout time.Duration
}

func newOllamaClient(cfg Config) (Client, error) {
	// api.NewClient espera o URL sem o sufixo /v1
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/v1")
	baseURL = strings.TrimSuffix(baseURL, "/")
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("ai: URL base do Ollama inválido %q: %w", baseURL, err)
	}

	client := api.NewClient(parsedURL, &http.Client{Timeout: cfg.Timeout})
	log.Info().Str("baseURL", baseURL).Str("model", cfg.Model).
		Dur("timeout", cfg.Timeout).Msg("Cliente AI criado (Ollama)")

	return &ollamaClient{client: client, model: cfg.Model, timeout: cfg.Timeout}, nil
}

func (c *ollamaClient) GenerateText(ctx context.Context, systemPrompt, userInput string, structured bool) (string, UsageInfo, error) {
	usage := UsageInfo{}

	if strings.TrimSpace(systemPrompt) == "" {
		aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error"}).Inc()
		return "", usage, fmt.Errorf("%w: system prompt vazio", ErrGenerationFailed)
	}

	messages := []api.Message{
		{Role: "system", Content: systemPrompt},
	}
	if userInput != "" {
		messages = append(messages, api.Message{Role: "user", Content: userInput})
	}

	stream := false
	req := &api.ChatRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   &stream,
		Options: map[string]interface{}{
			"temperature": 0.7,
			"top_p":       0.95,
		},
	}
	if structured {
		req.Format = []byte(`"json"`)
	}

	requestCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	startTime := time.Now()
	log.Debug().Str("model", c.model).Bool("structured", structured).Msg("Enviando requisição ao Ollama")

	var resp api.ChatResponse
	err := c.client.Chat(requestCtx, req, func(r api.ChatResponse) error {
		resp = r
		return nil
	})
	duration := time.Since(startTime)

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			log.Error().Err(err).Dur("timeout", c.timeout).Msg("Timeout do Ollama API")
		} else {
			log.Error().Err(err).Dur("duration", duration).Msg("Erro do Ollama API")
		}
		aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error"}).Inc()
		// %w duplo preserva o erro de transporte na cadeia para IsTransient.
		return "", usage, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	if resp.Message.Content == "" {
		log.Warn().Dur("duration", duration).Msg("Ollama API retornou resposta vazia")
		aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error_empty_response"}).Inc()
		return "", usage, fmt.Errorf("%w: resposta vazia", ErrGenerationFailed)
	}

	aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "success"}).Inc()
	aiRequestDuration.With(prometheus.Labels{"model": c.model}).Observe(duration.Seconds())

	usage.PromptTokens = resp.PromptEvalCount
	usage.CompletionTokens = resp.EvalCount
	usage.TotalTokens = resp.PromptEvalCount + resp.EvalCount
	usage = observeUsage(c.model, usage, systemPrompt, userInput)

	generated := resp.Message.Content
	log.Info().Dur("duration", duration).Int("responseLen", len(generated)).
		Int("totalTokens", usage.TotalTokens).Msg("Resposta do Ollama recebida")

	return generated, usage, nil
}
