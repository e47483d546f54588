// Package ai abstrai o gerador de conteúdo externo (OpenAI-compatível ou
// Ollama) atrás de uma interface estreita. A saída é texto cru, nunca
// confiável pela forma: a validação de schema pertence ao gateway.
package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	openaigo "github.com/sashabaranov/go-openai"
)

var log = zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Str("component", "ai").Logger()

// ErrGenerationFailed indica falha do gerador (transporte, quota, resposta
// vazia). O gateway decide retry/fallback a partir dele.
var ErrGenerationFailed = errors.New("falha na geração de texto pelo AI")

// UsageInfo agrega contagem de tokens do gerador para telemetria.
type UsageInfo struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Client é a interface de invocação do gerador externo.
// structured pede resposta em JSON estrito (response_format nos backends que
// suportam); a checagem do conteúdo continua sendo do chamador.
type Client interface {
	GenerateText(ctx context.Context, systemPrompt, userInput string, structured bool) (string, UsageInfo, error)
}

// Config configura o cliente do gerador.
type Config struct {
	ClientType string // "openai" ou "ollama"
	APIKey     string
	BaseURL    string
	Model      string
	Timeout    time.Duration
}

// NewClient cria a implementação de Client conforme a configuração.
func NewClient(cfg Config) (Client, error) {
	if cfg.Model == "" {
		return nil, errors.New("ai: modelo não configurado")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}

	switch strings.ToLower(cfg.ClientType) {
	case "", "openai":
		if cfg.APIKey == "" {
			return nil, errors.New("ai: API key não configurada")
		}
		openaiConfig := openaigo.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			openaiConfig.BaseURL = cfg.BaseURL
		}
		openaiConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}
		client := openaigo.NewClientWithConfig(openaiConfig)
		log.Info().Str("baseURL", openaiConfig.BaseURL).Str("model", cfg.Model).
			Dur("timeout", cfg.Timeout).Msg("Cliente AI criado (OpenAI)")
		return &openAIClient{client: client, model: cfg.Model, timeout: cfg.Timeout}, nil

	case "ollama":
		return newOllamaClient(cfg)

	default:
		return nil, fmt.Errorf("ai: tipo de cliente desconhecido %q", cfg.ClientType)
	}
}

// IsTransient informa se a falha merece uma nova tentativa: timeout,
// rate limit, sobrecarga ou erro 5xx do upstream. Credencial inválida não é
// transitória — repetir não ajuda.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var apiErr *openaigo.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusRequestTimeout, http.StatusTooManyRequests:
			return true
		}
		return apiErr.HTTPStatusCode >= http.StatusInternalServerError
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Timeout()
	}
	// Resposta vazia e erros de transporte sem classificação valem retry.
	return errors.Is(err, ErrGenerationFailed)
}

// IsRateLimited destaca estouro de quota para o mapeamento HTTP (429).
func IsRateLimited(err error) bool {
	var apiErr *openaigo.APIError
	return errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests
}
