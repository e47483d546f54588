// Package config carrega a configuração do serviço a partir de variáveis de
// ambiente.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config contém a configuração do serviço.
type Config struct {
	Env        string `envconfig:"ENV" default:"development"`
	ServerPort string `envconfig:"SERVER_PORT" default:"8080"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`

	// Gerador de conteúdo (OpenAI-compatível ou Ollama)
	AIClientType string        `envconfig:"AI_CLIENT_TYPE" default:"openai"`
	AIBaseURL    string        `envconfig:"AI_BASE_URL" default:"https://openrouter.ai/api/v1"`
	AIModel      string        `envconfig:"AI_MODEL" default:"deepseek/deepseek-chat"`
	AIAPIKey     string        `envconfig:"AI_API_KEY"`
	AITimeout    time.Duration `envconfig:"AI_TIMEOUT" default:"120s"`
	AIRetryDelay time.Duration `envconfig:"AI_RETRY_DELAY" default:"1s"`

	// Gerações assíncronas simultâneas
	TaskMaxActive int `envconfig:"TASK_MAX_ACTIVE" default:"10"`

	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

// Load processa as variáveis de ambiente. A API key só é obrigatória para o
// cliente openai; o Ollama local dispensa credencial.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("erro ao carregar configuração: %w", err)
	}
	if strings.EqualFold(cfg.AIClientType, "openai") && cfg.AIAPIKey == "" {
		return nil, fmt.Errorf("AI_API_KEY não definida para o cliente openai")
	}
	return &cfg, nil
}

// GetAllowedOrigins separa a lista de origens do CORS.
func (c *Config) GetAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}
	parts := strings.Split(c.CORSAllowedOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
