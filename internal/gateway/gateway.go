// Package gateway concentra a política de failover do pipeline de geração:
// uma tentativa, um retry para falha transitória, depois fallback
// determinístico — ou erro duro para tipos sem fallback. Os fluxos nunca
// chamam o gerador diretamente; a política vive só aqui.
package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/F3lipe-Silva/sistemalife-sub002/internal/fallback"
	"github.com/F3lipe-Silva/sistemalife-sub002/internal/model"
	"github.com/F3lipe-Silva/sistemalife-sub002/internal/schemas"
	"github.com/F3lipe-Silva/sistemalife-sub002/pkg/ai"
)

// maxAttempts cobre a tentativa inicial mais um retry transitório.
const maxAttempts = 2

var contentResultsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "sistemalife_content_results_total",
		Help: "Content generation results by kind and path taken.",
	},
	[]string{"kind", "path"},
)

// Gateway media todas as chamadas ao gerador externo e garante que o valor
// retornado satisfaz o contrato de schema do tipo, venha do AI ou do fallback.
type Gateway struct {
	client     ai.Client
	logger     *zap.Logger
	retryDelay time.Duration
}

// New cria um Gateway. retryDelay <= 0 usa 1s, como o worker de geração.
func New(client ai.Client, logger *zap.Logger, retryDelay time.Duration) *Gateway {
	if retryDelay <= 0 {
		retryDelay = time.Second
	}
	return &Gateway{
		client:     client,
		logger:     logger.Named("ContentGateway"),
		retryDelay: retryDelay,
	}
}

// Generate invoca o gerador com o prompt já montado pelo fluxo e devolve o
// resultado validado. Toda falha do caminho AI é absorvida aqui via fallback,
// exceto para tipos sem fallback (validação de submissão), onde o erro é
// propagado — inventar um veredito seria pior que falhar.
func (g *Gateway) Generate(ctx context.Context, req model.ContentRequest, systemPrompt, userPrompt string, structured bool) (*model.ContentResult, error) {
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		raw, _, err := g.client.GenerateText(ctx, systemPrompt, userPrompt, structured)
		if err == nil {
			result, validationErr := g.parseAndValidate(req, raw)
			if validationErr == nil {
				contentResultsTotal.With(prometheus.Labels{"kind": string(req.Kind), "path": "ai"}).Inc()
				return result, nil
			}
			// Violação de schema conta como falha transitória: o gerador é
			// não-determinístico, a próxima resposta pode ser válida.
			g.logger.Warn("Resposta do AI reprovada no contrato de schema",
				zap.String("kind", string(req.Kind)),
				zap.Int("attempt", attempt),
				zap.Error(validationErr))
			lastErr = validationErr
		} else {
			g.logger.Warn("Falha na chamada ao gerador",
				zap.String("kind", string(req.Kind)),
				zap.Int("attempt", attempt),
				zap.Error(err))
			lastErr = err
			if !ai.IsTransient(err) {
				break
			}
		}

		if attempt < maxAttempts {
			// Abandona o retry se o prazo do chamador venceu; fallback imediato.
			select {
			case <-ctx.Done():
				g.logger.Warn("Prazo do chamador vencido, abortando retry",
					zap.String("kind", string(req.Kind)))
				return g.failover(req, ctx.Err())
			case <-time.After(g.retryDelay):
			}
		}
	}

	return g.failover(req, lastErr)
}

// failover troca o erro do caminho AI por conteúdo determinístico, quando o
// tipo permite. A tarefa é caracterizada como "failed-over", não como erro.
func (g *Gateway) failover(req model.ContentRequest, cause error) (*model.ContentResult, error) {
	if req.Kind == model.KindSubmissionValidation {
		contentResultsTotal.With(prometheus.Labels{"kind": string(req.Kind), "path": "error"}).Inc()
		// Estouro de quota é condição passageira: o chamador deve reenviar
		// depois, não tratar o gerador como fora do ar.
		if ai.IsRateLimited(cause) {
			return nil, fmt.Errorf("%w: %w", model.ErrUpstreamTransient, cause)
		}
		return nil, fmt.Errorf("%w: %w", model.ErrUpstreamUnavailable, cause)
	}

	result, err := fallback.Generate(req)
	if err != nil {
		contentResultsTotal.With(prometheus.Labels{"kind": string(req.Kind), "path": "error"}).Inc()
		return nil, err
	}
	if err := schemas.ValidateResult(result); err != nil {
		// Fallback inválido é bug nosso, não condição operacional.
		return nil, fmt.Errorf("%w: fallback reprovado no próprio contrato: %v", model.ErrInternalServer, err)
	}

	g.logger.Info("Geração failed-over para conteúdo determinístico",
		zap.String("kind", string(req.Kind)),
		zap.NamedError("cause", cause))
	contentResultsTotal.With(prometheus.Labels{"kind": string(req.Kind), "path": "fallback"}).Inc()
	return result, nil
}

func (g *Gateway) parseAndValidate(req model.ContentRequest, raw string) (*model.ContentResult, error) {
	result, err := ParseContent(req.Kind, raw)
	if err != nil {
		return nil, err
	}
	if err := schemas.ValidateResult(result); err != nil {
		return nil, err
	}
	if req.Kind == model.KindSkill && !schemas.SkillCategoryAllowed(result.Skill.Category, req.Categories) {
		return nil, fmt.Errorf("%w: categoria %q fora da lista fornecida",
			model.ErrSchemaViolation, result.Skill.Category)
	}
	return result, nil
}
