package gateway

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/F3lipe-Silva/sistemalife-sub002/internal/model"
)

// ParseContent converte o texto cru do gerador no payload do tipo pedido.
// O texto nunca é confiável pela forma: qualquer desvio vira ErrSchemaViolation
// e entra na política de retry/fallback do gateway.
func ParseContent(kind model.ContentKind, raw string) (*model.ContentResult, error) {
	raw = stripCodeFence(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: resposta vazia após limpeza", model.ErrSchemaViolation)
	}

	result := &model.ContentResult{Kind: kind, Source: model.SourceAI}

	var err error
	switch kind {
	case model.KindMission:
		var mission model.Mission
		err = json.Unmarshal([]byte(raw), &mission)
		result.Mission = &mission
	case model.KindRoadmap:
		var roadmap model.Roadmap
		err = json.Unmarshal([]byte(raw), &roadmap)
		result.Roadmap = &roadmap
	case model.KindSkill:
		var skill model.Skill
		err = json.Unmarshal([]byte(raw), &skill)
		result.Skill = &skill
	case model.KindSubmissionValidation:
		var verdict model.SubmissionVerdict
		err = json.Unmarshal([]byte(raw), &verdict)
		result.Submission = &verdict
	default:
		return nil, fmt.Errorf("%w: tipo de conteúdo desconhecido %q", model.ErrSchemaViolation, kind)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: JSON inválido: %v", model.ErrSchemaViolation, err)
	}
	return result, nil
}

// stripCodeFence remove cercas de markdown (```json ... ```) que alguns
// modelos insistem em colocar em volta do JSON.
func stripCodeFence(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}
	raw = strings.TrimPrefix(raw, "```")
	if idx := strings.Index(raw, "\n"); idx >= 0 {
		// Descarta o identificador de linguagem na primeira linha, se houver.
		if lang := strings.TrimSpace(raw[:idx]); lang == "" || len(lang) <= 10 {
			raw = raw[idx+1:]
		}
	}
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "```")
	return strings.TrimSpace(raw)
}
