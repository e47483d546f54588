// Package schemas define o contrato de schema por tipo de conteúdo.
// Um validador por variante, compartilhado pelos caminhos AI e fallback:
// nenhum resultado cruza a fronteira do pipeline sem passar por aqui.
package schemas

import (
	"fmt"

	"github.com/F3lipe-Silva/sistemalife-sub002/internal/model"
)

// Limites estruturais do contrato.
const (
	MinRoadmapPhases     = 2
	MaxRoadmapPhases     = 4
	MinPhaseMilestones   = 3
	MaxPhaseMilestones   = 5
	MaxFeedbackRunes     = 500
	DefaultSkillCategory = "Geral"
)

// ValidateResult valida um ContentResult contra o contrato do seu tipo.
// Erros são embrulhados em model.ErrSchemaViolation.
func ValidateResult(res *model.ContentResult) error {
	if res == nil {
		return fmt.Errorf("%w: resultado nulo", model.ErrSchemaViolation)
	}
	switch res.Kind {
	case model.KindMission:
		return validateMission(res.Mission)
	case model.KindRoadmap:
		return validateRoadmap(res.Roadmap)
	case model.KindSkill:
		return validateSkill(res.Skill)
	case model.KindSubmissionValidation:
		return validateSubmission(res.Submission)
	default:
		return fmt.Errorf("%w: tipo de conteúdo desconhecido %q", model.ErrSchemaViolation, res.Kind)
	}
}

func validateMission(m *model.Mission) error {
	if m == nil {
		return fmt.Errorf("%w: missão ausente no resultado", model.ErrSchemaViolation)
	}
	if m.Name == "" {
		return fmt.Errorf("%w: missão sem nome", model.ErrSchemaViolation)
	}
	if m.Description == "" {
		return fmt.Errorf("%w: missão sem descrição", model.ErrSchemaViolation)
	}
	if m.XP < 0 {
		return fmt.Errorf("%w: xp negativo (%d)", model.ErrSchemaViolation, m.XP)
	}
	if m.Fragments < 0 {
		return fmt.Errorf("%w: fragmentos negativos (%d)", model.ErrSchemaViolation, m.Fragments)
	}
	if len(m.Subtasks) == 0 {
		return fmt.Errorf("%w: missão precisa de ao menos uma subtarefa", model.ErrSchemaViolation)
	}
	for i, st := range m.Subtasks {
		if st.Name == "" {
			return fmt.Errorf("%w: subtarefa %d sem nome", model.ErrSchemaViolation, i)
		}
		if st.Target < 1 {
			return fmt.Errorf("%w: subtarefa %d com alvo %d (mínimo 1)", model.ErrSchemaViolation, i, st.Target)
		}
		if st.Unit == "" {
			return fmt.Errorf("%w: subtarefa %d sem unidade", model.ErrSchemaViolation, i)
		}
	}
	return nil
}

func validateRoadmap(r *model.Roadmap) error {
	if r == nil {
		return fmt.Errorf("%w: roadmap ausente no resultado", model.ErrSchemaViolation)
	}
	if n := len(r.Phases); n < MinRoadmapPhases || n > MaxRoadmapPhases {
		return fmt.Errorf("%w: roadmap com %d fases (esperado %d a %d)",
			model.ErrSchemaViolation, n, MinRoadmapPhases, MaxRoadmapPhases)
	}
	for i, phase := range r.Phases {
		if phase.Name == "" {
			return fmt.Errorf("%w: fase %d sem nome", model.ErrSchemaViolation, i)
		}
		if n := len(phase.Milestones); n < MinPhaseMilestones || n > MaxPhaseMilestones {
			return fmt.Errorf("%w: fase %q com %d marcos (esperado %d a %d)",
				model.ErrSchemaViolation, phase.Name, n, MinPhaseMilestones, MaxPhaseMilestones)
		}
		for j, ms := range phase.Milestones {
			if ms == "" {
				return fmt.Errorf("%w: marco %d da fase %q vazio", model.ErrSchemaViolation, j, phase.Name)
			}
		}
	}
	return nil
}

// validateSkill exige nome, descrição e categoria não vazios. A checagem de
// que a categoria pertence à lista fornecida é feita pelo gateway, que conhece
// a requisição original.
func validateSkill(s *model.Skill) error {
	if s == nil {
		return fmt.Errorf("%w: habilidade ausente no resultado", model.ErrSchemaViolation)
	}
	if s.Name == "" {
		return fmt.Errorf("%w: habilidade sem nome", model.ErrSchemaViolation)
	}
	if s.Description == "" {
		return fmt.Errorf("%w: habilidade sem descrição", model.ErrSchemaViolation)
	}
	if s.Category == "" {
		return fmt.Errorf("%w: habilidade sem categoria", model.ErrSchemaViolation)
	}
	return nil
}

func validateSubmission(v *model.SubmissionVerdict) error {
	if v == nil {
		return fmt.Errorf("%w: veredito ausente no resultado", model.ErrSchemaViolation)
	}
	if v.Feedback == "" {
		return fmt.Errorf("%w: veredito sem feedback", model.ErrSchemaViolation)
	}
	if len([]rune(v.Feedback)) > MaxFeedbackRunes {
		return fmt.Errorf("%w: feedback excede %d caracteres", model.ErrSchemaViolation, MaxFeedbackRunes)
	}
	return nil
}

// SkillCategoryAllowed confere se a categoria retornada está na lista
// fornecida na requisição. Lista vazia aceita qualquer categoria.
func SkillCategoryAllowed(category string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, c := range allowed {
		if c == category {
			return true
		}
	}
	return false
}
