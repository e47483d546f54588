// Package fallback sintetiza conteúdo determinístico quando o caminho AI
// falha. Sem acesso à rede, sem efeitos colaterais: só os dados já presentes
// na requisição. A saída sempre satisfaz o contrato de schema do tipo;
// ausência de dado rebaixa para o valor genérico válido, nunca para campo vazio.
package fallback

import (
	"fmt"

	"github.com/F3lipe-Silva/sistemalife-sub002/internal/model"
	"github.com/F3lipe-Silva/sistemalife-sub002/internal/schemas"
)

// Recompensa fixa da missão de contingência.
const (
	MissionName      = "Missão Gerada pelo Sistema"
	MissionXP        = 20
	MissionFragments = 5
)

// Generate produz o conteúdo de contingência para o tipo pedido.
// KindSubmissionValidation não tem fallback: inventar um veredito corromperia
// a economia do jogo, então o gateway propaga o erro nesse caso.
func Generate(req model.ContentRequest) (*model.ContentResult, error) {
	switch req.Kind {
	case model.KindMission:
		return Mission(req), nil
	case model.KindRoadmap:
		return Roadmap(req), nil
	case model.KindSkill:
		return Skill(req), nil
	case model.KindSubmissionValidation:
		return nil, fmt.Errorf("%w: validação de submissão não possui fallback", model.ErrUpstreamUnavailable)
	default:
		return nil, fmt.Errorf("%w: tipo de conteúdo desconhecido %q", model.ErrInvalidRequest, req.Kind)
	}
}

// Mission retorna a missão de contingência com recompensa modesta fixa.
func Mission(req model.ContentRequest) *model.ContentResult {
	goal := goalOrDefault(req.GoalName)
	return &model.ContentResult{
		Kind:   model.KindMission,
		Source: model.SourceFallback,
		Mission: &model.Mission{
			Name:        MissionName,
			Description: fmt.Sprintf("Dedique um momento de hoje à meta %q.", goal),
			XP:          MissionXP,
			Fragments:   MissionFragments,
			Subtasks: []model.Subtask{
				{Name: fmt.Sprintf("Avançar em %s", goal), Target: 1, Unit: "vez"},
			},
		},
	}
}

// Roadmap retorna o plano de contingência de duas fases.
func Roadmap(req model.ContentRequest) *model.ContentResult {
	goal := goalOrDefault(req.GoalName)
	return &model.ContentResult{
		Kind:   model.KindRoadmap,
		Source: model.SourceFallback,
		Roadmap: &model.Roadmap{
			Phases: []model.RoadmapPhase{
				{
					Name: "Fase 1: Fundamentos",
					Milestones: []string{
						fmt.Sprintf("Definir o escopo de %s", goal),
						"Separar materiais e referências",
						"Estabelecer uma rotina semanal",
					},
				},
				{
					Name: "Fase 2: Consolidação",
					Milestones: []string{
						"Praticar com constância",
						"Revisar o progresso a cada semana",
						"Concluir um entregável da meta",
					},
				},
			},
		},
	}
}

// Skill deriva uma habilidade do nome da meta. A categoria vem da primeira
// categoria existente do usuário, ou do padrão quando não há nenhuma.
func Skill(req model.ContentRequest) *model.ContentResult {
	goal := goalOrDefault(req.GoalName)
	category := schemas.DefaultSkillCategory
	if len(req.Categories) > 0 && req.Categories[0] != "" {
		category = req.Categories[0]
	}
	return &model.ContentResult{
		Kind:   model.KindSkill,
		Source: model.SourceFallback,
		Skill: &model.Skill{
			Name:        fmt.Sprintf("Domínio de %s", goal),
			Description: fmt.Sprintf("Habilidade desenvolvida ao perseguir a meta %q.", goal),
			Category:    category,
		},
	}
}

func goalOrDefault(goal string) string {
	if goal == "" {
		return "sua meta"
	}
	return goal
}
