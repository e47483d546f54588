package schemas_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/F3lipe-Silva/sistemalife-sub002/internal/model"
	"github.com/F3lipe-Silva/sistemalife-sub002/internal/schemas"
)

func validMission() *model.ContentResult {
	return &model.ContentResult{
		Kind:   model.KindMission,
		Source: model.SourceAI,
		Mission: &model.Mission{
			Name:        "Treino matinal",
			Description: "30 minutos de corrida leve",
			XP:          25,
			Fragments:   5,
			Subtasks:    []model.Subtask{{Name: "Correr", Target: 30, Unit: "minutos"}},
		},
	}
}

func TestValidateResult_Mission(t *testing.T) {
	t.Run("Valid mission passes", func(t *testing.T) {
		assert.NoError(t, schemas.ValidateResult(validMission()))
	})

	t.Run("Rejections", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func(*model.ContentResult)
		}{
			{"missing payload", func(r *model.ContentResult) { r.Mission = nil }},
			{"empty name", func(r *model.ContentResult) { r.Mission.Name = "" }},
			{"empty description", func(r *model.ContentResult) { r.Mission.Description = "" }},
			{"negative xp", func(r *model.ContentResult) { r.Mission.XP = -1 }},
			{"negative fragments", func(r *model.ContentResult) { r.Mission.Fragments = -5 }},
			{"no subtasks", func(r *model.ContentResult) { r.Mission.Subtasks = nil }},
			{"subtask target zero", func(r *model.ContentResult) { r.Mission.Subtasks[0].Target = 0 }},
			{"subtask without unit", func(r *model.ContentResult) { r.Mission.Subtasks[0].Unit = "" }},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				result := validMission()
				tc.mutate(result)
				err := schemas.ValidateResult(result)
				assert.ErrorIs(t, err, model.ErrSchemaViolation)
			})
		}
	})
}

func TestValidateResult_Roadmap(t *testing.T) {
	phase := func(name string, count int) model.RoadmapPhase {
		milestones := make([]string, count)
		for i := range milestones {
			milestones[i] = "Marco " + name
		}
		return model.RoadmapPhase{Name: name, Milestones: milestones}
	}

	t.Run("2 to 4 phases accepted", func(t *testing.T) {
		for n := 2; n <= 4; n++ {
			phases := make([]model.RoadmapPhase, n)
			for i := range phases {
				phases[i] = phase("Fase", 3)
			}
			result := &model.ContentResult{Kind: model.KindRoadmap, Roadmap: &model.Roadmap{Phases: phases}}
			assert.NoError(t, schemas.ValidateResult(result), "%d fases", n)
		}
	})

	t.Run("Phase count out of range rejected", func(t *testing.T) {
		for _, n := range []int{0, 1, 5} {
			phases := make([]model.RoadmapPhase, n)
			for i := range phases {
				phases[i] = phase("Fase", 3)
			}
			result := &model.ContentResult{Kind: model.KindRoadmap, Roadmap: &model.Roadmap{Phases: phases}}
			assert.ErrorIs(t, schemas.ValidateResult(result), model.ErrSchemaViolation, "%d fases", n)
		}
	})

	t.Run("Milestone count out of range rejected", func(t *testing.T) {
		for _, n := range []int{2, 6} {
			result := &model.ContentResult{
				Kind:    model.KindRoadmap,
				Roadmap: &model.Roadmap{Phases: []model.RoadmapPhase{phase("A", n), phase("B", 3)}},
			}
			assert.ErrorIs(t, schemas.ValidateResult(result), model.ErrSchemaViolation, "%d marcos", n)
		}
	})
}

func TestValidateResult_Skill(t *testing.T) {
	valid := &model.ContentResult{
		Kind:  model.KindSkill,
		Skill: &model.Skill{Name: "Foco", Description: "Concentração sustentada", Category: "Mente"},
	}
	assert.NoError(t, schemas.ValidateResult(valid))

	missing := &model.ContentResult{Kind: model.KindSkill, Skill: &model.Skill{Name: "Foco", Description: "x"}}
	assert.ErrorIs(t, schemas.ValidateResult(missing), model.ErrSchemaViolation)
}

func TestValidateResult_Submission(t *testing.T) {
	valid := &model.ContentResult{
		Kind:       model.KindSubmissionValidation,
		Submission: &model.SubmissionVerdict{Approved: true, Feedback: "Critérios atendidos."},
	}
	assert.NoError(t, schemas.ValidateResult(valid))

	t.Run("Empty feedback rejected", func(t *testing.T) {
		result := &model.ContentResult{
			Kind:       model.KindSubmissionValidation,
			Submission: &model.SubmissionVerdict{Approved: false},
		}
		assert.ErrorIs(t, schemas.ValidateResult(result), model.ErrSchemaViolation)
	})

	t.Run("Feedback too long rejected", func(t *testing.T) {
		result := &model.ContentResult{
			Kind:       model.KindSubmissionValidation,
			Submission: &model.SubmissionVerdict{Approved: true, Feedback: strings.Repeat("a", schemas.MaxFeedbackRunes+1)},
		}
		assert.ErrorIs(t, schemas.ValidateResult(result), model.ErrSchemaViolation)
	})
}

func TestValidateResult_KindMismatch(t *testing.T) {
	assert.ErrorIs(t, schemas.ValidateResult(nil), model.ErrSchemaViolation)

	wrongKind := &model.ContentResult{Kind: "conto"}
	assert.ErrorIs(t, schemas.ValidateResult(wrongKind), model.ErrSchemaViolation)

	// Kind missão com payload ausente.
	empty := &model.ContentResult{Kind: model.KindMission}
	assert.ErrorIs(t, schemas.ValidateResult(empty), model.ErrSchemaViolation)
}

func TestSkillCategoryAllowed(t *testing.T) {
	assert.True(t, schemas.SkillCategoryAllowed("Saúde", []string{"Saúde", "Mente"}))
	assert.False(t, schemas.SkillCategoryAllowed("Lazer", []string{"Saúde", "Mente"}))
	assert.True(t, schemas.SkillCategoryAllowed("Qualquer", nil))
}
