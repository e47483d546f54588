package flow

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/F3lipe-Silva/sistemalife-sub002/internal/gateway"
	"github.com/F3lipe-Silva/sistemalife-sub002/internal/mocks"
	"github.com/F3lipe-Silva/sistemalife-sub002/internal/model"
	"github.com/F3lipe-Silva/sistemalife-sub002/pkg/ai"
)

func newService(t *testing.T, mockAI ai.Client) *Service {
	t.Helper()
	gw := gateway.New(mockAI, zap.NewNop(), time.Millisecond)
	return NewService(gw, zap.NewNop())
}

func TestGenerateMission_RejectsInvalidInput(t *testing.T) {
	mockAI := mocks.NewMockAIClient(t)
	svc := newService(t, mockAI)

	cases := []struct {
		name string
		req  MissionRequest
	}{
		{"meta vazia", MissionRequest{UserLevel: 3}},
		{"nível zero", MissionRequest{GoalName: "Aprender Go"}},
		{"nível negativo", MissionRequest{GoalName: "Aprender Go", UserLevel: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.GenerateMission(context.Background(), tc.req)
			assert.ErrorIs(t, err, model.ErrInvalidRequest)
		})
	}
	mockAI.AssertNotCalled(t, "GenerateText")
}

func TestGenerateMission_BuildsPromptWithHistory(t *testing.T) {
	missionJSON := `{"name": "Treino", "description": "Correr", "xp": 25, "fragments": 4,
		"subtasks": [{"name": "Correr", "target": 5, "unit": "km"}]}`

	var capturedPrompt string
	mockAI := mocks.NewMockAIClient(t)
	mockAI.On("GenerateText", mock.Anything, missionSystemPrompt, mock.Anything, true).
		Return(missionJSON, ai.UsageInfo{}, nil).Once().
		Run(func(args mock.Arguments) { capturedPrompt = args.String(2) })

	svc := newService(t, mockAI)
	result, err := svc.GenerateMission(context.Background(), MissionRequest{
		GoalName:  "Maratona",
		UserLevel: 8,
		History:   []string{"Correr 1km", "Correr 2km"},
	})

	require.NoError(t, err)
	assert.Equal(t, model.SourceAI, result.Source)
	assert.Contains(t, capturedPrompt, "Meta: Maratona")
	assert.Contains(t, capturedPrompt, "Nível do jogador: 8")
	assert.Contains(t, capturedPrompt, "Correr 2km")
}

func TestGenerateRoadmap_RejectsInvalidInput(t *testing.T) {
	svc := newService(t, mocks.NewMockAIClient(t))

	_, err := svc.GenerateRoadmap(context.Background(), RoadmapRequest{GoalName: "Meta"})
	assert.ErrorIs(t, err, model.ErrInvalidRequest)
}

func TestGenerateSkill_PassesCategoriesThrough(t *testing.T) {
	skillJSON := `{"name": "Foco", "description": "Concentração", "category": "Estudos"}`

	var capturedPrompt string
	mockAI := mocks.NewMockAIClient(t)
	mockAI.On("GenerateText", mock.Anything, skillSystemPrompt, mock.Anything, true).
		Return(skillJSON, ai.UsageInfo{}, nil).Once().
		Run(func(args mock.Arguments) { capturedPrompt = args.String(2) })

	svc := newService(t, mockAI)
	result, err := svc.GenerateSkill(context.Background(), SkillRequest{
		GoalName:   "Passar no concurso",
		Categories: []string{"Estudos", "Carreira"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Estudos", result.Skill.Category)
	assert.Contains(t, capturedPrompt, "Categorias existentes: Estudos, Carreira")
}

func TestValidateSubmission_RejectsIncompleteInput(t *testing.T) {
	svc := newService(t, mocks.NewMockAIClient(t))

	_, err := svc.ValidateSubmission(context.Background(), SubmissionRequest{
		ChallengeName: "Desafio",
	})
	assert.ErrorIs(t, err, model.ErrInvalidRequest)
}

func TestValidateSubmission_PropagatesUpstreamFailure(t *testing.T) {
	mockAI := mocks.NewMockAIClient(t)
	mockAI.On("GenerateText", mock.Anything, submissionSystemPrompt, mock.Anything, true).
		Return("", ai.UsageInfo{}, fmt.Errorf("%w: conexão recusada", ai.ErrGenerationFailed)).Twice()

	svc := newService(t, mockAI)
	_, err := svc.ValidateSubmission(context.Background(), SubmissionRequest{
		ChallengeName:   "Desafio 30 dias",
		SuccessCriteria: "Treinar todos os dias",
		SubmissionText:  "Treinei",
	})

	assert.ErrorIs(t, err, model.ErrUpstreamUnavailable)
}

func TestWriteHistory_TrimsToRecentEntries(t *testing.T) {
	history := make([]string, 0, 8)
	for i := 1; i <= 8; i++ {
		history = append(history, fmt.Sprintf("missão %d", i))
	}

	var b strings.Builder
	writeHistory(&b, history)
	out := b.String()

	assert.NotContains(t, out, "missão 3")
	assert.Contains(t, out, "missão 4")
	assert.Contains(t, out, "missão 8")
}

func TestWriteHistory_EmptyProducesNothing(t *testing.T) {
	var b strings.Builder
	writeHistory(&b, nil)
	assert.Empty(t, b.String())
}
