package gateway_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	openaigo "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/F3lipe-Silva/sistemalife-sub002/internal/gateway"
	"github.com/F3lipe-Silva/sistemalife-sub002/internal/mocks"
	"github.com/F3lipe-Silva/sistemalife-sub002/internal/model"
	"github.com/F3lipe-Silva/sistemalife-sub002/pkg/ai"
)

const (
	testSystemPrompt = "system"
	testUserPrompt   = "user"
)

var validMissionJSON = `{
	"name": "Sessão de estudo",
	"description": "Estude o capítulo de interfaces",
	"xp": 30,
	"fragments": 6,
	"subtasks": [{"name": "Ler", "target": 2, "unit": "capítulos"}]
}`

func missionRequest() model.ContentRequest {
	return model.ContentRequest{Kind: model.KindMission, GoalName: "Aprender Go", UserLevel: 12}
}

func newGateway(t *testing.T, client ai.Client) *gateway.Gateway {
	t.Helper()
	return gateway.New(client, zap.NewNop(), time.Millisecond)
}

func transientErr() error {
	return fmt.Errorf("%w: timeout", ai.ErrGenerationFailed)
}

func TestGenerate_AISuccess(t *testing.T) {
	mockAI := mocks.NewMockAIClient(t)
	mockAI.On("GenerateText", mock.Anything, testSystemPrompt, testUserPrompt, true).
		Return(validMissionJSON, ai.UsageInfo{}, nil).Once()

	result, err := newGateway(t, mockAI).Generate(context.Background(), missionRequest(), testSystemPrompt, testUserPrompt, true)

	require.NoError(t, err)
	assert.Equal(t, model.SourceAI, result.Source)
	require.NotNil(t, result.Mission)
	assert.Equal(t, "Sessão de estudo", result.Mission.Name)
	mockAI.AssertExpectations(t)
}

func TestGenerate_AISuccessWithCodeFence(t *testing.T) {
	fenced := "```json\n" + validMissionJSON + "\n```"
	mockAI := mocks.NewMockAIClient(t)
	mockAI.On("GenerateText", mock.Anything, testSystemPrompt, testUserPrompt, true).
		Return(fenced, ai.UsageInfo{}, nil).Once()

	result, err := newGateway(t, mockAI).Generate(context.Background(), missionRequest(), testSystemPrompt, testUserPrompt, true)

	require.NoError(t, err)
	assert.Equal(t, model.SourceAI, result.Source)
}

func TestGenerate_TransientFailureRetriesOnceThenFallback(t *testing.T) {
	// Cenário B: timeout do gerador em missão com goalName="Aprender Go".
	mockAI := mocks.NewMockAIClient(t)
	mockAI.On("GenerateText", mock.Anything, testSystemPrompt, testUserPrompt, true).
		Return("", ai.UsageInfo{}, transientErr()).Twice()

	result, err := newGateway(t, mockAI).Generate(context.Background(), missionRequest(), testSystemPrompt, testUserPrompt, true)

	require.NoError(t, err, "falha do AI deve ser absorvida pelo fallback")
	assert.Equal(t, model.SourceFallback, result.Source)
	require.NotNil(t, result.Mission)
	assert.Equal(t, "Missão Gerada pelo Sistema", result.Mission.Name)
	assert.Equal(t, 20, result.Mission.XP)
	assert.Equal(t, 5, result.Mission.Fragments)
	require.Len(t, result.Mission.Subtasks, 1)
	assert.Equal(t, 1, result.Mission.Subtasks[0].Target)
	assert.Equal(t, "vez", result.Mission.Subtasks[0].Unit)

	// Exatamente uma tentativa + um retry, nunca mais que isso.
	mockAI.AssertNumberOfCalls(t, "GenerateText", 2)
}

func TestGenerate_RetrySucceeds(t *testing.T) {
	mockAI := mocks.NewMockAIClient(t)
	mockAI.On("GenerateText", mock.Anything, testSystemPrompt, testUserPrompt, true).
		Return("", ai.UsageInfo{}, transientErr()).Once()
	mockAI.On("GenerateText", mock.Anything, testSystemPrompt, testUserPrompt, true).
		Return(validMissionJSON, ai.UsageInfo{}, nil).Once()

	result, err := newGateway(t, mockAI).Generate(context.Background(), missionRequest(), testSystemPrompt, testUserPrompt, true)

	require.NoError(t, err)
	assert.Equal(t, model.SourceAI, result.Source)
	mockAI.AssertExpectations(t)
}

func TestGenerate_NonTransientFailureSkipsRetry(t *testing.T) {
	mockAI := mocks.NewMockAIClient(t)
	mockAI.On("GenerateText", mock.Anything, testSystemPrompt, testUserPrompt, true).
		Return("", ai.UsageInfo{}, errors.New("invalid credentials")).Once()

	result, err := newGateway(t, mockAI).Generate(context.Background(), missionRequest(), testSystemPrompt, testUserPrompt, true)

	require.NoError(t, err)
	assert.Equal(t, model.SourceFallback, result.Source)
	mockAI.AssertNumberOfCalls(t, "GenerateText", 1)
}

func TestGenerate_SchemaViolationTriggersFallback(t *testing.T) {
	mockAI := mocks.NewMockAIClient(t)
	mockAI.On("GenerateText", mock.Anything, testSystemPrompt, testUserPrompt, true).
		Return(`{"name": "sem subtarefas", "description": "x", "xp": 10, "fragments": 1, "subtasks": []}`,
			ai.UsageInfo{}, nil).Twice()

	result, err := newGateway(t, mockAI).Generate(context.Background(), missionRequest(), testSystemPrompt, testUserPrompt, true)

	require.NoError(t, err)
	assert.Equal(t, model.SourceFallback, result.Source)
	mockAI.AssertNumberOfCalls(t, "GenerateText", 2)
}

func TestGenerate_NonJSONResponseTriggersFallback(t *testing.T) {
	mockAI := mocks.NewMockAIClient(t)
	mockAI.On("GenerateText", mock.Anything, testSystemPrompt, testUserPrompt, true).
		Return("Claro! Aqui está sua missão: corra 5km.", ai.UsageInfo{}, nil).Twice()

	result, err := newGateway(t, mockAI).Generate(context.Background(), missionRequest(), testSystemPrompt, testUserPrompt, true)

	require.NoError(t, err)
	assert.Equal(t, model.SourceFallback, result.Source)
}

func TestGenerate_SubmissionHasNoFallback(t *testing.T) {
	// Cenário C: gerador inacessível na validação de submissão.
	req := model.ContentRequest{
		Kind:            model.KindSubmissionValidation,
		GoalName:        "Desafio 30 dias",
		SuccessCriteria: "Treinar todos os dias",
		SubmissionText:  "Treinei 30 dias seguidos",
	}

	mockAI := mocks.NewMockAIClient(t)
	mockAI.On("GenerateText", mock.Anything, testSystemPrompt, testUserPrompt, true).
		Return("", ai.UsageInfo{}, transientErr()).Twice()

	result, err := newGateway(t, mockAI).Generate(context.Background(), req, testSystemPrompt, testUserPrompt, true)

	require.Error(t, err)
	assert.Nil(t, result, "nenhum veredito pode ser sintetizado")
	assert.ErrorIs(t, err, model.ErrUpstreamUnavailable)
}

func TestGenerate_SubmissionRateLimitedSurfacesTransient(t *testing.T) {
	req := model.ContentRequest{
		Kind:            model.KindSubmissionValidation,
		GoalName:        "Desafio",
		SuccessCriteria: "Concluir",
		SubmissionText:  "Concluído",
	}

	rateLimited := fmt.Errorf("%w: %w", ai.ErrGenerationFailed, &openaigo.APIError{HTTPStatusCode: 429})
	mockAI := mocks.NewMockAIClient(t)
	mockAI.On("GenerateText", mock.Anything, testSystemPrompt, testUserPrompt, true).
		Return("", ai.UsageInfo{}, rateLimited).Twice()

	_, err := newGateway(t, mockAI).Generate(context.Background(), req, testSystemPrompt, testUserPrompt, true)

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrUpstreamTransient)
	assert.NotErrorIs(t, err, model.ErrUpstreamUnavailable)
	assert.True(t, ai.IsRateLimited(err), "o APIError deve sobreviver na cadeia")
}

func TestGenerate_SubmissionVerdictFromAI(t *testing.T) {
	req := model.ContentRequest{
		Kind:            model.KindSubmissionValidation,
		GoalName:        "Desafio",
		SuccessCriteria: "Concluir",
		SubmissionText:  "Concluído",
	}

	mockAI := mocks.NewMockAIClient(t)
	mockAI.On("GenerateText", mock.Anything, testSystemPrompt, testUserPrompt, true).
		Return(`{"approved": true, "feedback": "Critérios atendidos."}`, ai.UsageInfo{}, nil).Once()

	result, err := newGateway(t, mockAI).Generate(context.Background(), req, testSystemPrompt, testUserPrompt, true)

	require.NoError(t, err)
	require.NotNil(t, result.Submission)
	assert.True(t, result.Submission.Approved)
}

func TestGenerate_SkillCategoryOutsideListIsViolation(t *testing.T) {
	req := model.ContentRequest{Kind: model.KindSkill, GoalName: "Meditar", Categories: []string{"Saúde"}}

	mockAI := mocks.NewMockAIClient(t)
	mockAI.On("GenerateText", mock.Anything, testSystemPrompt, testUserPrompt, true).
		Return(`{"name": "Zen", "description": "Calma", "category": "Espiritualidade"}`, ai.UsageInfo{}, nil).Twice()

	result, err := newGateway(t, mockAI).Generate(context.Background(), req, testSystemPrompt, testUserPrompt, true)

	require.NoError(t, err)
	assert.Equal(t, model.SourceFallback, result.Source)
	assert.Equal(t, "Saúde", result.Skill.Category)
}

func TestGenerate_ExpiredDeadlineSkipsRetry(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	mockAI := mocks.NewMockAIClient(t)
	mockAI.On("GenerateText", mock.Anything, testSystemPrompt, testUserPrompt, true).
		Return("", ai.UsageInfo{}, transientErr()).Once().
		Run(func(mock.Arguments) { cancel() })

	gw := gateway.New(mockAI, zap.NewNop(), time.Hour)
	result, err := gw.Generate(ctx, missionRequest(), testSystemPrompt, testUserPrompt, true)

	require.NoError(t, err)
	assert.Equal(t, model.SourceFallback, result.Source)
	mockAI.AssertNumberOfCalls(t, "GenerateText", 1)
}
