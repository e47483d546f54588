// Package flow implementa um fluxo por tipo de conteúdo: valida a entrada de
// domínio, monta o prompt e delega ao gateway. Nenhuma transformação de
// negócio acontece aqui e nenhum fluxo toca o PlayerProfile.
package flow

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/F3lipe-Silva/sistemalife-sub002/internal/gateway"
	"github.com/F3lipe-Silva/sistemalife-sub002/internal/model"
)

// MissionRequest é a entrada de domínio do fluxo de missão diária.
type MissionRequest struct {
	GoalName        string   `json:"goalName" validate:"required"`
	GoalDescription string   `json:"goalDescription"`
	UserLevel       int      `json:"userLevel" validate:"required,gte=1"`
	History         []string `json:"history"`
}

// RoadmapRequest é a entrada de domínio do fluxo de roadmap estratégico.
type RoadmapRequest struct {
	GoalName        string `json:"goalName" validate:"required"`
	GoalDescription string `json:"goalDescription"`
	UserLevel       int    `json:"userLevel" validate:"required,gte=1"`
}

// SkillRequest é a entrada de domínio do fluxo de habilidade derivada.
type SkillRequest struct {
	GoalName        string   `json:"goalName" validate:"required"`
	GoalDescription string   `json:"goalDescription"`
	Categories      []string `json:"categories"`
}

// SubmissionRequest é a entrada de domínio da validação de submissão.
type SubmissionRequest struct {
	ChallengeName   string `json:"challengeName" validate:"required"`
	SuccessCriteria string `json:"successCriteria" validate:"required"`
	SubmissionText  string `json:"submissionText" validate:"required"`
}

// Service reúne os quatro fluxos de conteúdo sobre um único gateway.
type Service struct {
	gateway  *gateway.Gateway
	logger   *zap.Logger
	validate *validator.Validate
}

// NewService cria o serviço de fluxos.
func NewService(gw *gateway.Gateway, logger *zap.Logger) *Service {
	return &Service{
		gateway:  gw,
		logger:   logger.Named("ContentFlows"),
		validate: validator.New(),
	}
}

// GenerateMission produz uma missão diária para a meta.
func (s *Service) GenerateMission(ctx context.Context, req MissionRequest) (*model.ContentResult, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidRequest, err)
	}
	contentReq := model.ContentRequest{
		Kind:            model.KindMission,
		GoalName:        req.GoalName,
		GoalDescription: req.GoalDescription,
		UserLevel:       req.UserLevel,
		History:         req.History,
	}
	return s.gateway.Generate(ctx, contentReq, missionSystemPrompt, renderMissionPrompt(contentReq), true)
}

// GenerateRoadmap produz o plano estratégico da meta.
func (s *Service) GenerateRoadmap(ctx context.Context, req RoadmapRequest) (*model.ContentResult, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidRequest, err)
	}
	contentReq := model.ContentRequest{
		Kind:            model.KindRoadmap,
		GoalName:        req.GoalName,
		GoalDescription: req.GoalDescription,
		UserLevel:       req.UserLevel,
	}
	return s.gateway.Generate(ctx, contentReq, roadmapSystemPrompt, renderRoadmapPrompt(contentReq), true)
}

// GenerateSkill deriva uma habilidade da meta.
func (s *Service) GenerateSkill(ctx context.Context, req SkillRequest) (*model.ContentResult, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidRequest, err)
	}
	contentReq := model.ContentRequest{
		Kind:            model.KindSkill,
		GoalName:        req.GoalName,
		GoalDescription: req.GoalDescription,
		Categories:      req.Categories,
	}
	return s.gateway.Generate(ctx, contentReq, skillSystemPrompt, renderSkillPrompt(contentReq), true)
}

// ValidateSubmission julga uma submissão de desafio. Sem fallback: se o
// gateway não consegue obter um veredito, o fluxo falha com
// ErrUpstreamUnavailable — aprovar ou rejeitar automaticamente corromperia a
// integridade da economia do jogo.
func (s *Service) ValidateSubmission(ctx context.Context, req SubmissionRequest) (*model.ContentResult, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidRequest, err)
	}
	contentReq := model.ContentRequest{
		Kind:            model.KindSubmissionValidation,
		GoalName:        req.ChallengeName,
		SuccessCriteria: req.SuccessCriteria,
		SubmissionText:  req.SubmissionText,
	}
	result, err := s.gateway.Generate(ctx, contentReq, submissionSystemPrompt, renderSubmissionPrompt(contentReq), true)
	if err != nil {
		s.logger.Warn("Validação de submissão indisponível",
			zap.String("challenge", req.ChallengeName),
			zap.Error(err))
		return nil, err
	}
	return result, nil
}
