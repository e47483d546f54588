// Package handler expõe os fluxos de conteúdo e a progressão por HTTP.
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/F3lipe-Silva/sistemalife-sub002/internal/flow"
	"github.com/F3lipe-Silva/sistemalife-sub002/internal/model"
	"github.com/F3lipe-Silva/sistemalife-sub002/internal/progression"
	"github.com/F3lipe-Silva/sistemalife-sub002/internal/repository"
	"github.com/F3lipe-Silva/sistemalife-sub002/internal/reward"
	"github.com/F3lipe-Silva/sistemalife-sub002/internal/taskmanager"
	"github.com/F3lipe-Silva/sistemalife-sub002/pkg/ai"
)

// APIError é a resposta padronizada de erro. Details nunca carrega texto cru
// do upstream além da mensagem do erro embrulhado.
type APIError struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ApplyRewardRequest é o corpo de POST /players/:id/rewards.
type ApplyRewardRequest struct {
	XP        int    `json:"xp"`
	Fragments int    `json:"fragments"`
	ItemID    string `json:"itemId,omitempty"`
	Quantity  int    `json:"quantity,omitempty"`
}

// ApplyRewardResponse devolve o perfil atualizado, a recompensa após efeitos e
// os eventos de level-up.
type ApplyRewardResponse struct {
	Profile  model.PlayerProfile  `json:"profile"`
	Resolved model.RewardPayload  `json:"resolved"`
	Events   []model.LevelUpEvent `json:"events"`
}

// RankResponse é a resposta de GET /players/:id/rank.
type RankResponse struct {
	PlayerID string         `json:"playerId"`
	Level    int            `json:"level"`
	Rank     model.RankTier `json:"rank"`
}

// TaskAcceptedResponse é a resposta de submissão de geração assíncrona.
type TaskAcceptedResponse struct {
	TaskID string `json:"taskId"`
}

// ContentHandler atende as rotas do pipeline de conteúdo e progressão.
type ContentHandler struct {
	flows    *flow.Service
	profiles repository.ProfileRepository
	tasks    *taskmanager.Manager
	logger   *zap.Logger
}

// NewContentHandler cria o handler.
func NewContentHandler(flows *flow.Service, profiles repository.ProfileRepository, tasks *taskmanager.Manager, logger *zap.Logger) *ContentHandler {
	return &ContentHandler{
		flows:    flows,
		profiles: profiles,
		tasks:    tasks,
		logger:   logger.Named("ContentHandler"),
	}
}

// RegisterRoutes registra as rotas no router.
func (h *ContentHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/missions/generate", h.generateMission)
	router.POST("/missions/generate/async", h.generateMissionAsync)
	router.POST("/roadmaps/generate", h.generateRoadmap)
	router.POST("/roadmaps/generate/async", h.generateRoadmapAsync)
	router.POST("/skills/generate", h.generateSkill)
	router.POST("/submissions/validate", h.validateSubmission)

	tasks := router.Group("/tasks")
	{
		tasks.GET("/:id", h.getTask)
		tasks.DELETE("/:id", h.cancelTask)
	}

	players := router.Group("/players")
	{
		players.POST("/:id/rewards", h.applyReward)
		players.GET("/:id/rank", h.getRank)
	}

	router.GET("/shop/items", h.listShopItems)
}

func (h *ContentHandler) generateMission(c *gin.Context) {
	var req flow.MissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIError{Message: "Invalid request body", Details: err.Error()})
		return
	}
	result, err := h.flows.GenerateMission(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// generateMissionAsync aceita a requisição e devolve imediatamente o ID da
// tarefa. A geração roda desacoplada da conexão; o cliente consulta
// GET /tasks/:id até o estado terminal.
func (h *ContentHandler) generateMissionAsync(c *gin.Context) {
	var req flow.MissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIError{Message: "Invalid request body", Details: err.Error()})
		return
	}
	taskID, err := h.tasks.Submit(model.KindMission, func(ctx context.Context) (*model.ContentResult, error) {
		return h.flows.GenerateMission(ctx, req)
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, TaskAcceptedResponse{TaskID: taskID.String()})
}

func (h *ContentHandler) generateRoadmapAsync(c *gin.Context) {
	var req flow.RoadmapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIError{Message: "Invalid request body", Details: err.Error()})
		return
	}
	taskID, err := h.tasks.Submit(model.KindRoadmap, func(ctx context.Context) (*model.ContentResult, error) {
		return h.flows.GenerateRoadmap(ctx, req)
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, TaskAcceptedResponse{TaskID: taskID.String()})
}

func (h *ContentHandler) getTask(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, APIError{Message: "Invalid task ID format"})
		return
	}
	task, err := h.tasks.Get(taskID)
	if err != nil {
		c.JSON(http.StatusNotFound, APIError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *ContentHandler) cancelTask(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, APIError{Message: "Invalid task ID format"})
		return
	}
	switch err := h.tasks.Cancel(taskID); {
	case errors.Is(err, taskmanager.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, APIError{Message: err.Error()})
	case errors.Is(err, taskmanager.ErrNotCancellable):
		c.JSON(http.StatusConflict, APIError{Message: err.Error()})
	case err != nil:
		h.respondError(c, err)
	default:
		c.Status(http.StatusNoContent)
	}
}

func (h *ContentHandler) generateRoadmap(c *gin.Context) {
	var req flow.RoadmapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIError{Message: "Invalid request body", Details: err.Error()})
		return
	}
	result, err := h.flows.GenerateRoadmap(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ContentHandler) generateSkill(c *gin.Context) {
	var req flow.SkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIError{Message: "Invalid request body", Details: err.Error()})
		return
	}
	result, err := h.flows.GenerateSkill(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ContentHandler) validateSubmission(c *gin.Context) {
	var req flow.SubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIError{Message: "Invalid request body", Details: err.Error()})
		return
	}
	result, err := h.flows.ValidateSubmission(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// applyReward resolve os efeitos ativos do perfil sobre a recompensa bruta e
// aplica o resultado pelo calculador de progressão. A escrita do perfil é
// serializada pelo repositório.
func (h *ContentHandler) applyReward(c *gin.Context) {
	playerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, APIError{Message: "Invalid player ID format"})
		return
	}

	var req ApplyRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIError{Message: "Invalid request body", Details: err.Error()})
		return
	}
	if req.XP < 0 || req.Fragments < 0 {
		c.JSON(http.StatusBadRequest, APIError{Message: "Reward amounts must be non-negative"})
		return
	}

	ctx := c.Request.Context()
	profile, err := h.profiles.GetByID(ctx, playerID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	base := model.RewardPayload{XP: req.XP, Fragments: req.Fragments, ItemID: req.ItemID, Quantity: req.Quantity}
	resolved := reward.Resolve(base, profile.ActiveEffects, time.Now().UTC())

	updated, events, err := progression.ApplyReward(profile, resolved)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if err := h.profiles.Save(ctx, updated); err != nil {
		h.respondError(c, err)
		return
	}

	if events == nil {
		events = []model.LevelUpEvent{}
	}
	c.JSON(http.StatusOK, ApplyRewardResponse{Profile: updated, Resolved: resolved, Events: events})
}

func (h *ContentHandler) getRank(c *gin.Context) {
	playerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, APIError{Message: "Invalid player ID format"})
		return
	}
	profile, err := h.profiles.GetByID(c.Request.Context(), playerID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, RankResponse{
		PlayerID: playerID.String(),
		Level:    profile.Level,
		Rank:     progression.RankForLevel(profile.Level),
	})
}

func (h *ContentHandler) listShopItems(c *gin.Context) {
	c.JSON(http.StatusOK, reward.Catalog())
}

// respondError mapeia os erros do pipeline para status HTTP: entrada inválida
// 400, quota/transitório 429, upstream indisponível 503, o resto 500. Erros
// vindos do upstream respondem só com a mensagem do sentinela; o texto cru do
// transporte fica no log, nunca na resposta.
func (h *ContentHandler) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := err.Error()

	switch {
	case errors.Is(err, model.ErrInvalidRequest):
		status = http.StatusBadRequest
	case ai.IsRateLimited(err), errors.Is(err, model.ErrUpstreamTransient):
		status = http.StatusTooManyRequests
		message = model.ErrUpstreamTransient.Error()
	case errors.Is(err, model.ErrUpstreamUnavailable):
		status = http.StatusServiceUnavailable
		message = model.ErrUpstreamUnavailable.Error()
	case errors.Is(err, model.ErrProfileNotFound):
		status = http.StatusNotFound
	case errors.Is(err, taskmanager.ErrTooManyTasks):
		status = http.StatusTooManyRequests
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("Unhandled pipeline error", zap.Error(err))
		c.JSON(status, APIError{Message: "internal server error", Details: err.Error()})
		return
	}
	h.logger.Warn("Request failed", zap.Int("status", status), zap.Error(err))
	c.JSON(status, APIError{Message: message})
}
