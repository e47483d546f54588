package model

import (
	"time"

	"github.com/google/uuid"
)

// PlayerProfile é o estado de progressão de um jogador. Pertence exclusivamente
// ao subsistema de progressão: mutação apenas via ApplyReward, a persistência
// é responsabilidade da camada externa.
type PlayerProfile struct {
	ID               uuid.UUID      `json:"id"`
	Level            int            `json:"level"`
	CurrentXP        int            `json:"currentXp"`
	CurrentFragments int            `json:"currentFragments"`
	ActiveEffects    []ActiveEffect `json:"activeEffects,omitempty"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}

// ActiveEffect é uma instância de efeito de loja aplicada ao perfil.
// ExpiresAt nil significa efeito sem prazo (consumido em outro fluxo).
type ActiveEffect struct {
	Effect    ShopEffect `json:"effect"`
	StartedAt time.Time  `json:"startedAt"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// Expired informa se o efeito já venceu no instante now.
// A remoção do registro fica a cargo do dono do perfil.
func (a ActiveEffect) Expired(now time.Time) bool {
	return a.ExpiresAt != nil && a.ExpiresAt.Before(now)
}

// RankTier é uma faixa imutável de ranque derivada do nível.
// MaxLevel == 0 marca a faixa final, aberta em [MinLevel, ∞).
type RankTier struct {
	MinLevel int    `json:"minLevel"`
	MaxLevel int    `json:"maxLevel,omitempty"`
	Code     string `json:"code"`
	Title    string `json:"title"`
	Theme    string `json:"theme"`
}

// Contains informa se o nível pertence à faixa.
func (t RankTier) Contains(level int) bool {
	if level < t.MinLevel {
		return false
	}
	return t.MaxLevel == 0 || level <= t.MaxLevel
}

// LevelUpEvent é emitido pelo calculador de progressão a cada nível cruzado.
// PreviousRank != NewRank permite ao chamador detectar rank-up separado de level-up.
type LevelUpEvent struct {
	FromLevel    int      `json:"fromLevel"`
	ToLevel      int      `json:"toLevel"`
	PreviousRank RankTier `json:"previousRank"`
	NewRank      RankTier `json:"newRank"`
}

// RankUp informa se o evento cruzou uma fronteira de ranque.
func (e LevelUpEvent) RankUp() bool {
	return e.PreviousRank.Code != e.NewRank.Code
}
