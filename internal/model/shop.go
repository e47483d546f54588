package model

import "time"

// EffectKind classifica os modificadores compráveis na loja.
type EffectKind string

const (
	EffectXPBoost         EffectKind = "xp-boost"
	EffectLuckBoost       EffectKind = "luck-boost"
	EffectResistanceBoost EffectKind = "resistance-boost"
	EffectHealthPotion    EffectKind = "health-potion"
)

// ShopEffect descreve um modificador de recompensa. Multiplier é a fração
// adicional (0.05 = +5%); FlatAmount é somado antes dos multiplicadores.
type ShopEffect struct {
	Kind       EffectKind    `json:"kind"`
	Multiplier float64       `json:"multiplier,omitempty"`
	FlatAmount int           `json:"flatAmount,omitempty"`
	Duration   time.Duration `json:"duration,omitempty"`
}

// ShopItem é um item do catálogo estático da loja.
type ShopItem struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Price    int         `json:"price"`
	Category string      `json:"category"`
	Effect   *ShopEffect `json:"effect,omitempty"`
}
