// Package reward aplica os efeitos comprados na loja sobre recompensas cruas
// antes de chegarem ao calculador de progressão.
package reward

import (
	"math"
	"time"

	"github.com/F3lipe-Silva/sistemalife-sub002/internal/model"
)

// Resolve aplica os efeitos ativos sobre a recompensa base em ordem fixa:
// bônus fixos primeiro, multiplicadores depois, com arredondamento final para
// baixo. Multiplicadores do mesmo tipo empilham aditivamente (+5% e +5% dão
// +10%, não +10,25%) para manter a economia previsível. Efeitos vencidos são
// ignorados mas não removidos — a limpeza pertence ao dono do perfil.
func Resolve(base model.RewardPayload, effects []model.ActiveEffect, now time.Time) model.RewardPayload {
	xp := float64(base.XP)
	fragments := float64(base.Fragments)

	xpMultiplier := 1.0
	luckMultiplier := 1.0

	for _, active := range effects {
		if active.Expired(now) {
			continue
		}
		effect := active.Effect
		switch effect.Kind {
		case model.EffectXPBoost:
			xp += float64(effect.FlatAmount)
			xpMultiplier += effect.Multiplier
		case model.EffectLuckBoost:
			fragments += float64(effect.FlatAmount)
			luckMultiplier += effect.Multiplier
		default:
			// Efeitos que não tocam recompensa (poções, resistência)
			// passam direto por aqui.
		}
	}

	resolved := base
	resolved.XP = int(math.Floor(xp * xpMultiplier))
	resolved.Fragments = int(math.Floor(fragments * luckMultiplier))
	if resolved.XP < 0 {
		resolved.XP = 0
	}
	if resolved.Fragments < 0 {
		resolved.Fragments = 0
	}
	return resolved
}
