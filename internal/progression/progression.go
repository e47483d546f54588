// Package progression contém as funções puras de progressão: tabela de
// ranques e aplicação de recompensas. Nenhum I/O aqui — a camada de
// persistência chama ApplyReward com o perfil carregado e grava o retorno.
package progression

import (
	"fmt"
	"time"

	"github.com/F3lipe-Silva/sistemalife-sub002/internal/model"
)

// XPThreshold é o xp acumulado necessário para sair do nível dado.
// Fórmula compartilhada pelos caminhos AI e fallback por estar em um único
// lugar; os limiares nunca podem divergir entre produtores de conteúdo.
func XPThreshold(level int) int {
	if level < 1 {
		level = 1
	}
	return 100 + (level-1)*25
}

// ApplyReward soma a recompensa ao perfil e processa level-ups, possivelmente
// vários para recompensas grandes. Emite um LevelUpEvent por nível cruzado,
// cada um com o ranque antigo e o novo. Valores negativos são violação de
// contrato do chamador (o resolvedor já saneou a recompensa) e retornam
// ErrInvalidReward.
func ApplyReward(profile model.PlayerProfile, reward model.RewardPayload) (model.PlayerProfile, []model.LevelUpEvent, error) {
	if reward.XP < 0 || reward.Fragments < 0 {
		return profile, nil, fmt.Errorf("%w: xp=%d fragments=%d", model.ErrInvalidReward, reward.XP, reward.Fragments)
	}
	if profile.Level < 1 {
		profile.Level = 1
	}

	profile.CurrentXP += reward.XP
	profile.CurrentFragments += reward.Fragments

	var events []model.LevelUpEvent
	for profile.CurrentXP >= XPThreshold(profile.Level) {
		threshold := XPThreshold(profile.Level)
		previous := RankForLevel(profile.Level)

		profile.CurrentXP -= threshold
		profile.Level++

		events = append(events, model.LevelUpEvent{
			FromLevel:    profile.Level - 1,
			ToLevel:      profile.Level,
			PreviousRank: previous,
			NewRank:      RankForLevel(profile.Level),
		})
	}

	profile.UpdatedAt = time.Now().UTC()
	return profile, events, nil
}
