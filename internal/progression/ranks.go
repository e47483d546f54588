package progression

import (
	"fmt"

	"github.com/F3lipe-Silva/sistemalife-sub002/internal/model"
)

// rankTable é a tabela estática de ranques, ordenada por nível. Faixas
// contíguas, sem sobreposição, cobrindo [1, ∞) — a última é aberta
// (MaxLevel 0). Validada em init; alterações aqui quebram o processo no boot,
// não em produção.
var rankTable = []model.RankTier{
	{MinLevel: 1, MaxLevel: 5, Code: "E", Title: "Novato", Theme: "cinza"},
	{MinLevel: 6, MaxLevel: 10, Code: "D", Title: "Iniciante", Theme: "bronze"},
	{MinLevel: 11, MaxLevel: 20, Code: "C", Title: "Experiente", Theme: "prata"},
	{MinLevel: 21, MaxLevel: 30, Code: "B", Title: "Elite", Theme: "ouro"},
	{MinLevel: 31, MaxLevel: 50, Code: "A", Title: "Mestre", Theme: "platina"},
	{MinLevel: 51, MaxLevel: 70, Code: "S", Title: "Grão-Mestre", Theme: "rubi"},
	{MinLevel: 71, MaxLevel: 90, Code: "SS", Title: "Herói", Theme: "safira"},
	{MinLevel: 91, MaxLevel: 0, Code: "SSS", Title: "Monarca", Theme: "obsidiana"},
}

func init() {
	if err := validateRankTable(rankTable); err != nil {
		panic(err)
	}
}

// validateRankTable garante contiguidade e cobertura de [1, ∞).
func validateRankTable(table []model.RankTier) error {
	if len(table) == 0 {
		return fmt.Errorf("progression: tabela de ranques vazia")
	}
	if table[0].MinLevel != 1 {
		return fmt.Errorf("progression: primeira faixa começa em %d, esperado 1", table[0].MinLevel)
	}
	for i, tier := range table {
		last := i == len(table)-1
		if last {
			if tier.MaxLevel != 0 {
				return fmt.Errorf("progression: última faixa (%s) deve ser aberta", tier.Code)
			}
			continue
		}
		if tier.MaxLevel < tier.MinLevel {
			return fmt.Errorf("progression: faixa %s invertida (%d > %d)", tier.Code, tier.MinLevel, tier.MaxLevel)
		}
		if next := table[i+1]; next.MinLevel != tier.MaxLevel+1 {
			return fmt.Errorf("progression: lacuna entre %s (até %d) e %s (a partir de %d)",
				tier.Code, tier.MaxLevel, next.Code, next.MinLevel)
		}
	}
	return nil
}

// RankForLevel retorna a faixa de ranque do nível. Total para todo nível ≥ 1;
// níveis abaixo de 1 caem na primeira faixa para manter a função total.
func RankForLevel(level int) model.RankTier {
	for _, tier := range rankTable {
		if tier.Contains(level) {
			return tier
		}
	}
	return rankTable[0]
}

// RankTable retorna uma cópia da tabela, na ordem dos níveis.
func RankTable() []model.RankTier {
	out := make([]model.RankTier, len(rankTable))
	copy(out, rankTable)
	return out
}
