package model

// RewardPayload é a unidade de recompensa que sai de um fluxo de conteúdo,
// passa pelo resolvedor de efeitos e chega ao calculador de progressão.
type RewardPayload struct {
	XP        int    `json:"xp"`
	Fragments int    `json:"fragments"`
	ItemID    string `json:"itemId,omitempty"`
	Quantity  int    `json:"quantity,omitempty"`
}
