package reward

import (
	"time"

	"github.com/F3lipe-Silva/sistemalife-sub002/internal/model"
)

// shopCatalog é o catálogo estático da loja. Itens sem Effect (cosméticos)
// não participam da resolução de recompensas.
var shopCatalog = []model.ShopItem{
	{
		ID: "xp-boost-small", Name: "Amuleto de Experiência", Price: 150, Category: "boost",
		Effect: &model.ShopEffect{Kind: model.EffectXPBoost, Multiplier: 0.05, Duration: 24 * time.Hour},
	},
	{
		ID: "xp-boost-large", Name: "Relíquia do Monarca", Price: 600, Category: "boost",
		Effect: &model.ShopEffect{Kind: model.EffectXPBoost, Multiplier: 0.15, Duration: 24 * time.Hour},
	},
	{
		ID: "luck-charm", Name: "Talismã da Sorte", Price: 250, Category: "boost",
		Effect: &model.ShopEffect{Kind: model.EffectLuckBoost, Multiplier: 0.10, Duration: 24 * time.Hour},
	},
	{
		ID: "fragment-cache", Name: "Cofre de Fragmentos", Price: 200, Category: "boost",
		Effect: &model.ShopEffect{Kind: model.EffectLuckBoost, FlatAmount: 3, Duration: 12 * time.Hour},
	},
	{
		ID: "resistance-tonic", Name: "Tônico de Resistência", Price: 120, Category: "consumable",
		Effect: &model.ShopEffect{Kind: model.EffectResistanceBoost, Multiplier: 0.10, Duration: 8 * time.Hour},
	},
	{
		ID: "health-potion", Name: "Poção de Vida", Price: 80, Category: "consumable",
		Effect: &model.ShopEffect{Kind: model.EffectHealthPotion, FlatAmount: 50},
	},
	{ID: "title-scroll", Name: "Pergaminho de Título", Price: 500, Category: "cosmetic"},
}

// Catalog retorna uma cópia do catálogo da loja.
func Catalog() []model.ShopItem {
	out := make([]model.ShopItem, len(shopCatalog))
	copy(out, shopCatalog)
	return out
}

// ItemByID busca um item do catálogo.
func ItemByID(id string) (model.ShopItem, bool) {
	for _, item := range shopCatalog {
		if item.ID == id {
			return item, true
		}
	}
	return model.ShopItem{}, false
}

// EffectFromItem instancia o efeito de um item comprado, carimbando início e
// vencimento. Retorna false para itens sem efeito.
func EffectFromItem(item model.ShopItem, now time.Time) (model.ActiveEffect, bool) {
	if item.Effect == nil {
		return model.ActiveEffect{}, false
	}
	active := model.ActiveEffect{Effect: *item.Effect, StartedAt: now}
	if item.Effect.Duration > 0 {
		expires := now.Add(item.Effect.Duration)
		active.ExpiresAt = &expires
	}
	return active, true
}
