// Package repository define a porta de persistência de perfis. O núcleo nunca
// faz I/O: a camada de armazenamento carrega o perfil, chama as funções puras
// de progressão e grava o retorno. A serialização de escritas concorrentes
// para o mesmo jogador também é responsabilidade dela.
package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/F3lipe-Silva/sistemalife-sub002/internal/model"
)

// ProfileRepository é a porta de persistência do PlayerProfile.
type ProfileRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (model.PlayerProfile, error)
	Save(ctx context.Context, profile model.PlayerProfile) error
}
