package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/F3lipe-Silva/sistemalife-sub002/internal/model"
)

// MemoryProfileRepository guarda perfis em memória. Serve de implementação da
// porta para desenvolvimento e testes; o mutex serializa escritas para o mesmo
// jogador, como um banco transacional faria.
type MemoryProfileRepository struct {
	mu       sync.RWMutex
	profiles map[uuid.UUID]model.PlayerProfile
}

// NewMemoryProfileRepository cria o repositório em memória.
func NewMemoryProfileRepository() *MemoryProfileRepository {
	return &MemoryProfileRepository{profiles: make(map[uuid.UUID]model.PlayerProfile)}
}

// GetByID retorna o perfil ou cria um novo no nível 1, já que perfis nascem na
// criação da conta e nunca são destruídos.
func (r *MemoryProfileRepository) GetByID(_ context.Context, id uuid.UUID) (model.PlayerProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if profile, ok := r.profiles[id]; ok {
		return profile, nil
	}
	profile := model.PlayerProfile{ID: id, Level: 1, UpdatedAt: time.Now().UTC()}
	r.profiles[id] = profile
	return profile, nil
}

// Save grava o perfil.
func (r *MemoryProfileRepository) Save(_ context.Context, profile model.PlayerProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.ID] = profile
	return nil
}

var _ ProfileRepository = (*MemoryProfileRepository)(nil)
