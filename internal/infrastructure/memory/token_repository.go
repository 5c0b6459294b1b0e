package memory

import (
	"context"
	"sync"

	"github.com/creamio/backoffice-api/internal/domain/entity"
	"github.com/creamio/backoffice-api/internal/domain/repository"
)

type TokenRepository struct {
	mu     sync.RWMutex
	nextID int64
	tokens map[string]entity.APIToken
}

func NewTokenRepository() *TokenRepository {
	return &TokenRepository{tokens: make(map[string]entity.APIToken)}
}

func (r *TokenRepository) Create(_ context.Context, t *entity.APIToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	t.ID = r.nextID
	r.tokens[t.Hash] = *t
	return nil
}

func (r *TokenRepository) FindByHash(_ context.Context, hash string) (*entity.APIToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tokens[hash]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

// Count reports the number of minted tokens, for test assertions.
func (r *TokenRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tokens)
}

var _ repository.TokenRepository = (*TokenRepository)(nil)
