package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/creamio/backoffice-api/internal/domain/entity"
	"github.com/creamio/backoffice-api/internal/domain/repository"
)

type TokenRepository struct {
	pool *pgxpool.Pool
}

func NewTokenRepository(pool *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{pool: pool}
}

func (r *TokenRepository) Create(ctx context.Context, t *entity.APIToken) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO api_tokens (hash, created_at, related_user)
		VALUES ($1, $2, $3)
		RETURNING id
	`, t.Hash, t.CreatedAt, t.UserID)
	return row.Scan(&t.ID)
}

func (r *TokenRepository) FindByHash(ctx context.Context, hash string) (*entity.APIToken, error) {
	t := &entity.APIToken{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, hash, created_at, related_user
		FROM api_tokens
		WHERE hash = $1
	`, hash)
	if err := row.Scan(&t.ID, &t.Hash, &t.CreatedAt, &t.UserID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

var _ repository.TokenRepository = (*TokenRepository)(nil)
