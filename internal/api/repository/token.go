package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/minglehq/mingle/internal/domain"
)

var _ domain.TokenRepository = (*TokenRepository)(nil)

type TokenRepository struct {
	db *DB
}

func NewTokenRepository(db *DB) *TokenRepository {
	return &TokenRepository{db}
}

func (r *TokenRepository) Insert(ctx context.Context, token *domain.Token) error {
	query := `
		INSERT INTO token (hash, user_id, expiry, scope)
		VALUES (:hash, :user_id, :expiry, :scope)
		`
	_, err := sqlx.NamedExecContext(ctx, r.db.execer(ctx), query, token)
	return err
}

func (r *TokenRepository) DeleteAllForUser(ctx context.Context, userID, scope string) error {
	query := `
		DELETE FROM token
		WHERE user_id = $1 AND scope = $2
		`
	_, err := r.db.execer(ctx).ExecContext(ctx, query, userID, scope)
	return err
}
