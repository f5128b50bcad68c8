package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/minglehq/mingle/internal/domain"
)

var _ domain.UserRepository = (*UserRepository)(nil)

type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) RegisterUser(ctx context.Context, u *domain.User) (string, error) {
	query := `
		INSERT INTO users (name, email, avatar_url, password)
		VALUES ($1, $2, $3, $4)
		RETURNING id
		`
	var userID string
	err := r.db.execer(ctx).
		QueryRowxContext(ctx, query, u.Name, u.Email, u.AvatarURL, u.Password).
		Scan(&userID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "users_email_key" {
			return "", domain.ErrDuplicateEmail
		}
		return "", err
	}
	return userID, nil
}

func (r *UserRepository) ExistsUser(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT TRUE FROM users WHERE email = $1)`
	var exists bool
	if err := r.db.execer(ctx).QueryRowxContext(ctx, query, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getByUniqueField(ctx, "id", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getByUniqueField(ctx, "email", email)
}

func (r *UserRepository) getByUniqueField(ctx context.Context, fieldName, fieldValue string) (*domain.User, error) {
	query := `
		SELECT *
		FROM users
		WHERE ` + fieldName + ` = $1
		`
	var user domain.User
	if err := r.db.execer(ctx).QueryRowxContext(ctx, query, fieldValue).StructScan(&user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}

// SearchUser does a trigram similarity match over the given column, only
// activated accounts surface in the directory.
func (r *UserRepository) SearchUser(ctx context.Context, paramName, paramValue string) ([]*domain.User, error) {
	query := `
		SELECT *
		FROM users
		WHERE STRICT_WORD_SIMILARITY($1, ` + paramName + `) > 0.5 AND activated = TRUE
		ORDER BY STRICT_WORD_SIMILARITY($1, ` + paramName + `) DESC
		LIMIT 30
		`
	rows, err := r.db.execer(ctx).QueryxContext(ctx, query, paramValue)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	users := make([]*domain.User, 0)
	for rows.Next() {
		var u domain.User
		if err := rows.StructScan(&u); err != nil {
			return nil, err
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}

func (r *UserRepository) UpdateUser(ctx context.Context, u *domain.User) error {
	query := `
		UPDATE users
		SET name = :name, email = :email, avatar_url = :avatar_url, password = :password, version = version + 1
		WHERE id = :id AND version = :version
		`
	res, err := sqlx.NamedExecContext(ctx, r.db.execer(ctx), query, u)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		slog.Error(err.Error())
	}
	if affected == 0 {
		return domain.ErrEditConflict
	}
	return nil
}

func (r *UserRepository) ActivateUser(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET activated = TRUE, version = version + 1
		WHERE id = :id AND version = :version
		`
	res, err := sqlx.NamedExecContext(ctx, r.db.execer(ctx), query, user)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrEditConflict
	}
	return nil
}

func (r *UserRepository) GetForToken(ctx context.Context, scope string, hash []byte) (*domain.User, error) {
	query := `
		SELECT * FROM users
		WHERE id IN (
			SELECT user_id
			FROM token
			WHERE scope = $1 AND hash = $2 AND expiry > NOW())
		`
	var usr domain.User
	if err := r.db.execer(ctx).QueryRowxContext(ctx, query, scope, hash).StructScan(&usr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}
	return &usr, nil
}
