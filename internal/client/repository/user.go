package repository

import (
	"database/sql"
	"errors"

	"github.com/minglehq/mingle/internal/domain"
)

type LocalUserRepository struct {
	db *DB
}

func newLocalUserRepository(db *DB) LocalUserRepository {
	return LocalUserRepository{db}
}

func (r LocalUserRepository) GetCurrentUser() (*domain.User, error) {
	query := `
		SELECT id, name, email, avatar_url, created_at FROM users
	`
	var usr domain.User
	if err := r.db.QueryRowx(query).StructScan(&usr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}
	return &usr, nil
}

func (r LocalUserRepository) SaveCurrentUser(u *domain.User) error {
	query := `
		INSERT INTO users (id, name, email, avatar_url, created_at)
		VALUES (:id, :name, :email, :avatar_url, :created_at)
	`
	_, err := r.db.NamedExec(query, u)
	return err
}

func (r LocalUserRepository) DeletePreviousUser() error {
	query := `
		DELETE FROM users
	`
	_, err := r.db.Exec(query)
	return err
}

func (r LocalUserRepository) GetUserByID(id string) (*domain.User, error) {
	query := `
		SELECT id, name, email, avatar_url
		FROM contact
		WHERE id = $1
	`
	var usr domain.User
	if err := r.db.QueryRowx(query, id).StructScan(&usr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}
	return &usr, nil
}

func (r LocalUserRepository) SaveUser(u *domain.User) error {
	query := `
		INSERT INTO contact (id, name, email, avatar_url)
		VALUES (:id, :name, :email, :avatar_url)
		ON CONFLICT (id) DO UPDATE
		SET name = excluded.name, email = excluded.email, avatar_url = excluded.avatar_url
	`
	_, err := r.db.NamedExec(query, u)
	return err
}
