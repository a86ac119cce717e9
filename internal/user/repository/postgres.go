package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fekuna/omnipos-tyre-service/internal/apperr"
	"github.com/fekuna/omnipos-tyre-service/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, u *model.User) error {
	query := `
        INSERT INTO users (id, username, password_hash, created_at)
        VALUES (:id, :username, :password_hash, :created_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, u)
	return apperr.Storage("insert user", err)
}

func (r *PGRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	query := `SELECT id, username, password_hash, created_at FROM users WHERE username = $1 LIMIT 1`
	if err := r.DB.GetContext(ctx, &u, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperr.Storage("find user", err)
	}
	return &u, nil
}
