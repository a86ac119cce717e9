package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/fekuna/omnipos-tyre-service/internal/apperr"
	"github.com/fekuna/omnipos-tyre-service/internal/model"
	"github.com/fekuna/omnipos-tyre-service/internal/tyre/dto"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

const tyreColumns = `id, brand, model_with_size, tube_type, quantity_ts, quantity_gs,
            invoice_price, amazon_listed, amazon_price, created_at, updated_at`

func (r *PGRepository) Create(ctx context.Context, t *model.Tyre) error {
	query := `
        INSERT INTO tyres (
            id, brand, model_with_size, tube_type, quantity_ts, quantity_gs,
            invoice_price, amazon_listed, amazon_price, created_at, updated_at
        )
        VALUES (
            :id, :brand, :model_with_size, :tube_type, :quantity_ts, :quantity_gs,
            :invoice_price, :amazon_listed, :amazon_price, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, t)
	return apperr.Storage("insert tyre", err)
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Tyre, error) {
	var t model.Tyre
	query := `SELECT ` + tyreColumns + ` FROM tyres WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &t, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperr.Storage("find tyre", err)
	}
	return &t, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.TyreFilters) ([]model.Tyre, error) {
	items := []model.Tyre{}

	conditions := []string{}
	args := []interface{}{}

	if f.IDs != nil {
		if len(f.IDs) == 0 {
			return items, nil
		}
		conditions = append(conditions, "id IN (?)")
		args = append(args, f.IDs)
	}
	if f.SearchQuery != "" {
		pattern := "%" + escapeLike(f.SearchQuery) + "%"
		conditions = append(conditions, "(brand ILIKE ? OR model_with_size ILIKE ?)")
		args = append(args, pattern, pattern)
	}
	if f.TubeType != "" {
		conditions = append(conditions, "LOWER(tube_type) = LOWER(?)")
		args = append(args, f.TubeType)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	query, args, err := sqlx.In(
		"SELECT "+tyreColumns+" FROM tyres"+whereClause+" ORDER BY brand, model_with_size",
		args...,
	)
	if err != nil {
		return nil, err
	}
	query = r.DB.Rebind(query)

	if err := r.DB.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, apperr.Storage("list tyres", err)
	}
	return items, nil
}

func (r *PGRepository) UpdatePricing(ctx context.Context, t *model.Tyre) (*model.Tyre, error) {
	query := `
        UPDATE tyres
        SET invoice_price = :invoice_price,
            amazon_listed = :amazon_listed,
            amazon_price = :amazon_price,
            updated_at = :updated_at
        WHERE id = :id
        RETURNING ` + tyreColumns

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, apperr.Storage("prepare tyre update", err)
	}
	defer nstmt.Close()

	var updated model.Tyre
	if err := nstmt.GetContext(ctx, &updated, t); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, apperr.Storage("update tyre", err)
	}
	return &updated, nil
}

func (r *PGRepository) DeleteWithSales(ctx context.Context, id string) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return apperr.Storage("begin delete", err)
	}
	defer tx.Rollback()

	// Lock the tyre first so no sale can append to its ledger mid-delete.
	var locked string
	err = tx.GetContext(ctx, &locked, `SELECT id FROM tyres WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.ErrNotFound
		}
		return apperr.Storage("lock tyre", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM sale_logs WHERE tyre_id = $1`, id); err != nil {
		return apperr.Storage("delete sales", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM tyres WHERE id = $1`, id); err != nil {
		return apperr.Storage("delete tyre", err)
	}

	return apperr.Storage("commit delete", tx.Commit())
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input match literally inside an ILIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
