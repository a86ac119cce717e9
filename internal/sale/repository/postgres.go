package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-tyre-service/internal/apperr"
	"github.com/fekuna/omnipos-tyre-service/internal/model"
	"github.com/fekuna/omnipos-tyre-service/internal/sale"
	"github.com/fekuna/omnipos-tyre-service/internal/sale/dto"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) BeginTx(ctx context.Context) (sale.Tx, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, apperr.Storage("begin sale", err)
	}
	return tx, nil
}

func txx(tx sale.Tx) (*sqlx.Tx, error) {
	t, ok := tx.(*sqlx.Tx)
	if !ok {
		return nil, fmt.Errorf("unsupported transaction type %T", tx)
	}
	return t, nil
}

func (r *PGRepository) GetTyreForUpdate(ctx context.Context, tx sale.Tx, tyreID string) (*model.Tyre, error) {
	t, err := txx(tx)
	if err != nil {
		return nil, err
	}

	query := `
        SELECT id, brand, model_with_size, tube_type, quantity_ts, quantity_gs,
               invoice_price, amazon_listed, amazon_price, created_at, updated_at
        FROM tyres
        WHERE id = $1
        FOR UPDATE
    `
	var tyre model.Tyre
	if err := t.GetContext(ctx, &tyre, query, tyreID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperr.Storage("lock tyre", err)
	}
	return &tyre, nil
}

// DecreaseStock takes qty off the shop's column. The guard on the current
// quantity makes the update a no-op rather than driving stock negative.
func (r *PGRepository) DecreaseStock(ctx context.Context, tx sale.Tx, tyreID string, shop model.ShopCode, qty int) error {
	t, err := txx(tx)
	if err != nil {
		return err
	}

	col, ok := shop.StockColumn()
	if !ok {
		return apperr.ErrInvalidShop
	}

	query := fmt.Sprintf(`
        UPDATE tyres
        SET %[1]s = %[1]s - $1,
            updated_at = NOW()
        WHERE id = $2 AND %[1]s >= $1
    `, col)

	res, err := t.ExecContext(ctx, query, qty, tyreID)
	if err != nil {
		return apperr.Storage("decrease stock", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperr.Storage("decrease stock", err)
	}
	if n == 0 {
		return fmt.Errorf("decrease stock: %w: no row with %s >= %d", apperr.ErrIntegrity, col, qty)
	}
	return nil
}

// InsertSale appends s to the ledger. An acting user that no longer exists is
// recorded as NULL, the same as when the user is deleted later.
func (r *PGRepository) InsertSale(ctx context.Context, tx sale.Tx, s *model.SaleLog) error {
	t, err := txx(tx)
	if err != nil {
		return err
	}

	query := `
        INSERT INTO sale_logs (
            id, tyre_id, shop_code, customer_type, customer_name, quantity_sold,
            unit_price, total_amount, profit, sold_at, updated_by
        )
        VALUES (
            :id, :tyre_id, :shop_code, :customer_type, :customer_name, :quantity_sold,
            :unit_price, :total_amount, :profit, :sold_at,
            (SELECT id FROM users WHERE id = :updated_by)
        )
    `
	_, err = t.NamedExecContext(ctx, query, s)
	return apperr.Storage("insert sale", err)
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.SaleFilters) ([]model.SaleLog, error) {
	items := []model.SaleLog{}

	conditions := []string{}
	args := map[string]interface{}{}

	if f.From != nil {
		conditions = append(conditions, "s.sold_at >= :from")
		args["from"] = *f.From
	}
	if f.To != nil {
		conditions = append(conditions, "s.sold_at < :to")
		args["to"] = *f.To
	}
	if f.ShopCode != "" {
		conditions = append(conditions, "s.shop_code = :shop_code")
		args["shop_code"] = f.ShopCode
	}
	if f.CustomerType != "" {
		conditions = append(conditions, "s.customer_type = :customer_type")
		args["customer_type"] = f.CustomerType
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	query := `
        SELECT s.id, s.tyre_id, s.shop_code, s.customer_type, s.customer_name,
               s.quantity_sold, s.unit_price, s.total_amount, s.profit, s.sold_at,
               s.updated_by, t.brand AS tyre_brand, t.model_with_size AS tyre_model,
               t.tube_type AS tyre_tube_type
        FROM sale_logs s
        JOIN tyres t ON t.id = s.tyre_id` + whereClause + `
        ORDER BY s.sold_at DESC, s.id`

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, apperr.Storage("prepare sales query", err)
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &items, args); err != nil {
		return nil, apperr.Storage("list sales", err)
	}
	return items, nil
}
