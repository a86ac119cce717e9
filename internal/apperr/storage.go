package apperr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Storage classifies a database error. Constraint violations (SQLSTATE class
// 23) become ErrIntegrity, everything else ErrUnavailable.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrUnavailable) || errors.Is(err, ErrIntegrity) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "23") {
		return fmt.Errorf("%s: %w: %w", op, ErrIntegrity, err)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
}
