package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// IsDuplicateSlot reports whether err is a unique-index violation from one
// of the slot guards (idx_no_double_booking, idx_no_double_consultation).
// PostgreSQL surfaces pgconn errors with SQLSTATE 23505; the pure-Go sqlite
// driver only exposes a message, so the constraint text is matched as well.
func IsDuplicateSlot(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
