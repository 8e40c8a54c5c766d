package datastore

import (
	"errors"

	"github.com/uptrace/bun/driver/pgdriver"
)

// ErrInsufficientBalance is returned when a guarded debit matches no row,
// either because the user has no ledger row or the balance is too low.
var ErrInsufficientBalance = errors.New("insufficient balance")

// IsUniqueViolation reports whether err is a Postgres integrity violation,
// which is how the unique indexes below surface a concurrent duplicate
// insert. Callers map it to the same conflict error as the read-then-check
// path.
func IsUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.IntegrityViolation()
	}
	return false
}
