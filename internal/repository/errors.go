package repository

import (
	"errors"

	"github.com/lib/pq"
)

// pqUniqueViolation is the Postgres error code for unique constraint breaches.
const pqUniqueViolation = "23505"

// isUniqueViolation reports whether err stems from a unique constraint.
// The database constraint is the authoritative guard; application-level
// pre-checks only provide friendlier messages.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return string(pqErr.Code) == pqUniqueViolation
}
