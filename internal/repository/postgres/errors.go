package postgres

import (
	"errors"

	"github.com/lib/pq"

	"clubscheduler/internal/domain"
)

const (
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
	codeExclusionViolation  = "23P01"
)

// violations maps a constraint name to the domain error reported when it is violated.
type violations map[string]error

// mapWriteError turns constraint violations from INSERT/UPDATE statements into
// domain errors. Constraints without an entry fall back to a generic error per
// violation class; any other error is returned unchanged.
func mapWriteError(err error, known violations) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	if mapped, ok := known[pqErr.Constraint]; ok {
		return mapped
	}
	switch pqErr.Code {
	case codeUniqueViolation:
		return domain.ErrConflict
	case codeExclusionViolation:
		return domain.ErrCourtUnavailable
	case codeForeignKeyViolation:
		return domain.ErrNotFound
	}
	return err
}
