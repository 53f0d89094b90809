package repoerr

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/rewardly/cbs/internal/domain"
)

// Postgres error codes surfaced by the repositories.
const (
	codeUniqueViolation  = "23505"
	codeLockNotAvailable = "55P03"
	codeSerialization    = "40001"
	codeDeadlockDetected = "40P01"
)

// Map translates driver-level errors into the domain taxonomy. Anything not
// recognized is returned unchanged for the caller to wrap.
func Map(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case codeUniqueViolation:
			return domain.ErrDuplicateTransaction
		case codeLockNotAvailable, codeSerialization, codeDeadlockDetected:
			return domain.ErrConcurrencyConflict
		}
	}
	return err
}
