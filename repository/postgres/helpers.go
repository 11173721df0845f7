package postgres

import (
	"github.com/rotina-app/backend/domain"
)

// storeErr classifies any non-row error as the backing store being
// unreachable. pgx surfaces connectivity, timeout and protocol failures
// here; row-level misses are mapped to NotFound before this point.
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	return domain.WrapError(domain.ErrCodeUnavailable, "activity store unavailable", err)
}
