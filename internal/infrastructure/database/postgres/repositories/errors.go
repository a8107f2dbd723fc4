// Package repositories implements the domain repository ports over gorm,
// one file per entity, mirroring the teacher's
// internal/infrastructure/database/postgres/repositories layout.
package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	apierrors "github.com/paylinkhq/router-core/pkg/errors"
)

// postgresUniqueViolation is the SQLSTATE code Postgres returns for a
// unique constraint violation.
const postgresUniqueViolation = "23505"

// translateErr maps a gorm/pgx error onto the StorageError kinds named in
// spec §7, the one place every repository impl funnels its errors through
// before returning to the domain layer.
func translateErr(err error, message string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierrors.NewStorageError(apierrors.DatabaseNotFound, message, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == postgresUniqueViolation {
		return apierrors.NewStorageError(apierrors.DatabaseUniqueViolation, message, err)
	}
	return apierrors.NewStorageError(apierrors.DatabaseOthers, message, err)
}
