package db

import (
	"context"
	"errors"

	pkgerrors "github.com/avendra/hotelops-backend/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LockForUpdate loads the row matching the query into dest while holding an
// exclusive row lock (SELECT ... FOR UPDATE) for the remainder of the
// enclosing transaction. Callers must revalidate invariants against the
// locked read, never against an earlier unlocked one.
//
// This is the single locked-resource helper shared by the stock, booking,
// voucher and kitchen-order paths. On the sqlite driver the locking clause is
// a no-op; sqlite serializes writers on its own.
func LockForUpdate(ctx context.Context, tx *gorm.DB, dest any, query string, args ...any) error {
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(query, args...).
		First(dest).Error
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "acquire row lock")
}
