package repository

import (
	"context"
	"fmt"

	"answerq/pkg/apperr"
	"answerq/pkg/database"

	"go.uber.org/zap"
)

func count(ctx context.Context, db database.PgxIface, log *zap.Logger, table, query string, args ...any) (int64, error) {
	var n int64
	if err := db.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		log.Error("Database error counting rows", zap.Error(err), zap.String("table", table))
		return 0, dbError(fmt.Sprintf("count %s", table), err)
	}
	return n, nil
}

// deleteByID removes one row from table. table is always a constant from this package.
func deleteByID(ctx context.Context, db database.PgxIface, log *zap.Logger, table string, id int64) error {
	result, err := db.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		log.Error("Failed to delete row", zap.Error(err), zap.String("table", table), zap.Int64("id", id))
		return dbError(fmt.Sprintf("delete %s %d", table, id), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete %s %d: %w", table, id, apperr.ErrNotFound)
	}

	log.Info("Row deleted", zap.String("table", table), zap.Int64("id", id))
	return nil
}
