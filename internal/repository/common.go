package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/agri-supply-ledger/internal/database"
)

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// Table names.  Only these constants are ever interpolated into SQL.
const (
	tableSupplies    = "supplies"
	tableProductions = "productions"
	tableSales       = "sales"
	tableBuyers      = "buyers"
)

// deleteByID removes one row by primary key.  It returns ErrNotFound when no
// row was affected.
func deleteByID(ctx context.Context, db database.DBTX, table, id string) error {
	res, err := db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return classify(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// deleteAll empties table inside a single transaction.  An already empty
// table yields ErrNotFound and nothing is deleted; any failure rolls the
// whole batch back.
func deleteAll(ctx context.Context, db *sql.DB, table string) (int64, error) {
	var deleted int64
	err := database.WithTx(ctx, db, func(ctx context.Context, tx database.DBTX) error {
		var n int64
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		res, err := tx.ExecContext(ctx, "DELETE FROM "+table)
		if err != nil {
			return classify(err)
		}
		deleted, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// notFound converts sql.ErrNoRows into ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
