package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/agri-supply-ledger/internal/model"
)

// SupplyRepo encapsulates all database queries related to supply items.
type SupplyRepo struct {
	db *sql.DB
}

func NewSupplyRepo(db *sql.DB) *SupplyRepo { return &SupplyRepo{db: db} }

const supplyColumns = "id, name, quantity, description, category, status, created_at, updated_at"

func scanSupply(row scanner) (model.Supply, error) {
	var s model.Supply
	err := row.Scan(&s.ID, &s.Name, &s.Quantity, &s.Description, &s.Category, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// List returns every supply ordered by id.  An empty table yields an empty
// slice; callers decide whether that is an error.
func (r *SupplyRepo) List(ctx context.Context) ([]model.Supply, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+supplyColumns+" FROM supplies ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Supply
	for rows.Next() {
		s, err := scanSupply(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetByID fetches one supply.  It returns ErrNotFound if no row matches.
func (r *SupplyRepo) GetByID(ctx context.Context, id string) (*model.Supply, error) {
	s, err := scanSupply(r.db.QueryRowContext(ctx, "SELECT "+supplyColumns+" FROM supplies WHERE id = ?", id))
	if err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

// Exists reports whether a supply with id is stored.
func (r *SupplyRepo) Exists(ctx context.Context, id string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM supplies WHERE id = ? LIMIT 1", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Create recomputes the status, inserts the row and reloads it so that the
// store-assigned timestamps are populated.
func (r *SupplyRepo) Create(ctx context.Context, s *model.Supply) error {
	s.ApplyStatus()
	const q = `INSERT INTO supplies (id, name, quantity, description, category, status)
	           VALUES (?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q, s.ID, s.Name, s.Quantity, s.Description, s.Category, s.Status); err != nil {
		return classify(err)
	}
	stored, err := r.GetByID(ctx, s.ID)
	if err != nil {
		return err
	}
	*s = *stored
	return nil
}

// Update overwrites every mutable column of the supply identified by s.ID
// and recomputes its status.  It returns ErrNotFound if the row is absent.
func (r *SupplyRepo) Update(ctx context.Context, s *model.Supply) error {
	s.ApplyStatus()
	const q = `UPDATE supplies
	           SET name = ?, quantity = ?, description = ?, category = ?, status = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, s.Name, s.Quantity, s.Description, s.Category, s.Status, s.ID); err != nil {
		return classify(err)
	}
	stored, err := r.GetByID(ctx, s.ID)
	if err != nil {
		return err
	}
	*s = *stored
	return nil
}

// Delete removes one supply.  ErrConflict means production runs still
// reference it.
func (r *SupplyRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, tableSupplies, id)
}

// DeleteAll removes every supply in one transaction.
func (r *SupplyRepo) DeleteAll(ctx context.Context) (int64, error) {
	return deleteAll(ctx, r.db, tableSupplies)
}
