package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/agri-supply-ledger/internal/model"
)

// ProductionRepo persists production runs.  Runs are immutable once
// created; there is no update.
type ProductionRepo struct {
	db       *sql.DB
	supplies *SupplyRepo
}

func NewProductionRepo(db *sql.DB, supplies *SupplyRepo) *ProductionRepo {
	return &ProductionRepo{db: db, supplies: supplies}
}

const productionColumns = "id, status, produced_at, supply_id"

func scanProduction(row scanner) (model.Production, error) {
	var p model.Production
	err := row.Scan(&p.ID, &p.Status, &p.ProducedAt, &p.SupplyID)
	return p, err
}

func (r *ProductionRepo) List(ctx context.Context) ([]model.Production, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+productionColumns+" FROM productions ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Production
	for rows.Next() {
		p, err := scanProduction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProductionRepo) GetByID(ctx context.Context, id string) (*model.Production, error) {
	p, err := scanProduction(r.db.QueryRowContext(ctx, "SELECT "+productionColumns+" FROM productions WHERE id = ?", id))
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// Create checks that the referenced supply exists before inserting.  A
// missing supply yields ErrReferenceNotFound and nothing is written; other
// insert failures are returned as they are.
func (r *ProductionRepo) Create(ctx context.Context, p *model.Production) error {
	ok, err := r.supplies.Exists(ctx, p.SupplyID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrReferenceNotFound
	}
	const q = "INSERT INTO productions (id, status, supply_id) VALUES (?, ?, ?)"
	if _, err := r.db.ExecContext(ctx, q, p.ID, p.Status, p.SupplyID); err != nil {
		return classify(err)
	}
	stored, err := r.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}
	*p = *stored
	return nil
}

func (r *ProductionRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, tableProductions, id)
}

func (r *ProductionRepo) DeleteAll(ctx context.Context) (int64, error) {
	return deleteAll(ctx, r.db, tableProductions)
}
