package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/agri-supply-ledger/internal/model"
)

// SaleRepo persists sales transactions.  sold_at is set by the store on
// insert; shipped_at is stamped on every update.
type SaleRepo struct {
	db *sql.DB
}

func NewSaleRepo(db *sql.DB) *SaleRepo { return &SaleRepo{db: db} }

const saleColumns = "id, quantity, revenue, status, sold_at, shipped_at"

func scanSale(row scanner) (model.Sale, error) {
	var s model.Sale
	err := row.Scan(&s.ID, &s.Quantity, &s.Revenue, &s.Status, &s.SoldAt, &s.ShippedAt)
	return s, err
}

func (r *SaleRepo) List(ctx context.Context) ([]model.Sale, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+saleColumns+" FROM sales ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SaleRepo) GetByID(ctx context.Context, id string) (*model.Sale, error) {
	s, err := scanSale(r.db.QueryRowContext(ctx, "SELECT "+saleColumns+" FROM sales WHERE id = ?", id))
	if err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func (r *SaleRepo) Create(ctx context.Context, s *model.Sale) error {
	const q = "INSERT INTO sales (id, quantity, revenue, status) VALUES (?, ?, ?, ?)"
	if _, err := r.db.ExecContext(ctx, q, s.ID, s.Quantity, s.Revenue, s.Status); err != nil {
		return classify(err)
	}
	stored, err := r.GetByID(ctx, s.ID)
	if err != nil {
		return err
	}
	*s = *stored
	return nil
}

// Update overwrites quantity, revenue and status and stamps shipped_at.
func (r *SaleRepo) Update(ctx context.Context, s *model.Sale) error {
	const q = `UPDATE sales
	           SET quantity = ?, revenue = ?, status = ?, shipped_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, s.Quantity, s.Revenue, s.Status, s.ID); err != nil {
		return classify(err)
	}
	stored, err := r.GetByID(ctx, s.ID)
	if err != nil {
		return err
	}
	*s = *stored
	return nil
}

func (r *SaleRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, tableSales, id)
}

func (r *SaleRepo) DeleteAll(ctx context.Context) (int64, error) {
	return deleteAll(ctx, r.db, tableSales)
}
