package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/agri-supply-ledger/internal/model"
)

// BuyerRepo persists buyers.
type BuyerRepo struct {
	db *sql.DB
}

func NewBuyerRepo(db *sql.DB) *BuyerRepo { return &BuyerRepo{db: db} }

const buyerColumns = "id, name, age, gender, address, phone, email, created_at, updated_at"

func scanBuyer(row scanner) (model.Buyer, error) {
	var b model.Buyer
	err := row.Scan(&b.ID, &b.Name, &b.Age, &b.Gender, &b.Address, &b.Phone, &b.Email, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func (r *BuyerRepo) List(ctx context.Context) ([]model.Buyer, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+buyerColumns+" FROM buyers ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Buyer
	for rows.Next() {
		b, err := scanBuyer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *BuyerRepo) GetByID(ctx context.Context, id string) (*model.Buyer, error) {
	b, err := scanBuyer(r.db.QueryRowContext(ctx, "SELECT "+buyerColumns+" FROM buyers WHERE id = ?", id))
	if err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

func (r *BuyerRepo) Create(ctx context.Context, b *model.Buyer) error {
	const q = `INSERT INTO buyers (id, name, age, gender, address, phone, email)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q, b.ID, b.Name, b.Age, b.Gender, b.Address, b.Phone, b.Email); err != nil {
		return classify(err)
	}
	stored, err := r.GetByID(ctx, b.ID)
	if err != nil {
		return err
	}
	*b = *stored
	return nil
}

// Update replaces every mutable column; nil Age/Gender clear the column.
func (r *BuyerRepo) Update(ctx context.Context, b *model.Buyer) error {
	const q = `UPDATE buyers
	           SET name = ?, age = ?, gender = ?, address = ?, phone = ?, email = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, b.Name, b.Age, b.Gender, b.Address, b.Phone, b.Email, b.ID); err != nil {
		return classify(err)
	}
	stored, err := r.GetByID(ctx, b.ID)
	if err != nil {
		return err
	}
	*b = *stored
	return nil
}

func (r *BuyerRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, tableBuyers, id)
}

func (r *BuyerRepo) DeleteAll(ctx context.Context) (int64, error) {
	return deleteAll(ctx, r.db, tableBuyers)
}
