package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/agri-supply-ledger/internal/model"
)

// UserRepo is the credential store.  Rows are created with an already
// hashed password; the repository never sees plaintext.
type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

const userColumns = "username, password_hash, email, role, is_active, created_at, updated_at"

func scanUser(row scanner) (model.User, error) {
	var u model.User
	err := row.Scan(&u.Username, &u.PasswordHash, &u.Email, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetByUsername fetches a principal.  It returns ErrNotFound if absent.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username = ? LIMIT 1", username))
	if err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY username")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Create inserts u.  u.PasswordHash must already be a digest.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	const q = `INSERT INTO users (username, password_hash, email, role, is_active)
	           VALUES (?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q, u.Username, u.PasswordHash, u.Email, u.Role, u.IsActive); err != nil {
		return classify(err)
	}
	stored, err := r.GetByUsername(ctx, u.Username)
	if err != nil {
		return err
	}
	*u = *stored
	return nil
}
