package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/agri-supply-ledger/internal/model"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

var created = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

func supplyRow(id string, qty int, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "quantity", "description", "category", "status", "created_at", "updated_at"}).
		AddRow(id, "Rice", qty, nil, "Grain", status, created, nil)
}

func TestClassify(t *testing.T) {
	cases := []struct {
		number uint16
		want   error
	}{
		{1062, ErrDuplicate},
		{1451, ErrConflict},
		{1452, ErrReferenceNotFound},
		{1406, ErrInvalidData},
		{1264, ErrInvalidData},
		{3819, ErrInvalidData},
	}
	for _, c := range cases {
		src := &mysql.MySQLError{Number: c.number, Message: "x"}
		err := classify(src)
		assert.ErrorIs(t, err, c.want, "number %d", c.number)
		var me *mysql.MySQLError
		assert.True(t, errors.As(err, &me))
	}

	other := errors.New("boom")
	assert.Same(t, other, classify(other))
	assert.NotErrorIs(t, classify(&mysql.MySQLError{Number: 1045}), ErrDuplicate)
}

func TestSupplyRepo_CreateComputesStatus(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSupplyRepo(db)

	mock.ExpectExec("INSERT INTO supplies").
		WithArgs("P001", "Rice", 0, nil, "Grain", model.SupplyUnavailable).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT .* FROM supplies WHERE id = ?").
		WithArgs("P001").
		WillReturnRows(supplyRow("P001", 0, model.SupplyUnavailable))

	s := &model.Supply{ID: "P001", Name: "Rice", Quantity: 0, Category: "Grain", Status: model.SupplyAvailable}
	require.NoError(t, repo.Create(context.Background(), s))
	assert.Equal(t, model.SupplyUnavailable, s.Status)
	assert.Equal(t, created, s.CreatedAt)
	assert.Nil(t, s.Description)
	assert.Nil(t, s.UpdatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSupplyRepo_CreateDuplicate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSupplyRepo(db)

	mock.ExpectExec("INSERT INTO supplies").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	err := repo.Create(context.Background(), &model.Supply{ID: "P001", Name: "Rice", Quantity: 3, Category: "Grain"})
	require.ErrorIs(t, err, ErrDuplicate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSupplyRepo_UpdateFlipsStatus(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSupplyRepo(db)

	mock.ExpectExec("UPDATE supplies").
		WithArgs("Rice", 5, nil, "Grain", model.SupplyAvailable, "P001").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT .* FROM supplies WHERE id = ?").
		WithArgs("P001").
		WillReturnRows(supplyRow("P001", 5, model.SupplyAvailable))

	s := &model.Supply{ID: "P001", Name: "Rice", Quantity: 5, Category: "Grain"}
	require.NoError(t, repo.Update(context.Background(), s))
	assert.Equal(t, model.SupplyAvailable, s.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSupplyRepo_UpdateMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSupplyRepo(db)

	mock.ExpectExec("UPDATE supplies").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT .* FROM supplies WHERE id = ?").
		WithArgs("NOPE").
		WillReturnError(sql.ErrNoRows)

	err := repo.Update(context.Background(), &model.Supply{ID: "NOPE", Name: "x", Category: "y"})
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSupplyRepo_ListEmpty(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSupplyRepo(db)

	mock.ExpectQuery("SELECT .* FROM supplies ORDER BY id").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "quantity", "description", "category", "status", "created_at", "updated_at"}))

	out, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestSupplyRepo_DeleteStillReferenced(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSupplyRepo(db)

	mock.ExpectExec("DELETE FROM supplies WHERE id = ?").
		WithArgs("P001").
		WillReturnError(&mysql.MySQLError{Number: 1451, Message: "a foreign key constraint fails"})

	require.ErrorIs(t, repo.Delete(context.Background(), "P001"), ErrConflict)
}

func TestSupplyRepo_DeleteMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSupplyRepo(db)

	mock.ExpectExec("DELETE FROM supplies WHERE id = ?").
		WithArgs("P404").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.ErrorIs(t, repo.Delete(context.Background(), "P404"), ErrNotFound)
}

func TestSupplyRepo_DeleteAll(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSupplyRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM supplies").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(3))
	mock.ExpectExec("DELETE FROM supplies").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	n, err := repo.DeleteAll(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSupplyRepo_DeleteAllEmpty(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSupplyRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM supplies").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectRollback()

	_, err := repo.DeleteAll(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSupplyRepo_DeleteAllRollsBackOnReference(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSupplyRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM supplies").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(2))
	mock.ExpectExec("DELETE FROM supplies").
		WillReturnError(&mysql.MySQLError{Number: 1451, Message: "fk"})
	mock.ExpectRollback()

	_, err := repo.DeleteAll(context.Background())
	require.ErrorIs(t, err, ErrConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductionRepo_CreateUnknownSupply(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProductionRepo(db, NewSupplyRepo(db))

	mock.ExpectQuery("SELECT 1 FROM supplies WHERE id = ?").
		WithArgs("P404").
		WillReturnError(sql.ErrNoRows)

	err := repo.Create(context.Background(), &model.Production{ID: "R001", Status: "Running", SupplyID: "P404"})
	require.ErrorIs(t, err, ErrReferenceNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductionRepo_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProductionRepo(db, NewSupplyRepo(db))

	mock.ExpectQuery("SELECT 1 FROM supplies WHERE id = ?").
		WithArgs("P001").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectExec("INSERT INTO productions").
		WithArgs("R001", "Running", "P001").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT .* FROM productions WHERE id = ?").
		WithArgs("R001").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "produced_at", "supply_id"}).
			AddRow("R001", "Running", created, "P001"))

	p := &model.Production{ID: "R001", Status: "Running", SupplyID: "P001"}
	require.NoError(t, repo.Create(context.Background(), p))
	assert.Equal(t, created, p.ProducedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaleRepo_UpdateStampsShipment(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSaleRepo(db)
	shipped := created.Add(48 * time.Hour)

	mock.ExpectExec("UPDATE sales\\s+SET quantity = \\?, revenue = \\?, status = \\?, shipped_at = CURRENT_TIMESTAMP").
		WithArgs(4, sqlmock.AnyArg(), 2, "T001").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT .* FROM sales WHERE id = ?").
		WithArgs("T001").
		WillReturnRows(sqlmock.NewRows([]string{"id", "quantity", "revenue", "status", "sold_at", "shipped_at"}).
			AddRow("T001", 4, "120000.50", 2, created, shipped))

	s := &model.Sale{ID: "T001", Quantity: 4, Revenue: decimal.RequireFromString("120000.50"), Status: 2}
	require.NoError(t, repo.Update(context.Background(), s))
	require.NotNil(t, s.ShippedAt)
	assert.Equal(t, shipped, *s.ShippedAt)
	assert.True(t, s.Revenue.Equal(decimal.RequireFromString("120000.5")))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBuyerRepo_GetByIDMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBuyerRepo(db)

	mock.ExpectQuery("SELECT .* FROM buyers WHERE id = ?").
		WithArgs("B404").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "B404")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestBuyerRepo_CreateNullableColumns(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBuyerRepo(db)

	mock.ExpectExec("INSERT INTO buyers").
		WithArgs("B001", "Sari", nil, nil, "Jl. Melati 4", "0812", "sari@example.com").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT .* FROM buyers WHERE id = ?").
		WithArgs("B001").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "age", "gender", "address", "phone", "email", "created_at", "updated_at"}).
			AddRow("B001", "Sari", nil, nil, "Jl. Melati 4", "0812", "sari@example.com", created, nil))

	b := &model.Buyer{ID: "B001", Name: "Sari", Address: "Jl. Melati 4", Phone: "0812", Email: "sari@example.com"}
	require.NoError(t, repo.Create(context.Background(), b))
	assert.Nil(t, b.Age)
	assert.Nil(t, b.Gender)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_GetByUsername(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery("SELECT .* FROM users WHERE username = ?").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"username", "password_hash", "email", "role", "is_active", "created_at", "updated_at"}).
			AddRow("alice", "$2a$10$hash", "alice@example.com", "admin", true, created, nil))

	u, err := repo.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.True(t, u.IsActive)
	assert.Equal(t, "$2a$10$hash", u.PasswordHash)
}

func TestUserRepo_GetByUsernameMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery("SELECT .* FROM users WHERE username = ?").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByUsername(context.Background(), "ghost")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepo_CreateDuplicateEmail(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectExec("INSERT INTO users").
		WithArgs("bob", "$2a$10$hash", "bob@example.com", "staff", true).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	err := repo.Create(context.Background(), &model.User{
		Username: "bob", PasswordHash: "$2a$10$hash", Email: "bob@example.com", Role: "staff", IsActive: true,
	})
	require.ErrorIs(t, err, ErrDuplicate)
}
