package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is a sales transaction (`sales` table).  Status is an opaque integer
// code; no meaning is attached to its values.
type Sale struct {
	ID        string          `json:"id_transaksi"`     // sales.id
	Quantity  int             `json:"jumlah_penjualan"` // sales.quantity
	Revenue   decimal.Decimal `json:"pendapatan"`       // sales.revenue
	Status    int             `json:"status"`           // sales.status
	SoldAt    time.Time       `json:"waktu_penjualan"`  // sales.sold_at
	ShippedAt *time.Time      `json:"waktu_pengiriman"` // sales.shipped_at (set on update)
}
