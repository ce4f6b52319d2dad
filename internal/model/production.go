package model

import "time"

// Production is a production run of one supply item (`productions` table).
type Production struct {
	ID         string    `json:"id_produksi"`      // productions.id
	Status     string    `json:"status_produksi"`  // productions.status
	ProducedAt time.Time `json:"tanggal_produksi"` // productions.produced_at
	SupplyID   string    `json:"id_produk"`        // productions.supply_id -> supplies.id
}
