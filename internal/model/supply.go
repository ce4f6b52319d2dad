package model

import "time"

// Supply status labels derived from the stocked quantity.
const (
	SupplyAvailable   = "Available"
	SupplyUnavailable = "Unavailable"
)

// Supply is a stocked product in the `supplies` table.  Status is never
// accepted from clients; it is recomputed from Quantity on every write.
type Supply struct {
	ID          string     `json:"id_produk"`    // supplies.id
	Name        string     `json:"nama_produk"`  // supplies.name (unique)
	Quantity    int        `json:"jumlah"`       // supplies.quantity
	Description *string    `json:"deskripsi"`    // supplies.description (nullable)
	Category    string     `json:"jenis"`        // supplies.category
	Status      string     `json:"status"`       // supplies.status
	CreatedAt   time.Time  `json:"time_created"` // supplies.created_at
	UpdatedAt   *time.Time `json:"time_updated"` // supplies.updated_at (nullable)
}

// SupplyStatus maps a quantity to its availability label.
func SupplyStatus(quantity int) string {
	if quantity < 1 {
		return SupplyUnavailable
	}
	return SupplyAvailable
}

// ApplyStatus recomputes s.Status from s.Quantity.
func (s *Supply) ApplyStatus() { s.Status = SupplyStatus(s.Quantity) }
