package model

import "time"

// Buyer is a customer record (`buyers` table).
type Buyer struct {
	ID        string     `json:"id_pembeli"`   // buyers.id
	Name      string     `json:"nama_pembeli"` // buyers.name
	Age       *int       `json:"umur"`         // buyers.age (nullable)
	Gender    *string    `json:"gender"`       // buyers.gender (nullable)
	Address   string     `json:"alamat"`       // buyers.address
	Phone     string     `json:"no_telp"`      // buyers.phone
	Email     string     `json:"email"`        // buyers.email (unique)
	CreatedAt time.Time  `json:"time_created"` // buyers.created_at
	UpdatedAt *time.Time `json:"time_updated"` // buyers.updated_at (nullable)
}
