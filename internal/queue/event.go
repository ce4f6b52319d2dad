// Package queue defines message payloads exchanged over the message broker.
package queue

import "time"

// SupplyStatusQueue is the durable queue supply status events are published to.
const SupplyStatusQueue = "supply.status_changed"

// SupplyStatusChangedEvent is published when a supply is created or its
// availability flips.  PreviousStatus is empty for newly created supplies.
// It carries enough for downstream consumers to react without querying the
// primary database.
type SupplyStatusChangedEvent struct {
	SupplyID       string    `json:"id_produk"`
	Name           string    `json:"nama_produk"`
	Quantity       int       `json:"jumlah"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	Status         string    `json:"status"`
	ChangedBy      string    `json:"changed_by"`
	ChangedAt      time.Time `json:"changed_at"`
}
