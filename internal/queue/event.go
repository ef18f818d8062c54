// Package queue defines message payloads exchanged over the message broker.
package queue

// TableSeatedEvent is published when a reservation is successfully
// seated at a table. It carries enough information for downstream
// consumers to log or notify without querying the primary database.
type TableSeatedEvent struct {
	TableID       uint64 `json:"table_id"`
	TableName     string `json:"table_name"`
	ReservationID uint64 `json:"reservation_id"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	People        int    `json:"people"`
	SeatedAt      string `json:"seated_at"`
}

// TableFinishedEvent is published when a seated party's visit ends and
// the table is freed.
type TableFinishedEvent struct {
	TableID       uint64 `json:"table_id"`
	TableName     string `json:"table_name"`
	ReservationID uint64 `json:"reservation_id"`
	FinishedAt    string `json:"finished_at"`
}
