package model

// Table describes a physical table in the dining room.  ReservationID
// is the back-reference to the reservation currently seated at the
// table; nil means the table is free.  Only the table assignment
// engine writes this field.
//
// Fields:
//  ID            – primary key identifier.
//  TableName     – display name, at least two characters.
//  Capacity      – number of guests the table holds, always positive.
//  ReservationID – reservation currently seated here (nullable).
type Table struct {
	ID            uint64  `json:"table_id"`       // tables.table_id
	TableName     string  `json:"table_name"`     // tables.table_name
	Capacity      int     `json:"capacity"`       // tables.capacity
	ReservationID *uint64 `json:"reservation_id"` // tables.reservation_id (nullable)
}

// Occupied reports whether a reservation is currently seated at the
// table.  The reference column is the single source of truth for
// occupancy.
func (t *Table) Occupied() bool {
	return t.ReservationID != nil
}
