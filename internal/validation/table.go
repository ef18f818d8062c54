package validation

import (
	"github.com/RAJESH7500/reservation-app/internal/apperr"
	"github.com/RAJESH7500/reservation-app/internal/model"
)

var tableFields = map[string]bool{
	"table_name": true,
	"capacity":   true,
}

var requiredTableFields = []string{"table_name", "capacity"}

// tableRules holds the declarative constraints on a table payload.
type tableRules struct {
	TableName string `json:"table_name" validate:"required,min=2"`
}

// Table checks a table creation payload and returns the parsed table.
// New tables are always free, so the reservation reference is never
// accepted on the wire.
func Table(payload map[string]any) (*model.Table, error) {
	if err := checkFields(payload, tableFields); err != nil {
		return nil, err
	}
	if err := checkRequired(payload, requiredTableFields); err != nil {
		return nil, err
	}

	name, ok := payload["table_name"].(string)
	if !ok {
		return nil, apperr.InvalidValue("table_name is not valid")
	}
	if err := validate.Struct(tableRules{TableName: name}); err != nil {
		return nil, fromValidator(err)
	}

	capacity, err := positiveCount(payload["capacity"], "capacity")
	if err != nil {
		return nil, err
	}

	return &model.Table{TableName: name, Capacity: capacity}, nil
}
