package validation

import (
	"testing"

	"github.com/RAJESH7500/reservation-app/internal/apperr"
	"github.com/RAJESH7500/reservation-app/internal/model"
)

func validTablePayload() map[string]any {
	return map[string]any{
		"table_name": "Bar #1",
		"capacity":   float64(6),
	}
}

func tableErr(_ *model.Table, err error) error { return err }

func TestTable_OK(t *testing.T) {
	tbl, err := Table(validTablePayload())
	if err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
	if tbl.TableName != "Bar #1" || tbl.Capacity != 6 {
		t.Fatalf("unexpected table %+v", tbl)
	}
	if tbl.ReservationID != nil {
		t.Fatalf("new table must be free, got reservation %d", *tbl.ReservationID)
	}
}

func TestTable_MissingData(t *testing.T) {
	wantKind(t, tableErr(Table(nil)), apperr.KindMissingData)
}

func TestTable_UnknownField(t *testing.T) {
	payload := validTablePayload()
	payload["reservation_id"] = float64(2)
	wantKind(t, tableErr(Table(payload)), apperr.KindInvalidField)
}

func TestTable_MissingRequired(t *testing.T) {
	for _, field := range []string{"table_name", "capacity"} {
		payload := validTablePayload()
		delete(payload, field)
		appErr := wantKind(t, tableErr(Table(payload)), apperr.KindInvalidField)
		if appErr.Message != field+" is required" {
			t.Fatalf("field %s: unexpected message %q", field, appErr.Message)
		}
	}
}

func TestTable_NameTooShort(t *testing.T) {
	payload := validTablePayload()
	payload["table_name"] = "7"
	wantKind(t, tableErr(Table(payload)), apperr.KindInvalidValue)
}

func TestTable_CapacityShape(t *testing.T) {
	for _, bad := range []any{float64(0), float64(-1), 1.5, "4", []any{4}} {
		payload := validTablePayload()
		payload["capacity"] = bad
		appErr := wantKind(t, tableErr(Table(payload)), apperr.KindInvalidValue)
		if appErr.Message != "capacity is not valid" {
			t.Fatalf("capacity=%v: unexpected message %q", bad, appErr.Message)
		}
	}
}
