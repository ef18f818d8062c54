// Package validation implements the pure payload checks that gate
// every reservation and table command. Rules run in a fixed order and
// short-circuit on the first violation: payload presence, field
// whitelist, required fields, type/shape checks, then business rules.
// Nothing here touches the database; callers thread entities and the
// validation clock in explicitly.
package validation

import (
	"errors"
	"math"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/RAJESH7500/reservation-app/internal/apperr"
	"github.com/RAJESH7500/reservation-app/internal/model"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"

	// Opening hours, inclusive on both ends. The restaurant takes no
	// reservations outside this window.
	openingTime = "10:30"
	closingTime = "21:30"
)

// validate applies the declarative field rules. Field names in error
// messages come from the json tags so they match the wire format.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// guestRules holds the string fields every reservation payload must
// carry non-empty.
type guestRules struct {
	FirstName    string `json:"first_name" validate:"required"`
	LastName     string `json:"last_name" validate:"required"`
	MobileNumber string `json:"mobile_number" validate:"required"`
}

var createReservationFields = map[string]bool{
	"first_name":       true,
	"last_name":        true,
	"mobile_number":    true,
	"reservation_date": true,
	"reservation_time": true,
	"people":           true,
	"status":           true,
}

var updateReservationFields = map[string]bool{
	"first_name":       true,
	"last_name":        true,
	"mobile_number":    true,
	"reservation_date": true,
	"reservation_time": true,
	"people":           true,
	"status":           true,
	"created_at":       true,
	"updated_at":       true,
	"reservation_id":   true,
}

var requiredReservationFields = []string{
	"first_name",
	"last_name",
	"mobile_number",
	"reservation_date",
	"reservation_time",
	"people",
}

// CreateReservation checks a create payload against the full rule set
// and returns the parsed reservation with status forced to booked.
// now is the validation clock; the reservation moment must be strictly
// after it.
func CreateReservation(payload map[string]any, now time.Time) (*model.Reservation, error) {
	r, err := parseReservation(payload, createReservationFields, now)
	if err != nil {
		return nil, err
	}
	if raw, ok := payload["status"]; ok && raw != nil {
		status, isString := raw.(string)
		if !isString || (status != "" && status != model.StatusBooked) {
			return nil, apperr.InvalidValue("invalid status: %v", raw)
		}
	}
	r.Status = model.StatusBooked
	return r, nil
}

// UpdateReservation checks an update payload. Updates permit the audit
// fields and the id on the wire but otherwise apply the same rules as
// creation; the status literal is not constrained here because status
// transitions go through their own command.
func UpdateReservation(payload map[string]any, now time.Time) (*model.Reservation, error) {
	r, err := parseReservation(payload, updateReservationFields, now)
	if err != nil {
		return nil, err
	}
	if status, ok := payload["status"].(string); ok {
		r.Status = status
	}
	return r, nil
}

// StatusTarget checks the target of a status-change command. Only the
// four lifecycle literals are legal; anything else, including the
// literal "unknown", is rejected.
func StatusTarget(status string) error {
	switch status {
	case model.StatusBooked, model.StatusSeated, model.StatusFinished, model.StatusCancelled:
		return nil
	}
	return apperr.InvalidValue("invalid status: %s", status)
}

func parseReservation(payload map[string]any, allowed map[string]bool, now time.Time) (*model.Reservation, error) {
	if err := checkFields(payload, allowed); err != nil {
		return nil, err
	}
	if err := checkRequired(payload, requiredReservationFields); err != nil {
		return nil, err
	}

	first, _ := payload["first_name"].(string)
	last, _ := payload["last_name"].(string)
	mobile, _ := payload["mobile_number"].(string)
	if err := validate.Struct(guestRules{FirstName: first, LastName: last, MobileNumber: mobile}); err != nil {
		return nil, fromValidator(err)
	}

	dateStr, ok := payload["reservation_date"].(string)
	if !ok {
		return nil, apperr.InvalidValue("reservation_date is not valid")
	}
	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return nil, apperr.InvalidValue("reservation_date is not valid")
	}

	rawTime, ok := payload["reservation_time"].(string)
	if !ok {
		return nil, apperr.InvalidValue("reservation_time is not valid")
	}
	timeStr := normalizeTime(rawTime)
	tod, err := time.Parse(timeLayout, timeStr)
	if err != nil {
		return nil, apperr.InvalidValue("reservation_time is not valid")
	}

	people, err := positiveCount(payload["people"], "people")
	if err != nil {
		return nil, err
	}

	moment := time.Date(date.Year(), date.Month(), date.Day(), tod.Hour(), tod.Minute(), 0, 0, now.Location())
	if !moment.After(now) {
		return nil, apperr.RuleViolation("reservation date must be in the future")
	}
	if date.Weekday() == time.Tuesday {
		return nil, apperr.RuleViolation("restaurant is closed on Tuesday")
	}
	if timeStr < openingTime || timeStr > closingTime {
		return nil, apperr.RuleViolation("reservation_time must be between %s and %s", openingTime, closingTime)
	}

	return &model.Reservation{
		FirstName:       first,
		LastName:        last,
		MobileNumber:    mobile,
		ReservationDate: date.Format(dateLayout),
		ReservationTime: timeStr,
		People:          people,
	}, nil
}

func checkFields(payload map[string]any, allowed map[string]bool) error {
	if len(payload) == 0 {
		return apperr.MissingData("data is missing")
	}
	var invalid []string
	for field := range payload {
		if !allowed[field] {
			invalid = append(invalid, field)
		}
	}
	if len(invalid) > 0 {
		sort.Strings(invalid)
		return apperr.InvalidField("invalid fields: %s", strings.Join(invalid, ", "))
	}
	return nil
}

func checkRequired(payload map[string]any, fields []string) error {
	for _, field := range fields {
		if _, ok := payload[field]; !ok {
			return apperr.InvalidField("%s is required", field)
		}
	}
	return nil
}

// positiveCount accepts the numeric shapes a decoded JSON payload can
// carry and rejects sequences, strings, zero and negatives. JSON
// numbers arrive as float64, so integrality is checked explicitly.
func positiveCount(v any, field string) (int, error) {
	switch n := v.(type) {
	case int:
		if n > 0 {
			return n, nil
		}
	case int64:
		if n > 0 {
			return int(n), nil
		}
	case uint64:
		if n > 0 {
			return int(n), nil
		}
	case float64:
		if n > 0 && n == math.Trunc(n) {
			return int(n), nil
		}
	}
	return 0, apperr.InvalidValue("%s is not valid", field)
}

// normalizeTime reduces HH:mm:ss inputs to HH:mm so stored and
// submitted times compare consistently. The seconds are dropped at the
// last colon, so hours need not be zero-padded.
func normalizeTime(s string) string {
	if strings.Count(s, ":") == 2 {
		return s[:strings.LastIndexByte(s, ':')]
	}
	return s
}

// fromValidator converts the first declarative rule violation into the
// structured error the caller expects.
func fromValidator(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperr.InvalidValue("invalid payload")
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return apperr.InvalidField("%s is required", fe.Field())
	default:
		return apperr.InvalidValue("%s is not valid", fe.Field())
	}
}
