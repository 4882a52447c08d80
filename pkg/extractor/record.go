package extractor

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Record is the structured result of extraction.
// A nil field means nothing trustworthy was found; there is no "unknown" value.
type Record struct {
	OrderID          *string          `json:"order_id,omitempty" yaml:"order_id,omitempty" validate:"omitempty,min=3,max=64"`
	Amount           *decimal.Decimal `json:"amount,omitempty" yaml:"amount,omitempty"`
	ProductName      *string          `json:"product_name,omitempty" yaml:"product_name,omitempty" validate:"omitempty,min=2,max=150"`
	ExpectedDelivery *Date            `json:"expected_delivery,omitempty" yaml:"expected_delivery,omitempty"`
	CarrierName      *string          `json:"carrier_name,omitempty" yaml:"carrier_name,omitempty" validate:"omitempty,min=2,max=64"`
	TrackingID       *string          `json:"tracking_id,omitempty" yaml:"tracking_id,omitempty" validate:"omitempty,alphanum,min=6,max=40"`
}

// Empty reports whether no field was extracted. Callers should treat an empty
// record as an inconclusive extraction, not as an error.
func (r Record) Empty() bool {
	return r.OrderID == nil && r.Amount == nil && r.ProductName == nil &&
		r.ExpectedDelivery == nil && r.CarrierName == nil && r.TrackingID == nil
}

// Count returns how many fields are present.
func (r Record) Count() int {
	n := 0
	for _, present := range []bool{
		r.OrderID != nil, r.Amount != nil, r.ProductName != nil,
		r.ExpectedDelivery != nil, r.CarrierName != nil, r.TrackingID != nil,
	} {
		if present {
			n++
		}
	}
	return n
}

// Has reports whether field f is present.
func (r Record) Has(f Field) bool {
	switch f {
	case FieldOrderID:
		return r.OrderID != nil
	case FieldAmount:
		return r.Amount != nil
	case FieldProductName:
		return r.ProductName != nil
	case FieldExpectedDelivery:
		return r.ExpectedDelivery != nil
	case FieldCarrierName:
		return r.CarrierName != nil
	case FieldTrackingID:
		return r.TrackingID != nil
	}
	return false
}

// Value returns field f rendered as text, as it appears in JSON output.
func (r Record) Value(f Field) (string, bool) {
	switch f {
	case FieldAmount:
		if r.Amount != nil {
			return FormatAmount(*r.Amount), true
		}
	case FieldExpectedDelivery:
		if r.ExpectedDelivery != nil {
			return r.ExpectedDelivery.String(), true
		}
	default:
		if dst, _ := r.stringField(f); dst != nil && *dst != nil {
			return **dst, true
		}
	}
	return "", false
}

// stringField returns the slot and struct field name of a string-valued field.
func (r *Record) stringField(f Field) (**string, string) {
	switch f {
	case FieldOrderID:
		return &r.OrderID, "OrderID"
	case FieldProductName:
		return &r.ProductName, "ProductName"
	case FieldCarrierName:
		return &r.CarrierName, "CarrierName"
	case FieldTrackingID:
		return &r.TrackingID, "TrackingID"
	}
	return nil, ""
}

// FormatAmount renders a money amount with at least two decimal places, so
// 1299.00 stays "1299.00". Finer precision is kept as captured.
func FormatAmount(d decimal.Decimal) string {
	places := int32(2)
	if exp := -d.Exponent(); exp > places {
		places = exp
	}
	return d.StringFixed(places)
}

// money is an amount on the wire.
type money struct {
	decimal.Decimal
}

func (m money) MarshalJSON() ([]byte, error) {
	return json.Marshal(FormatAmount(m.Decimal))
}

func (m money) MarshalText() ([]byte, error) {
	return []byte(FormatAmount(m.Decimal)), nil
}

// recordWire is the serialized form of Record.
type recordWire struct {
	OrderID          *string `json:"order_id,omitempty" yaml:"order_id,omitempty"`
	Amount           *money  `json:"amount,omitempty" yaml:"amount,omitempty"`
	ProductName      *string `json:"product_name,omitempty" yaml:"product_name,omitempty"`
	ExpectedDelivery *Date   `json:"expected_delivery,omitempty" yaml:"expected_delivery,omitempty"`
	CarrierName      *string `json:"carrier_name,omitempty" yaml:"carrier_name,omitempty"`
	TrackingID       *string `json:"tracking_id,omitempty" yaml:"tracking_id,omitempty"`
}

func (r Record) wire() recordWire {
	w := recordWire{
		OrderID:          r.OrderID,
		ProductName:      r.ProductName,
		ExpectedDelivery: r.ExpectedDelivery,
		CarrierName:      r.CarrierName,
		TrackingID:       r.TrackingID,
	}
	if r.Amount != nil {
		w.Amount = &money{*r.Amount}
	}
	return w
}

func (w recordWire) record() Record {
	r := Record{
		OrderID:          w.OrderID,
		ProductName:      w.ProductName,
		ExpectedDelivery: w.ExpectedDelivery,
		CarrierName:      w.CarrierName,
		TrackingID:       w.TrackingID,
	}
	if w.Amount != nil {
		amount := w.Amount.Decimal
		r.Amount = &amount
	}
	return r
}

// MarshalJSON implements json.Marshaler.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.wire())
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Record) UnmarshalJSON(data []byte) error {
	var w recordWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*r = w.record()
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (r Record) MarshalYAML() (interface{}, error) {
	return r.wire(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *Record) UnmarshalYAML(node *yaml.Node) error {
	var w recordWire
	if err := node.Decode(&w); err != nil {
		return err
	}
	*r = w.record()
	return nil
}

var recordValidator = validator.New()

// Validate checks present fields against their constraints.
// Extraction only produces records that pass; Validate exists for records
// built or edited by callers.
func (r Record) Validate() error {
	if err := recordValidator.Struct(r); err != nil {
		return fmt.Errorf("invalid record: %w", err)
	}
	if r.Amount != nil && r.Amount.IsNegative() {
		return fmt.Errorf("invalid record: amount %s is negative", r.Amount)
	}
	if r.ExpectedDelivery != nil {
		if _, ok := NewDate(r.ExpectedDelivery.Year, r.ExpectedDelivery.Month, r.ExpectedDelivery.Day); !ok {
			return fmt.Errorf("invalid record: expected delivery %s is not a calendar date", r.ExpectedDelivery)
		}
	}
	return nil
}

// Date is a calendar date with no time of day or zone.
// It marshals as YYYY-MM-DD.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the date if it exists in the calendar.
func NewDate(year int, month time.Month, day int) (Date, bool) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return Date{}, false
	}
	return Date{Year: year, Month: month, Day: day}, true
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Time returns midnight UTC at the start of the date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Before reports whether d is earlier than o.
func (d Date) Before(o Date) bool {
	return d.Time().Before(o.Time())
}

// IsZero reports whether d is the zero value.
func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(b []byte) error {
	t, err := time.Parse("2006-01-02", string(b))
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", b, err)
	}
	*d = DateOf(t)
	return nil
}
