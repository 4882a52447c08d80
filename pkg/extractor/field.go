// Package extractor pulls a structured order record out of cleaned email text.
//
// Each field has an ordered list of patterns per platform. The first pattern
// that matches decides the field; there is no scoring between candidates.
// Platform lists are followed by the generic list, so a platform only needs
// patterns for what it does differently.
package extractor

import (
	"fmt"
	"strings"
)

// Field names one attribute of a Record.
type Field string

const (
	FieldOrderID          Field = "order_id"
	FieldAmount           Field = "amount"
	FieldProductName      Field = "product_name"
	FieldExpectedDelivery Field = "expected_delivery"
	FieldCarrierName      Field = "carrier_name"
	FieldTrackingID       Field = "tracking_id"
)

var allFields = []Field{
	FieldOrderID,
	FieldAmount,
	FieldProductName,
	FieldExpectedDelivery,
	FieldCarrierName,
	FieldTrackingID,
}

// Fields returns every field in extraction order.
func Fields() []Field {
	out := make([]Field, len(allFields))
	copy(out, allFields)
	return out
}

// ParseField maps a field name to a Field.
// It accepts snake_case and a few common spellings ("orderId", "order-id").
func ParseField(s string) (Field, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	for _, f := range allFields {
		if key == string(f) || key == strings.ReplaceAll(string(f), "_", "") {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
}

func (f Field) String() string {
	return string(f)
}
