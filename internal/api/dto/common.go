package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// SuccessResponse represents a generic success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// ListResponse wraps a list of items
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// NewListResponse builds a list response, never rendering a null item list
func NewListResponse[T any](items []T) *ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return &ListResponse[T]{Items: items, Total: len(items)}
}

// FormValue is a field value as the user typed it. Both JSON strings and JSON
// numbers are accepted so that clients may send 2 or "2".
type FormValue string

func (v *FormValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = FormValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*v = FormValue(n.String())
	return nil
}

func (v FormValue) String() string {
	return string(v)
}

// Money renders an amount with exactly two decimals
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// fieldsOf collects the non-nil values of a partial update, keyed by field name
func fieldsOf(pairs map[string]*FormValue) map[string]string {
	fields := make(map[string]string, len(pairs))
	for name, v := range pairs {
		if v != nil {
			fields[name] = v.String()
		}
	}
	return fields
}
