package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

// Source tells where the current order record came from.
type Source string

func (s Source) String() string {
	return string(s)
}

const (
	SourceRemote   Source = "remote"
	SourceFallback Source = "fallback"
)

// OrderRecord is one customer order as served by the orders backend.
// Items keep the order in which the backend sent them.
type OrderRecord struct {
	OrderID  string     `json:"orderId"`
	Username string     `json:"username"`
	Items    []LineItem `json:"items"`
}

// LineItem is a product entry of an order. Quantity and Price are not
// validated; a missing value stays invalid instead of becoming zero.
type LineItem struct {
	ID       ItemID              `json:"id"`
	Name     string              `json:"name"`
	Quantity decimal.NullDecimal `json:"quantity"`
	Price    decimal.NullDecimal `json:"price"`
}

var jsonNumber = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// ItemID keeps the item key exactly as the backend sent it, number or string.
type ItemID string

func (id ItemID) String() string {
	return string(id)
}

func (id *ItemID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ItemID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("item id must be a number or a string: %w", err)
	}
	*id = ItemID(n.String())
	return nil
}

// MarshalJSON writes numeric ids back as JSON numbers.
func (id ItemID) MarshalJSON() ([]byte, error) {
	if jsonNumber.MatchString(string(id)) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// NewLineItem builds a fully populated line item.
func NewLineItem(id, name string, quantity, price decimal.Decimal) LineItem {
	return LineItem{
		ID:       ItemID(id),
		Name:     name,
		Quantity: decimal.NewNullDecimal(quantity),
		Price:    decimal.NewNullDecimal(price),
	}
}

// DemoOrder returns the record shown when the backend cannot be reached.
func DemoOrder() OrderRecord {
	return OrderRecord{
		OrderID:  "ORD-2024-001",
		Username: "saikrishna",
		Items: []LineItem{
			NewLineItem("1", "Wireless Mouse", decimal.NewFromInt(2), decimal.RequireFromString("29.99")),
			NewLineItem("2", "Mechanical Keyboard", decimal.NewFromInt(1), decimal.RequireFromString("89.99")),
			NewLineItem("3", "USB Cable", decimal.NewFromInt(3), decimal.RequireFromString("9.99")),
		},
	}
}
