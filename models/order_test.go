package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRecord_Unmarshal(t *testing.T) {
	var order OrderRecord
	err := json.Unmarshal([]byte(`{"orderId":"ORD-9","username":"bob","items":[
		{"id":1,"name":"Widget","quantity":3,"price":4.50},
		{"id":"sku-2","name":"Gadget","quantity":1,"price":"2.25"},
		{"id":3}
	]}`), &order)
	require.NoError(t, err)

	assert.Equal(t, "ORD-9", order.OrderID)
	assert.Equal(t, "bob", order.Username)
	require.Len(t, order.Items, 3)

	assert.Equal(t, ItemID("1"), order.Items[0].ID)
	assert.True(t, order.Items[0].Price.Decimal.Equal(decimal.RequireFromString("4.5")))
	assert.Equal(t, ItemID("sku-2"), order.Items[1].ID)
	assert.True(t, order.Items[1].Price.Valid)

	assert.Empty(t, order.Items[2].Name)
	assert.False(t, order.Items[2].Price.Valid)
	assert.False(t, order.Items[2].Quantity.Valid)
}

func TestItemID_RejectsObjects(t *testing.T) {
	var id ItemID
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &id))
}

func TestItemID_Marshal(t *testing.T) {
	b, err := json.Marshal([]ItemID{"1", "sku-2", "007"})
	require.NoError(t, err)
	assert.Equal(t, `[1,"sku-2","007"]`, string(b))
}

func TestDemoOrder(t *testing.T) {
	order := DemoOrder()

	assert.Equal(t, "ORD-2024-001", order.OrderID)
	assert.Equal(t, "saikrishna", order.Username)
	require.Len(t, order.Items, 3)
	assert.Equal(t, "Wireless Mouse", order.Items[0].Name)
	assert.Equal(t, "Mechanical Keyboard", order.Items[1].Name)
	assert.Equal(t, "USB Cable", order.Items[2].Name)

	order.Items[0].Name = "changed"
	assert.Equal(t, "Wireless Mouse", DemoOrder().Items[0].Name)
}
