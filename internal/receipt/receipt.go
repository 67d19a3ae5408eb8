// Package receipt derives the printable receipt of an order: per-line unit
// and extended prices and the grand total, all fixed to two decimals.
package receipt

import (
	"errors"

	"github.com/NaiduBagana/cam2cart/models"
	"github.com/shopspring/decimal"
)

// NotAvailable is shown in place of an amount that cannot be computed.
const NotAvailable = "n/a"

var ErrAmountMissing = errors.New("price or quantity missing")

type Line struct {
	ID        models.ItemID `json:"id"`
	Name      string        `json:"name"`
	Quantity  string        `json:"quantity"`
	UnitPrice string        `json:"unitPrice"`
	Amount    string        `json:"amount"`
}

type Receipt struct {
	OrderID       string        `json:"orderId"`
	Username      string        `json:"username"`
	Lines         []Line        `json:"items"`
	Total         string        `json:"total"`
	ItemCount     int           `json:"itemCount"`
	Source        models.Source `json:"source"`
	UsingDemoData bool          `json:"usingDemoData"`
}

// FormatAmount fixes d to two decimal places, rounding half away from zero.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// LineAmount is price*quantity of a single item.
func LineAmount(item models.LineItem) (decimal.Decimal, error) {
	if !item.Price.Valid || !item.Quantity.Valid {
		return decimal.Zero, ErrAmountMissing
	}
	return item.Price.Decimal.Mul(item.Quantity.Decimal), nil
}

// Total is the exact sum of price*quantity over all items. An order with no
// items totals zero.
func Total(order models.OrderRecord) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, item := range order.Items {
		amount, err := LineAmount(item)
		if err != nil {
			return decimal.Zero, err
		}
		sum = sum.Add(amount)
	}
	return sum, nil
}

// FormatTotal is Total fixed to two decimals, or NotAvailable.
func FormatTotal(order models.OrderRecord) string {
	total, err := Total(order)
	if err != nil {
		return NotAvailable
	}
	return FormatAmount(total)
}

func Build(order models.OrderRecord, source models.Source) Receipt {
	lines := make([]Line, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, buildLine(item))
	}

	return Receipt{
		OrderID:       order.OrderID,
		Username:      order.Username,
		Lines:         lines,
		Total:         FormatTotal(order),
		ItemCount:     len(order.Items),
		Source:        source,
		UsingDemoData: source == models.SourceFallback,
	}
}

func buildLine(item models.LineItem) Line {
	line := Line{
		ID:        item.ID,
		Name:      item.Name,
		UnitPrice: NotAvailable,
		Amount:    NotAvailable,
	}
	if item.Quantity.Valid {
		line.Quantity = item.Quantity.Decimal.String()
	}
	if item.Price.Valid {
		line.UnitPrice = FormatAmount(item.Price.Decimal)
	}
	if amount, err := LineAmount(item); err == nil {
		line.Amount = FormatAmount(amount)
	}
	return line
}
