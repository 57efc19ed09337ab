package domain

import "github.com/shopspring/decimal"

var oneHundred = decimal.NewFromInt(100)

// PurchaseOrderLine carries the inputs of the purchase-order totals formula.
// Discount is an absolute amount per line; TaxRate is a percentage applied to
// the taxable amount.
type PurchaseOrderLine struct {
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Discount  decimal.Decimal `json:"discount"`
	TaxRate   decimal.Decimal `json:"taxRate"`
}

// Subtotal returns quantity × unit price.
func (l *PurchaseOrderLine) Subtotal() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}

// Taxable returns the subtotal less the discount, floored at zero.
func (l *PurchaseOrderLine) Taxable() decimal.Decimal {
	taxable := l.Subtotal().Sub(l.Discount)
	if taxable.IsNegative() {
		return decimal.Zero
	}
	return taxable
}

// Tax returns the tax on the taxable amount.
func (l *PurchaseOrderLine) Tax() decimal.Decimal {
	return l.Taxable().Mul(l.TaxRate).Div(oneHundred)
}

// Total returns the taxable amount plus tax, floored at zero.
func (l *PurchaseOrderLine) Total() decimal.Decimal {
	total := l.Taxable().Add(l.Tax())
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

// PurchaseOrderTotals holds the order-level sums.
type PurchaseOrderTotals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// SumPurchaseOrderLines accumulates each component independently across
// lines. The total is the sum of line totals, not re-derived from the other
// sums, so per-line flooring cannot introduce drift between the figures shown
// per line and the figures shown for the order.
func SumPurchaseOrderLines(lines []PurchaseOrderLine) PurchaseOrderTotals {
	totals := PurchaseOrderTotals{
		Subtotal: decimal.Zero,
		Discount: decimal.Zero,
		Tax:      decimal.Zero,
		Total:    decimal.Zero,
	}
	for i := range lines {
		line := &lines[i]
		totals.Subtotal = totals.Subtotal.Add(line.Subtotal())
		totals.Discount = totals.Discount.Add(line.Discount)
		totals.Tax = totals.Tax.Add(line.Tax())
		totals.Total = totals.Total.Add(line.Total())
	}
	return totals
}
