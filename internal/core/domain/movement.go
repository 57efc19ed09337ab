package domain

import "github.com/shopspring/decimal"

// MovementType indicates whether a movement line adds to or removes from stock.
type MovementType string

const (
	In  MovementType = "IN"
	Out MovementType = "OUT"
)

// MovementLine is a single product movement within a journal entry. LineID is
// client-assigned and never sent upstream. Amount and projected stock are
// derived, never stored: they are recomputed from the current field values on
// every read so no mutation can leave them stale.
type MovementLine struct {
	LineID       string          `json:"lineID"`
	ProductID    string          `json:"productID"` // empty until a product is selected
	ProductName  string          `json:"productName"`
	SKU          string          `json:"sku"`
	Unit         string          `json:"unit"`
	MovementType MovementType    `json:"movementType"` // empty until chosen
	Quantity     decimal.Decimal `json:"quantity"`
	Rate         decimal.Decimal `json:"rate"`
	BatchNumber  string          `json:"batchNumber"`
	Remarks      string          `json:"remarks"`
	StockBefore  decimal.Decimal `json:"stockBefore"` // catalog stock at selection time
}

// HasProduct reports whether a product has been selected for this line.
// Lines without a product are legal transient state and contribute nothing to
// totals or validation.
func (l *MovementLine) HasProduct() bool {
	return l.ProductID != ""
}

// Amount returns quantity × rate.
func (l *MovementLine) Amount() decimal.Decimal {
	return l.Quantity.Mul(l.Rate)
}

// StockAfter projects the stock level after this movement. The projection is
// for display only; the server recomputes authoritative figures on post.
func (l *MovementLine) StockAfter() decimal.Decimal {
	switch l.MovementType {
	case In:
		return l.StockBefore.Add(l.Quantity)
	case Out:
		return l.StockBefore.Sub(l.Quantity)
	default:
		return l.StockBefore
	}
}

// SetProduct selects a product from the catalog. An unknown ID clears the
// product fields and is surfaced later by validation, not here. On success
// the rate defaults to the purchase rate (the user may override it) and
// StockBefore is taken from the catalog snapshot.
func (l *MovementLine) SetProduct(catalog Catalog, productID string) {
	product, found := catalog.Lookup(productID)
	if !found {
		l.ProductID = ""
		l.ProductName = ""
		l.SKU = ""
		l.Unit = ""
		l.StockBefore = decimal.Zero
		return
	}
	l.ProductID = product.ProductID
	l.ProductName = product.Name
	l.SKU = product.SKU
	l.Unit = product.Unit
	l.Rate = product.PurchaseRate
	l.StockBefore = product.CurrentStock
}
