package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Product is a read-only row from the inventory query service. The catalog it
// belongs to is a snapshot: CurrentStock is advisory for projection only and
// the upstream server remains the final arbiter of whether a post succeeds.
type Product struct {
	ProductID    string          `json:"productID"`
	Name         string          `json:"name"`
	SKU          string          `json:"sku"`
	CurrentStock decimal.Decimal `json:"currentStock"`
	PurchaseRate decimal.Decimal `json:"purchaseRate"`
	Unit         string          `json:"unit"`
}

// Catalog is the product snapshot frozen into a composition session when it
// is opened. It is never invalidated mid-edit, even if stock changes
// server-side.
type Catalog []Product

// Lookup returns the product with the given ID, if present.
func (c Catalog) Lookup(productID string) (Product, bool) {
	for _, p := range c {
		if p.ProductID == productID {
			return p, true
		}
	}
	return Product{}, false
}

// Search returns products whose name or SKU contains the query,
// case-insensitively. An empty query matches nothing.
func (c Catalog) Search(query string) []Product {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	var matches []Product
	for _, p := range c {
		if strings.Contains(strings.ToLower(p.Name), query) || strings.Contains(strings.ToLower(p.SKU), query) {
			matches = append(matches, p)
		}
	}
	return matches
}

// Merge adds products the catalog has not seen yet. Products already in the
// snapshot keep their original stock figures so projections stay stable for
// the duration of the session.
func (c Catalog) Merge(products []Product) Catalog {
	merged := c
	for _, p := range products {
		if _, found := merged.Lookup(p.ProductID); !found {
			merged = append(merged, p)
		}
	}
	return merged
}
