package dto

import (
	"github.com/erpmobile/stock_journal_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ProductResponse defines the data returned for a catalog product.
type ProductResponse struct {
	ProductID    string          `json:"productID"`
	Name         string          `json:"name"`
	SKU          string          `json:"sku"`
	CurrentStock decimal.Decimal `json:"currentStock"`
	PurchaseRate decimal.Decimal `json:"purchaseRate"`
	Unit         string          `json:"unit"`
}

// ToProductResponse converts a domain.Product to ProductResponse.
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID:    p.ProductID,
		Name:         p.Name,
		SKU:          p.SKU,
		CurrentStock: p.CurrentStock,
		PurchaseRate: p.PurchaseRate,
		Unit:         p.Unit,
	}
}

// ToProductResponses converts a slice of domain.Product to DTOs.
func ToProductResponses(products []domain.Product) []ProductResponse {
	res := make([]ProductResponse, len(products))
	for i := range products {
		res[i] = ToProductResponse(&products[i])
	}
	return res
}
