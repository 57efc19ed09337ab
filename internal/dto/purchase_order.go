package dto

import (
	"github.com/erpmobile/stock_journal_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PurchaseOrderLineRequest is one line of a totals preview.
type PurchaseOrderLineRequest struct {
	Quantity  decimal.Decimal `json:"quantity" binding:"required,dgte0"`
	UnitPrice decimal.Decimal `json:"unitPrice" binding:"required,dgte0"`
	Discount  decimal.Decimal `json:"discount" binding:"dgte0"`
	TaxRate   decimal.Decimal `json:"taxRate" binding:"dgte0"`
}

// PurchaseOrderPreviewRequest asks for order totals over a set of lines.
type PurchaseOrderPreviewRequest struct {
	Lines []PurchaseOrderLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// DomainLines converts the request lines to domain values.
func (r *PurchaseOrderPreviewRequest) DomainLines() []domain.PurchaseOrderLine {
	lines := make([]domain.PurchaseOrderLine, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = domain.PurchaseOrderLine{
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Discount:  l.Discount,
			TaxRate:   l.TaxRate,
		}
	}
	return lines
}

// PurchaseOrderLineResponse is one previewed line with its derived figures.
type PurchaseOrderLineResponse struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Taxable  decimal.Decimal `json:"taxable"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// PurchaseOrderPreviewResponse carries per-line figures and the order sums.
type PurchaseOrderPreviewResponse struct {
	Lines  []PurchaseOrderLineResponse `json:"lines"`
	Totals PurchaseOrderTotalsResponse `json:"totals"`
}

// PurchaseOrderTotalsResponse is the order-level accumulation.
type PurchaseOrderTotalsResponse struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// ToPurchaseOrderPreviewResponse computes the preview for the given lines.
func ToPurchaseOrderPreviewResponse(lines []domain.PurchaseOrderLine) PurchaseOrderPreviewResponse {
	lineResponses := make([]PurchaseOrderLineResponse, len(lines))
	for i := range lines {
		line := &lines[i]
		lineResponses[i] = PurchaseOrderLineResponse{
			Subtotal: line.Subtotal(),
			Taxable:  line.Taxable(),
			Tax:      line.Tax(),
			Total:    line.Total(),
		}
	}
	totals := domain.SumPurchaseOrderLines(lines)
	return PurchaseOrderPreviewResponse{
		Lines: lineResponses,
		Totals: PurchaseOrderTotalsResponse{
			Subtotal: totals.Subtotal,
			Discount: totals.Discount,
			Tax:      totals.Tax,
			Total:    totals.Total,
		},
	}
}
