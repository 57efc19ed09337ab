package erp

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/erpmobile/stock_journal_engine/internal/core/domain"
)

// The upstream API speaks snake_case with lowercase enum values and
// YYYY-MM-DD journal dates. Domain constants are the uppercase forms, so the
// enum mapping is a case fold in both directions.

const wireDateLayout = "2006-01-02"

type wireSubmissionItem struct {
	ProductID    string          `json:"product_id"`
	MovementType string          `json:"movement_type"`
	Quantity     decimal.Decimal `json:"quantity"`
	Rate         decimal.Decimal `json:"rate"`
	BatchNumber  string          `json:"batch_number,omitempty"`
	Remarks      string          `json:"remarks,omitempty"`
}

type wireSubmission struct {
	EntryType       string               `json:"entry_type"`
	JournalDate     string               `json:"journal_date"`
	ReferenceNumber string               `json:"reference_number,omitempty"`
	Narration       string               `json:"narration,omitempty"`
	Items           []wireSubmissionItem `json:"items"`
	Action          string               `json:"action"`
}

type wireEntryItem struct {
	ItemID       string           `json:"item_id"`
	ProductID    string           `json:"product_id"`
	ProductName  string           `json:"product_name"`
	Unit         string           `json:"unit"`
	MovementType string           `json:"movement_type"`
	Quantity     decimal.Decimal  `json:"quantity"`
	Rate         decimal.Decimal  `json:"rate"`
	BatchNumber  string           `json:"batch_number"`
	Remarks      string           `json:"remarks"`
	StockBefore  *decimal.Decimal `json:"stock_before,omitempty"`
	StockAfter   *decimal.Decimal `json:"stock_after,omitempty"`
}

type wireEntry struct {
	EntryID         string          `json:"entry_id"`
	EntryType       string          `json:"entry_type"`
	JournalDate     string          `json:"journal_date"`
	ReferenceNumber string          `json:"reference_number"`
	Narration       string          `json:"narration"`
	Status          string          `json:"status"`
	CanEdit         bool            `json:"can_edit"`
	CanPost         bool            `json:"can_post"`
	CanCancel       bool            `json:"can_cancel"`
	Items           []wireEntryItem `json:"items"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type wireProduct struct {
	ProductID    string          `json:"product_id"`
	Name         string          `json:"name"`
	SKU          string          `json:"sku"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	PurchaseRate decimal.Decimal `json:"purchase_rate"`
	Unit         string          `json:"unit"`
}

type wireErrorResponse struct {
	Error string `json:"error"`
}

func toWireSubmission(submission domain.EntrySubmission) wireSubmission {
	w := wireSubmission{
		EntryType:       strings.ToLower(string(submission.EntryType)),
		JournalDate:     submission.JournalDate.Format(wireDateLayout),
		ReferenceNumber: submission.ReferenceNumber,
		Narration:       submission.Narration,
		Items:           make([]wireSubmissionItem, 0, len(submission.Items)),
		Action:          string(submission.Action),
	}
	for _, item := range submission.Items {
		w.Items = append(w.Items, wireSubmissionItem{
			ProductID:    item.ProductID,
			MovementType: strings.ToLower(string(item.MovementType)),
			Quantity:     item.Quantity,
			Rate:         item.Rate,
			BatchNumber:  item.BatchNumber,
			Remarks:      item.Remarks,
		})
	}
	return w
}

func fromWireEntry(w *wireEntry) (*domain.JournalEntry, error) {
	journalDate, err := time.Parse(wireDateLayout, w.JournalDate)
	if err != nil {
		return nil, err
	}
	entry := &domain.JournalEntry{
		EntryID:         w.EntryID,
		EntryType:       domain.EntryType(strings.ToUpper(w.EntryType)),
		JournalDate:     journalDate,
		ReferenceNumber: w.ReferenceNumber,
		Narration:       w.Narration,
		Status:          domain.EntryStatus(strings.ToUpper(w.Status)),
		CanEdit:         w.CanEdit,
		CanPost:         w.CanPost,
		CanCancel:       w.CanCancel,
		Items:           make([]domain.EntryItem, 0, len(w.Items)),
		CreatedAt:       w.CreatedAt,
		UpdatedAt:       w.UpdatedAt,
	}
	for _, item := range w.Items {
		entry.Items = append(entry.Items, domain.EntryItem{
			ItemID:       item.ItemID,
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			Unit:         item.Unit,
			MovementType: domain.MovementType(strings.ToUpper(item.MovementType)),
			Quantity:     item.Quantity,
			Rate:         item.Rate,
			BatchNumber:  item.BatchNumber,
			Remarks:      item.Remarks,
			StockBefore:  item.StockBefore,
			StockAfter:   item.StockAfter,
		})
	}
	return entry, nil
}

func fromWireProducts(wires []wireProduct) []domain.Product {
	products := make([]domain.Product, 0, len(wires))
	for _, w := range wires {
		products = append(products, domain.Product{
			ProductID:    w.ProductID,
			Name:         w.Name,
			SKU:          w.SKU,
			CurrentStock: w.CurrentStock,
			PurchaseRate: w.PurchaseRate,
			Unit:         w.Unit,
		})
	}
	return products
}
