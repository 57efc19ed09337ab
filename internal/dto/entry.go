package dto

import (
	"strings"

	"github.com/erpmobile/stock_journal_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

func wireEntryType(t domain.EntryType) string {
	return strings.ToLower(string(t))
}

func wireEntryStatus(s domain.EntryStatus) string {
	return strings.ToLower(string(s))
}

func wireMovementType(m domain.MovementType) string {
	return strings.ToLower(string(m))
}

// EntryItemResponse is one line of a server-confirmed entry. StockBefore and
// StockAfter appear once the entry is posted and are authoritative.
type EntryItemResponse struct {
	ItemID       string           `json:"itemID"`
	ProductID    string           `json:"productID"`
	ProductName  string           `json:"productName"`
	Unit         string           `json:"unit,omitempty"`
	MovementType string           `json:"movementType"`
	Quantity     decimal.Decimal  `json:"quantity"`
	Rate         decimal.Decimal  `json:"rate"`
	Amount       decimal.Decimal  `json:"amount"`
	BatchNumber  string           `json:"batchNumber,omitempty"`
	Remarks      string           `json:"remarks,omitempty"`
	StockBefore  *decimal.Decimal `json:"stockBefore,omitempty"`
	StockAfter   *decimal.Decimal `json:"stockAfter,omitempty"`
}

// EntryResponse is a server-confirmed journal entry. The capability flags
// come from the server and are never recomputed here.
type EntryResponse struct {
	EntryID         string              `json:"entryID"`
	EntryType       string              `json:"entryType"`
	JournalDate     string              `json:"journalDate"`
	ReferenceNumber string              `json:"referenceNumber,omitempty"`
	Narration       string              `json:"narration,omitempty"`
	Status          string              `json:"status"`
	CanEdit         bool                `json:"canEdit"`
	CanPost         bool                `json:"canPost"`
	CanCancel       bool                `json:"canCancel"`
	Items           []EntryItemResponse `json:"items"`
	TotalAmount     decimal.Decimal     `json:"totalAmount"`
}

// ToEntryResponse converts a domain.JournalEntry to its DTO.
func ToEntryResponse(entry *domain.JournalEntry) EntryResponse {
	items := make([]EntryItemResponse, len(entry.Items))
	for i := range entry.Items {
		item := &entry.Items[i]
		items[i] = EntryItemResponse{
			ItemID:       item.ItemID,
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			Unit:         item.Unit,
			MovementType: wireMovementType(item.MovementType),
			Quantity:     item.Quantity,
			Rate:         item.Rate,
			Amount:       item.Amount(),
			BatchNumber:  item.BatchNumber,
			Remarks:      item.Remarks,
			StockBefore:  item.StockBefore,
			StockAfter:   item.StockAfter,
		}
	}
	return EntryResponse{
		EntryID:         entry.EntryID,
		EntryType:       wireEntryType(entry.EntryType),
		JournalDate:     entry.JournalDate.Format(journalDateLayout),
		ReferenceNumber: entry.ReferenceNumber,
		Narration:       entry.Narration,
		Status:          wireEntryStatus(entry.Status),
		CanEdit:         entry.CanEdit,
		CanPost:         entry.CanPost,
		CanCancel:       entry.CanCancel,
		Items:           items,
		TotalAmount:     entry.TotalAmount(),
	}
}
