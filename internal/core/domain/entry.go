package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType indicates the business meaning of a stock journal entry.
type EntryType string

const (
	Consumption EntryType = "CONSUMPTION"
	Production  EntryType = "PRODUCTION"
	Adjustment  EntryType = "ADJUSTMENT"
	Transfer    EntryType = "TRANSFER"
)

// Valid reports whether t is one of the known entry types.
func (t EntryType) Valid() bool {
	switch t {
	case Consumption, Production, Adjustment, Transfer:
		return true
	}
	return false
}

// EntryStatus is the lifecycle state of a journal entry. Posted and Cancelled
// are terminal and immutable client-side; only drafts accept mutation.
type EntryStatus string

const (
	Draft     EntryStatus = "DRAFT"
	Posted    EntryStatus = "POSTED"
	Cancelled EntryStatus = "CANCELLED"
)

// SubmitAction selects what the server does with a submitted entry.
type SubmitAction string

const (
	ActionSave        SubmitAction = "save"
	ActionSaveAndPost SubmitAction = "save_and_post"
)

// SubmissionItem is one movement line of an outgoing payload. Line IDs are
// client-side bookkeeping and are deliberately absent.
type SubmissionItem struct {
	ProductID    string          `json:"productID"`
	MovementType MovementType    `json:"movementType"`
	Quantity     decimal.Decimal `json:"quantity"`
	Rate         decimal.Decimal `json:"rate"`
	BatchNumber  string          `json:"batchNumber,omitempty"`
	Remarks      string          `json:"remarks,omitempty"`
}

// EntrySubmission is a validated entry payload bound for the upstream API.
type EntrySubmission struct {
	EntryType       EntryType        `json:"entryType"`
	JournalDate     time.Time        `json:"journalDate"`
	ReferenceNumber string           `json:"referenceNumber,omitempty"`
	Narration       string           `json:"narration,omitempty"`
	Items           []SubmissionItem `json:"items"`
	Action          SubmitAction     `json:"action"`
}

// EntryItem is one movement line of a server-confirmed entry. StockBefore and
// StockAfter are only populated once the entry is posted; they are
// authoritative and supersede any client-side projection.
type EntryItem struct {
	ItemID       string           `json:"itemID"`
	ProductID    string           `json:"productID"`
	ProductName  string           `json:"productName"`
	Unit         string           `json:"unit"`
	MovementType MovementType     `json:"movementType"`
	Quantity     decimal.Decimal  `json:"quantity"`
	Rate         decimal.Decimal  `json:"rate"`
	BatchNumber  string           `json:"batchNumber"`
	Remarks      string           `json:"remarks"`
	StockBefore  *decimal.Decimal `json:"stockBefore,omitempty"`
	StockAfter   *decimal.Decimal `json:"stockAfter,omitempty"`
}

// Amount returns quantity × rate for the item.
func (i *EntryItem) Amount() decimal.Decimal {
	return i.Quantity.Mul(i.Rate)
}

// JournalEntry is an entry as confirmed by the upstream ERP API. The
// capability flags are server-computed ground truth: the engine never
// recomputes them from status, so client and server business rules cannot
// drift apart.
type JournalEntry struct {
	EntryID         string      `json:"entryID"`
	EntryType       EntryType   `json:"entryType"`
	JournalDate     time.Time   `json:"journalDate"`
	ReferenceNumber string      `json:"referenceNumber"`
	Narration       string      `json:"narration"`
	Status          EntryStatus `json:"status"`
	CanEdit         bool        `json:"canEdit"`
	CanPost         bool        `json:"canPost"`
	CanCancel       bool        `json:"canCancel"`
	Items           []EntryItem `json:"items"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// TotalAmount sums the item amounts.
func (e *JournalEntry) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for i := range e.Items {
		total = total.Add(e.Items[i].Amount())
	}
	return total
}
