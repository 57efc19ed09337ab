package domain

import (
	"fmt"
	"time"

	"github.com/erpmobile/stock_journal_engine/internal/apperrors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryTotals summarises a draft entry. ItemCount counts only lines with a
// selected product; lines without one contribute nothing. Defined for zero
// lines as {0, 0}.
type EntryTotals struct {
	ItemCount   int             `json:"itemCount"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// JournalEntryBuilder owns the ordered movement lines and header fields of
// one draft entry. It is a plain value: every operation mutates the builder
// in place and derived figures are recomputed on read, so it can be
// serialized into a composition session between requests.
//
// All mutations are rejected once Status is no longer Draft. Posted and
// Cancelled entries are immutable client-side.
type JournalEntryBuilder struct {
	EntryID         string            `json:"entryID"` // set when editing an existing draft
	EntryType       EntryType         `json:"entryType"`
	JournalDate     time.Time         `json:"journalDate"` // zero value means not set
	ReferenceNumber string            `json:"referenceNumber"`
	Narration       string            `json:"narration"`
	Status          EntryStatus       `json:"status"`
	Lines           []MovementLine    `json:"lines"`
	Transfer        *TransferBalancer `json:"transfer,omitempty"` // set iff EntryType == Transfer
}

// NewJournalEntryBuilder creates an empty draft builder for the given type.
func NewJournalEntryBuilder(entryType EntryType) *JournalEntryBuilder {
	b := &JournalEntryBuilder{
		EntryType: entryType,
		Status:    Draft,
	}
	if entryType == Transfer {
		b.Transfer = &TransferBalancer{}
	}
	return b
}

// NewBuilderFromEntry rebuilds a draft builder from a server-confirmed entry
// so an existing draft can be edited. StockBefore comes from the session's
// catalog snapshot, not from the entry: drafts carry no authoritative stock
// figures.
func NewBuilderFromEntry(entry *JournalEntry, catalog Catalog) *JournalEntryBuilder {
	b := NewJournalEntryBuilder(entry.EntryType)
	b.EntryID = entry.EntryID
	b.JournalDate = entry.JournalDate
	b.ReferenceNumber = entry.ReferenceNumber
	b.Narration = entry.Narration
	b.Status = entry.Status
	for i := range entry.Items {
		item := &entry.Items[i]
		line := MovementLine{
			LineID:       uuid.NewString(),
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			Unit:         item.Unit,
			MovementType: item.MovementType,
			Quantity:     item.Quantity,
			Rate:         item.Rate,
			BatchNumber:  item.BatchNumber,
			Remarks:      item.Remarks,
		}
		if product, found := catalog.Lookup(item.ProductID); found {
			line.SKU = product.SKU
			line.StockBefore = product.CurrentStock
		}
		if b.Transfer != nil {
			if item.MovementType == In {
				b.Transfer.ToLines = append(b.Transfer.ToLines, line)
			} else {
				b.Transfer.FromLines = append(b.Transfer.FromLines, line)
			}
		} else {
			b.Lines = append(b.Lines, line)
		}
	}
	return b
}

func (b *JournalEntryBuilder) ensureMutable() error {
	if b.Status != Draft {
		return fmt.Errorf("%w: status is %s", apperrors.ErrEntryImmutable, b.Status)
	}
	return nil
}

// AddLine appends an empty movement line with a fresh line ID and returns
// that ID. Empty lines are legal transient state; nothing is validated here.
// For transfer entries use AddTransferLine instead.
func (b *JournalEntryBuilder) AddLine() (string, error) {
	if err := b.ensureMutable(); err != nil {
		return "", err
	}
	if b.Transfer != nil {
		return "", fmt.Errorf("%w: transfer entries require a side, use AddTransferLine", apperrors.ErrValidation)
	}
	line := MovementLine{LineID: uuid.NewString()}
	b.Lines = append(b.Lines, line)
	return line.LineID, nil
}

// AddTransferLine appends an empty line to the FROM or TO side of a transfer.
// The movement type is fixed by the side: FROM lines move stock out, TO lines
// move stock in.
func (b *JournalEntryBuilder) AddTransferLine(side TransferSide) (string, error) {
	if err := b.ensureMutable(); err != nil {
		return "", err
	}
	if b.Transfer == nil {
		return "", fmt.Errorf("%w: %s entries have no transfer sides", apperrors.ErrValidation, b.EntryType)
	}
	return b.Transfer.addLine(side)
}

// RemoveLine removes the line wherever it lives. Removing the last line added
// to an otherwise-empty builder returns it to its previous state.
func (b *JournalEntryBuilder) RemoveLine(lineID string) error {
	if err := b.ensureMutable(); err != nil {
		return err
	}
	for i := range b.Lines {
		if b.Lines[i].LineID == lineID {
			b.Lines = append(b.Lines[:i], b.Lines[i+1:]...)
			return nil
		}
	}
	if b.Transfer != nil && b.Transfer.removeLine(lineID) {
		return nil
	}
	return fmt.Errorf("%w: line %s", apperrors.ErrNotFound, lineID)
}

// Line returns a pointer to the line with the given ID, searching the flat
// collection and both transfer sides.
func (b *JournalEntryBuilder) Line(lineID string) (*MovementLine, bool) {
	for i := range b.Lines {
		if b.Lines[i].LineID == lineID {
			return &b.Lines[i], true
		}
	}
	if b.Transfer != nil {
		return b.Transfer.line(lineID)
	}
	return nil, false
}

// allLines returns every line in submission order: the flat collection for
// ordinary entries, FROM then TO for transfers.
func (b *JournalEntryBuilder) allLines() []MovementLine {
	if b.Transfer != nil {
		return b.Transfer.MergedLines()
	}
	return b.Lines
}

// SetJournalDate sets the entry date.
func (b *JournalEntryBuilder) SetJournalDate(date time.Time) error {
	if err := b.ensureMutable(); err != nil {
		return err
	}
	b.JournalDate = date
	return nil
}

// SetReferenceNumber sets the optional reference number.
func (b *JournalEntryBuilder) SetReferenceNumber(ref string) error {
	if err := b.ensureMutable(); err != nil {
		return err
	}
	b.ReferenceNumber = ref
	return nil
}

// SetNarration sets the optional narration.
func (b *JournalEntryBuilder) SetNarration(narration string) error {
	if err := b.ensureMutable(); err != nil {
		return err
	}
	b.Narration = narration
	return nil
}

// SetLineProduct selects a product on a line from the catalog snapshot. An
// unknown product ID leaves the product fields blank; validation surfaces the
// problem later.
func (b *JournalEntryBuilder) SetLineProduct(lineID string, catalog Catalog, productID string) error {
	if err := b.ensureMutable(); err != nil {
		return err
	}
	line, found := b.Line(lineID)
	if !found {
		return fmt.Errorf("%w: line %s", apperrors.ErrNotFound, lineID)
	}
	line.SetProduct(catalog, productID)
	return nil
}

// SetLineQuantity sets the quantity on a line. Amount and projected stock
// follow automatically because they are derived.
func (b *JournalEntryBuilder) SetLineQuantity(lineID string, quantity decimal.Decimal) error {
	if err := b.ensureMutable(); err != nil {
		return err
	}
	line, found := b.Line(lineID)
	if !found {
		return fmt.Errorf("%w: line %s", apperrors.ErrNotFound, lineID)
	}
	line.Quantity = quantity
	return nil
}

// SetLineRate sets the rate on a line, overriding the purchase-rate default.
func (b *JournalEntryBuilder) SetLineRate(lineID string, rate decimal.Decimal) error {
	if err := b.ensureMutable(); err != nil {
		return err
	}
	line, found := b.Line(lineID)
	if !found {
		return fmt.Errorf("%w: line %s", apperrors.ErrNotFound, lineID)
	}
	line.Rate = rate
	return nil
}

// SetLineMovementType sets the movement direction on a line. Transfer lines
// reject this: their direction is fixed by the side they were added to.
func (b *JournalEntryBuilder) SetLineMovementType(lineID string, movementType MovementType) error {
	if err := b.ensureMutable(); err != nil {
		return err
	}
	if b.Transfer != nil {
		if _, found := b.Transfer.line(lineID); found {
			return fmt.Errorf("%w: transfer line direction is fixed by its side", apperrors.ErrValidation)
		}
	}
	line, found := b.Line(lineID)
	if !found {
		return fmt.Errorf("%w: line %s", apperrors.ErrNotFound, lineID)
	}
	line.MovementType = movementType
	return nil
}

// SetLineBatchNumber sets the optional batch number on a line.
func (b *JournalEntryBuilder) SetLineBatchNumber(lineID string, batchNumber string) error {
	if err := b.ensureMutable(); err != nil {
		return err
	}
	line, found := b.Line(lineID)
	if !found {
		return fmt.Errorf("%w: line %s", apperrors.ErrNotFound, lineID)
	}
	line.BatchNumber = batchNumber
	return nil
}

// SetLineRemarks sets the optional remarks on a line.
func (b *JournalEntryBuilder) SetLineRemarks(lineID string, remarks string) error {
	if err := b.ensureMutable(); err != nil {
		return err
	}
	line, found := b.Line(lineID)
	if !found {
		return fmt.Errorf("%w: line %s", apperrors.ErrNotFound, lineID)
	}
	line.Remarks = remarks
	return nil
}

// Totals returns the item count and amount sum over lines with a selected
// product.
func (b *JournalEntryBuilder) Totals() EntryTotals {
	totals := EntryTotals{TotalAmount: decimal.Zero}
	lines := b.allLines()
	for i := range lines {
		if !lines[i].HasProduct() {
			continue
		}
		totals.ItemCount++
		totals.TotalAmount = totals.TotalAmount.Add(lines[i].Amount())
	}
	return totals
}

// Submission builds the upstream payload from the draft. Lines without a
// selected product are transient editing state and are dropped; transfer
// sides merge FROM then TO, each line tagged with the movement type of its
// side.
func (b *JournalEntryBuilder) Submission(action SubmitAction) EntrySubmission {
	submission := EntrySubmission{
		EntryType:       b.EntryType,
		JournalDate:     b.JournalDate,
		ReferenceNumber: b.ReferenceNumber,
		Narration:       b.Narration,
		Action:          action,
	}
	for _, line := range b.allLines() {
		if !line.HasProduct() {
			continue
		}
		submission.Items = append(submission.Items, SubmissionItem{
			ProductID:    line.ProductID,
			MovementType: line.MovementType,
			Quantity:     line.Quantity,
			Rate:         line.Rate,
			BatchNumber:  line.BatchNumber,
			Remarks:      line.Remarks,
		})
	}
	return submission
}

// Validate collects every violation in the draft: header errors first, then
// line errors in line order (FROM side before TO side for transfers), then
// the transfer balance check. It is pure, so calling it twice on an
// unmodified builder yields an identical error set. A nil result means the
// entry is ready for submission.
func (b *JournalEntryBuilder) Validate() ValidationErrors {
	var errs ValidationErrors

	if b.JournalDate.IsZero() {
		errs = append(errs, missingFieldError("journal_date", "journal date is required"))
	}
	if b.Totals().ItemCount == 0 {
		errs = append(errs, missingFieldError("items", "at least one line with a selected product is required"))
	}

	if b.Transfer != nil {
		errs = append(errs, b.Transfer.Validate()...)
		return errs
	}

	// The outbound stock ceiling applies to consumption and adjustment
	// entries. Production entries may consume components below the snapshot
	// figure; the server decides.
	enforceCeiling := b.EntryType == Consumption || b.EntryType == Adjustment
	errs = append(errs, validateLines(b.Lines, enforceCeiling)...)
	return errs
}
