package dto

import (
	"fmt"
	"time"

	"github.com/erpmobile/stock_journal_engine/internal/apperrors"
	"github.com/erpmobile/stock_journal_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// journalDateLayout is the wire format for entry dates.
const journalDateLayout = "2006-01-02"

// entryTypeFromWire maps the lowercase wire value to the domain constant.
var entryTypeFromWire = map[string]domain.EntryType{
	"consumption": domain.Consumption,
	"production":  domain.Production,
	"adjustment":  domain.Adjustment,
	"transfer":    domain.Transfer,
}

var movementTypeFromWire = map[string]domain.MovementType{
	"in":  domain.In,
	"out": domain.Out,
}

var transferSideFromWire = map[string]domain.TransferSide{
	"from": domain.SideFrom,
	"to":   domain.SideTo,
}

// OpenSessionRequest starts a composition session. EntryID is set when
// editing an existing draft.
type OpenSessionRequest struct {
	EntryType string `json:"entryType" binding:"required,oneof=consumption production adjustment transfer"`
	EntryID   string `json:"entryID"`
}

// DomainEntryType returns the domain entry type for the request.
func (r *OpenSessionRequest) DomainEntryType() domain.EntryType {
	return entryTypeFromWire[r.EntryType]
}

// UpdateHeaderRequest updates entry-level fields. Pointers distinguish
// fields not provided from zero-value updates.
type UpdateHeaderRequest struct {
	JournalDate     *string `json:"journalDate"` // YYYY-MM-DD
	ReferenceNumber *string `json:"referenceNumber"`
	Narration       *string `json:"narration"`
}

// ParseJournalDate parses the journal date, if provided.
func (r *UpdateHeaderRequest) ParseJournalDate() (*time.Time, error) {
	if r.JournalDate == nil {
		return nil, nil
	}
	parsed, err := time.Parse(journalDateLayout, *r.JournalDate)
	if err != nil {
		return nil, fmt.Errorf("%w: journal date must be YYYY-MM-DD", apperrors.ErrValidation)
	}
	return &parsed, nil
}

// AddLineRequest appends an empty movement line. Side is required for
// transfer entries and must be absent otherwise.
type AddLineRequest struct {
	Side string `json:"side" binding:"omitempty,oneof=from to"`
}

// DomainSide returns the transfer side, or "" when none was given.
func (r *AddLineRequest) DomainSide() domain.TransferSide {
	return transferSideFromWire[r.Side]
}

// UpdateLineRequest carries last-write-wins field mutations for one line.
type UpdateLineRequest struct {
	ProductID    *string          `json:"productID"`
	MovementType *string          `json:"movementType" binding:"omitempty,oneof=in out"`
	Quantity     *decimal.Decimal `json:"quantity" binding:"omitempty,dgte0"`
	Rate         *decimal.Decimal `json:"rate" binding:"omitempty,dgte0"`
	BatchNumber  *string          `json:"batchNumber"`
	Remarks      *string          `json:"remarks"`
}

// DomainMovementType returns the movement type, or "" when none was given.
func (r *UpdateLineRequest) DomainMovementType() domain.MovementType {
	if r.MovementType == nil {
		return ""
	}
	return movementTypeFromWire[*r.MovementType]
}

// SubmitRequest chooses what the server does with the validated entry.
type SubmitRequest struct {
	Action string `json:"action" binding:"required,oneof=save save_and_post"`
}

// DomainAction returns the submit action for the request.
func (r *SubmitRequest) DomainAction() domain.SubmitAction {
	return domain.SubmitAction(r.Action)
}

// MovementLineResponse is one line of a session, with the derived figures the
// form renders next to it.
type MovementLineResponse struct {
	LineID         string          `json:"lineID"`
	ProductID      string          `json:"productID,omitempty"`
	ProductName    string          `json:"productName,omitempty"`
	SKU            string          `json:"sku,omitempty"`
	Unit           string          `json:"unit,omitempty"`
	MovementType   string          `json:"movementType,omitempty"`
	Quantity       decimal.Decimal `json:"quantity"`
	Rate           decimal.Decimal `json:"rate"`
	BatchNumber    string          `json:"batchNumber,omitempty"`
	Remarks        string          `json:"remarks,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	StockBefore    decimal.Decimal `json:"stockBefore"`
	ProjectedStock decimal.Decimal `json:"projectedStock"`
}

// TotalsResponse is the entry-level summary.
type TotalsResponse struct {
	ItemCount   int             `json:"itemCount"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// SessionResponse is the full state of a composition session. For transfer
// entries the lines are grouped by side; otherwise Lines is used.
type SessionResponse struct {
	SessionID       string                 `json:"sessionID"`
	EntryID         string                 `json:"entryID,omitempty"`
	EntryType       string                 `json:"entryType"`
	JournalDate     string                 `json:"journalDate,omitempty"`
	ReferenceNumber string                 `json:"referenceNumber,omitempty"`
	Narration       string                 `json:"narration,omitempty"`
	Status          string                 `json:"status"`
	Lines           []MovementLineResponse `json:"lines,omitempty"`
	FromLines       []MovementLineResponse `json:"fromLines,omitempty"`
	ToLines         []MovementLineResponse `json:"toLines,omitempty"`
	Balanced        *bool                  `json:"balanced,omitempty"` // transfers only
	Totals          TotalsResponse         `json:"totals"`
}

// ToMovementLineResponse converts a domain.MovementLine to its DTO.
func ToMovementLineResponse(line *domain.MovementLine) MovementLineResponse {
	return MovementLineResponse{
		LineID:         line.LineID,
		ProductID:      line.ProductID,
		ProductName:    line.ProductName,
		SKU:            line.SKU,
		Unit:           line.Unit,
		MovementType:   wireMovementType(line.MovementType),
		Quantity:       line.Quantity,
		Rate:           line.Rate,
		BatchNumber:    line.BatchNumber,
		Remarks:        line.Remarks,
		Amount:         line.Amount(),
		StockBefore:    line.StockBefore,
		ProjectedStock: line.StockAfter(),
	}
}

func toMovementLineResponses(lines []domain.MovementLine) []MovementLineResponse {
	if len(lines) == 0 {
		return nil
	}
	res := make([]MovementLineResponse, len(lines))
	for i := range lines {
		res[i] = ToMovementLineResponse(&lines[i])
	}
	return res
}

// ToSessionResponse converts a composition session to its DTO.
func ToSessionResponse(session *domain.CompositionSession) SessionResponse {
	builder := session.Builder
	totals := builder.Totals()
	res := SessionResponse{
		SessionID:       session.SessionID,
		EntryID:         builder.EntryID,
		EntryType:       wireEntryType(builder.EntryType),
		ReferenceNumber: builder.ReferenceNumber,
		Narration:       builder.Narration,
		Status:          wireEntryStatus(builder.Status),
		Totals: TotalsResponse{
			ItemCount:   totals.ItemCount,
			TotalAmount: totals.TotalAmount,
		},
	}
	if !builder.JournalDate.IsZero() {
		res.JournalDate = builder.JournalDate.Format(journalDateLayout)
	}
	if builder.Transfer != nil {
		res.FromLines = toMovementLineResponses(builder.Transfer.FromLines)
		res.ToLines = toMovementLineResponses(builder.Transfer.ToLines)
		balanced := builder.Transfer.IsBalanced()
		res.Balanced = &balanced
	} else {
		res.Lines = toMovementLineResponses(builder.Lines)
	}
	return res
}

// ValidationResponse carries the full collected error list.
type ValidationResponse struct {
	Valid  bool                     `json:"valid"`
	Errors []domain.ValidationError `json:"errors"`
}

// ToValidationResponse converts a validation result to its DTO.
func ToValidationResponse(errs domain.ValidationErrors) ValidationResponse {
	if len(errs) == 0 {
		return ValidationResponse{Valid: true, Errors: []domain.ValidationError{}}
	}
	return ValidationResponse{Valid: false, Errors: errs}
}
