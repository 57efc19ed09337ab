package domain

import (
	"fmt"
	"strings"

	"github.com/erpmobile/stock_journal_engine/internal/apperrors"
	"github.com/shopspring/decimal"
)

// ValidationKind classifies a local, pre-submission validation failure.
type ValidationKind string

const (
	MissingField       ValidationKind = "MISSING_FIELD"
	InvalidQuantity    ValidationKind = "INVALID_QUANTITY"
	InvalidRate        ValidationKind = "INVALID_RATE"
	InsufficientStock  ValidationKind = "INSUFFICIENT_STOCK"
	UnbalancedTransfer ValidationKind = "UNBALANCED_TRANSFER"
)

// ValidationError is one collected violation. The kind-specific fields are
// only set for the kinds that carry them.
type ValidationError struct {
	Kind    ValidationKind `json:"kind"`
	Field   string         `json:"field,omitempty"`
	LineID  string         `json:"lineID,omitempty"`
	Message string         `json:"message"`

	// InsufficientStock details
	ProductName string           `json:"productName,omitempty"`
	Available   *decimal.Decimal `json:"available,omitempty"`
	Requested   *decimal.Decimal `json:"requested,omitempty"`
	Unit        string           `json:"unit,omitempty"`

	// UnbalancedTransfer details
	FromTotal *decimal.Decimal `json:"fromTotal,omitempty"`
	ToTotal   *decimal.Decimal `json:"toTotal,omitempty"`
}

func (e ValidationError) Error() string {
	return e.Message
}

// ValidationErrors is the full list of violations found in one validation
// pass. Validation never aborts on the first failure; callers receive every
// violation so a complete list can be presented.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, len(ve))
	for i, e := range ve {
		msgs[i] = e.Message
	}
	return fmt.Sprintf("%d validation error(s): %s", len(ve), strings.Join(msgs, "; "))
}

// Unwrap lets callers match the collection with errors.Is(err, apperrors.ErrValidation).
func (ve ValidationErrors) Unwrap() error {
	return apperrors.ErrValidation
}

// HasKind reports whether any collected error is of the given kind.
func (ve ValidationErrors) HasKind(kind ValidationKind) bool {
	for _, e := range ve {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

func missingFieldError(field, message string) ValidationError {
	return ValidationError{Kind: MissingField, Field: field, Message: message}
}

func missingLineFieldError(lineID, field, message string) ValidationError {
	return ValidationError{Kind: MissingField, LineID: lineID, Field: field, Message: message}
}

func invalidQuantityError(line *MovementLine) ValidationError {
	return ValidationError{
		Kind:    InvalidQuantity,
		LineID:  line.LineID,
		Message: fmt.Sprintf("quantity must be greater than zero for %s", line.ProductName),
	}
}

func invalidRateError(line *MovementLine) ValidationError {
	return ValidationError{
		Kind:    InvalidRate,
		LineID:  line.LineID,
		Message: fmt.Sprintf("rate must be greater than zero for %s", line.ProductName),
	}
}

func insufficientStockError(line *MovementLine) ValidationError {
	available := line.StockBefore
	requested := line.Quantity
	return ValidationError{
		Kind:        InsufficientStock,
		LineID:      line.LineID,
		Message:     fmt.Sprintf("insufficient stock for %s: %s %s available, %s requested", line.ProductName, available.String(), line.Unit, requested.String()),
		ProductName: line.ProductName,
		Available:   &available,
		Requested:   &requested,
		Unit:        line.Unit,
	}
}

func unbalancedTransferError(fromTotal, toTotal decimal.Decimal) ValidationError {
	return ValidationError{
		Kind:      UnbalancedTransfer,
		Message:   fmt.Sprintf("transfer is not balanced: %s out, %s in", fromTotal.String(), toTotal.String()),
		FromTotal: &fromTotal,
		ToTotal:   &toTotal,
	}
}

// validateLines applies the per-line rules to every line with a selected
// product: movement type chosen, positive quantity and rate, and, when the
// stock ceiling applies to outbound lines, quantity within the projected
// available stock. Lines without a product are skipped.
func validateLines(lines []MovementLine, enforceStockCeiling bool) ValidationErrors {
	var errs ValidationErrors
	for i := range lines {
		line := &lines[i]
		if !line.HasProduct() {
			continue
		}
		if line.MovementType == "" {
			errs = append(errs, missingLineFieldError(line.LineID, "movement_type", fmt.Sprintf("movement type is required for %s", line.ProductName)))
		}
		if line.Quantity.LessThanOrEqual(decimal.Zero) {
			errs = append(errs, invalidQuantityError(line))
		}
		if line.Rate.LessThanOrEqual(decimal.Zero) {
			errs = append(errs, invalidRateError(line))
		}
		if enforceStockCeiling && line.MovementType == Out && line.Quantity.GreaterThan(line.StockBefore) {
			errs = append(errs, insufficientStockError(line))
		}
	}
	return errs
}
