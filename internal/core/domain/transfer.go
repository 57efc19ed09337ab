package domain

import (
	"fmt"

	"github.com/erpmobile/stock_journal_engine/internal/apperrors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransferSide names one of the two line collections of a transfer entry.
type TransferSide string

const (
	SideFrom TransferSide = "FROM"
	SideTo   TransferSide = "TO"
)

// Valid reports whether s is a known transfer side.
func (s TransferSide) Valid() bool {
	return s == SideFrom || s == SideTo
}

// TransferBalancer holds the two independent line collections of a transfer
// entry and enforces that a transfer is a closed movement: the total quantity
// leaving the FROM side must equal the total quantity arriving on the TO
// side. Quantities are counted units, so the comparison is exact decimal
// equality with no epsilon tolerance.
type TransferBalancer struct {
	FromLines []MovementLine `json:"fromLines"`
	ToLines   []MovementLine `json:"toLines"`
}

func (t *TransferBalancer) addLine(side TransferSide) (string, error) {
	switch side {
	case SideFrom:
		line := MovementLine{LineID: uuid.NewString(), MovementType: Out}
		t.FromLines = append(t.FromLines, line)
		return line.LineID, nil
	case SideTo:
		line := MovementLine{LineID: uuid.NewString(), MovementType: In}
		t.ToLines = append(t.ToLines, line)
		return line.LineID, nil
	default:
		return "", fmt.Errorf("%w: unknown transfer side %q", apperrors.ErrValidation, side)
	}
}

func (t *TransferBalancer) removeLine(lineID string) bool {
	for i := range t.FromLines {
		if t.FromLines[i].LineID == lineID {
			t.FromLines = append(t.FromLines[:i], t.FromLines[i+1:]...)
			return true
		}
	}
	for i := range t.ToLines {
		if t.ToLines[i].LineID == lineID {
			t.ToLines = append(t.ToLines[:i], t.ToLines[i+1:]...)
			return true
		}
	}
	return false
}

func (t *TransferBalancer) line(lineID string) (*MovementLine, bool) {
	for i := range t.FromLines {
		if t.FromLines[i].LineID == lineID {
			return &t.FromLines[i], true
		}
	}
	for i := range t.ToLines {
		if t.ToLines[i].LineID == lineID {
			return &t.ToLines[i], true
		}
	}
	return nil, false
}

func totalQuantity(lines []MovementLine) decimal.Decimal {
	total := decimal.Zero
	for i := range lines {
		if lines[i].HasProduct() {
			total = total.Add(lines[i].Quantity)
		}
	}
	return total
}

// TotalFromQuantity sums the quantities of FROM lines with a selected product.
func (t *TransferBalancer) TotalFromQuantity() decimal.Decimal {
	return totalQuantity(t.FromLines)
}

// TotalToQuantity sums the quantities of TO lines with a selected product.
func (t *TransferBalancer) TotalToQuantity() decimal.Decimal {
	return totalQuantity(t.ToLines)
}

// IsBalanced reports whether the FROM and TO totals are exactly equal. The
// products on each side may differ; only the quantities must mirror.
func (t *TransferBalancer) IsBalanced() bool {
	return t.TotalFromQuantity().Equal(t.TotalToQuantity())
}

// Validate checks each side independently (FROM lines as outbound against
// the stock snapshot, TO lines as inbound with no ceiling) and appends an
// UnbalancedTransfer error when the totals differ.
func (t *TransferBalancer) Validate() ValidationErrors {
	var errs ValidationErrors
	errs = append(errs, validateLines(t.FromLines, true)...)
	errs = append(errs, validateLines(t.ToLines, false)...)
	if !t.IsBalanced() {
		errs = append(errs, unbalancedTransferError(t.TotalFromQuantity(), t.TotalToQuantity()))
	}
	return errs
}

// MergedLines concatenates the two collections for submission, FROM then TO,
// each line keeping the movement type of its side.
func (t *TransferBalancer) MergedLines() []MovementLine {
	merged := make([]MovementLine, 0, len(t.FromLines)+len(t.ToLines))
	merged = append(merged, t.FromLines...)
	merged = append(merged, t.ToLines...)
	return merged
}
