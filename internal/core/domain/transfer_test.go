package domain_test

import (
	"testing"

	"github.com/erpmobile/stock_journal_engine/internal/apperrors"
	"github.com/erpmobile/stock_journal_engine/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// addTransferLine appends a line to the given side and fills it in.
func addTransferLine(t *testing.T, b *domain.JournalEntryBuilder, catalog domain.Catalog, side domain.TransferSide, productID string, quantity int64) string {
	t.Helper()
	lineID, err := b.AddTransferLine(side)
	require.NoError(t, err)
	require.NoError(t, b.SetLineProduct(lineID, catalog, productID))
	require.NoError(t, b.SetLineQuantity(lineID, decimal.NewFromInt(quantity)))
	return lineID
}

// A transfer is balanced when the quantity totals mirror, even if the
// products on each side differ.
func TestTransferBalancer_BalancedAcrossProducts(t *testing.T) {
	catalog := append(testCatalog(), domain.Product{
		ProductID:    "prod-3",
		Name:         "Brass Sheet",
		CurrentStock: decimal.NewFromInt(40),
		PurchaseRate: decimal.NewFromInt(12),
		Unit:         "pc",
	})

	b := domain.NewJournalEntryBuilder(domain.Transfer)
	require.NoError(t, b.SetJournalDate(journalDate()))
	addTransferLine(t, b, catalog, domain.SideFrom, "prod-1", 5)
	addTransferLine(t, b, catalog, domain.SideTo, "prod-2", 3)
	addTransferLine(t, b, catalog, domain.SideTo, "prod-3", 2)

	assert.True(t, b.Transfer.IsBalanced())
	errs := b.Validate()
	assert.False(t, errs.HasKind(domain.UnbalancedTransfer))
	assert.Empty(t, errs)
}

func TestTransferBalancer_Unbalanced(t *testing.T) {
	catalog := testCatalog()
	b := domain.NewJournalEntryBuilder(domain.Transfer)
	require.NoError(t, b.SetJournalDate(journalDate()))
	addTransferLine(t, b, catalog, domain.SideFrom, "prod-1", 5)
	addTransferLine(t, b, catalog, domain.SideTo, "prod-2", 4)

	assert.False(t, b.Transfer.IsBalanced())

	errs := b.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, domain.UnbalancedTransfer, errs[0].Kind)
	assert.Equal(t, "5", errs[0].FromTotal.String())
	assert.Equal(t, "4", errs[0].ToTotal.String())
}

func TestTransferBalancer_OneSidedIsInvalid(t *testing.T) {
	catalog := testCatalog()
	b := domain.NewJournalEntryBuilder(domain.Transfer)
	require.NoError(t, b.SetJournalDate(journalDate()))
	addTransferLine(t, b, catalog, domain.SideFrom, "prod-1", 5)

	errs := b.Validate()
	assert.True(t, errs.HasKind(domain.UnbalancedTransfer))
}

// Both sides empty: the zero-lines rule fires and the balance check does not
// (zero equals zero).
func TestTransferBalancer_EmptyBothSides(t *testing.T) {
	b := domain.NewJournalEntryBuilder(domain.Transfer)
	require.NoError(t, b.SetJournalDate(journalDate()))

	errs := b.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, domain.MissingField, errs[0].Kind)
	assert.Equal(t, "items", errs[0].Field)
}

// FROM lines are checked as outbound against the snapshot; TO lines carry no
// stock ceiling.
func TestTransferBalancer_StockCeilingFromSideOnly(t *testing.T) {
	catalog := testCatalog()
	b := domain.NewJournalEntryBuilder(domain.Transfer)
	require.NoError(t, b.SetJournalDate(journalDate()))
	addTransferLine(t, b, catalog, domain.SideFrom, "prod-1", 12) // stock is 10
	addTransferLine(t, b, catalog, domain.SideTo, "prod-2", 12)

	errs := b.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, domain.InsufficientStock, errs[0].Kind)
	assert.Equal(t, "Steel Rod", errs[0].ProductName)
}

func TestTransferBalancer_SidesFixMovementType(t *testing.T) {
	catalog := testCatalog()
	b := domain.NewJournalEntryBuilder(domain.Transfer)
	fromID := addTransferLine(t, b, catalog, domain.SideFrom, "prod-1", 5)

	line, found := b.Line(fromID)
	require.True(t, found)
	assert.Equal(t, domain.Out, line.MovementType)

	err := b.SetLineMovementType(fromID, domain.In)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestTransferBalancer_MergedLinesKeepFromThenToOrder(t *testing.T) {
	catalog := testCatalog()
	b := domain.NewJournalEntryBuilder(domain.Transfer)
	fromID := addTransferLine(t, b, catalog, domain.SideFrom, "prod-1", 5)
	toID := addTransferLine(t, b, catalog, domain.SideTo, "prod-2", 5)

	merged := b.Transfer.MergedLines()
	require.Len(t, merged, 2)
	assert.Equal(t, fromID, merged[0].LineID)
	assert.Equal(t, domain.Out, merged[0].MovementType)
	assert.Equal(t, toID, merged[1].LineID)
	assert.Equal(t, domain.In, merged[1].MovementType)
}

func TestTransferBalancer_RemoveLineFromEitherSide(t *testing.T) {
	catalog := testCatalog()
	b := domain.NewJournalEntryBuilder(domain.Transfer)
	fromID := addTransferLine(t, b, catalog, domain.SideFrom, "prod-1", 5)
	toID := addTransferLine(t, b, catalog, domain.SideTo, "prod-2", 5)

	require.NoError(t, b.RemoveLine(toID))
	assert.Empty(t, b.Transfer.ToLines)
	require.NoError(t, b.RemoveLine(fromID))
	assert.Empty(t, b.Transfer.FromLines)
}

func TestTransferBalancer_UnknownSide(t *testing.T) {
	b := domain.NewJournalEntryBuilder(domain.Transfer)
	_, err := b.AddTransferLine("SIDEWAYS")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
