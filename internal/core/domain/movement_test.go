package domain_test

import (
	"testing"

	"github.com/erpmobile/stock_journal_engine/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func testCatalog() domain.Catalog {
	return domain.Catalog{
		{
			ProductID:    "prod-1",
			Name:         "Steel Rod",
			SKU:          "STL-001",
			CurrentStock: decimal.NewFromInt(10),
			PurchaseRate: decimal.NewFromFloat(42.50),
			Unit:         "kg",
		},
		{
			ProductID:    "prod-2",
			Name:         "Copper Wire",
			SKU:          "CPR-002",
			CurrentStock: decimal.NewFromInt(250),
			PurchaseRate: decimal.NewFromFloat(7.25),
			Unit:         "m",
		},
	}
}

func TestMovementLine_Amount(t *testing.T) {
	line := domain.MovementLine{
		Quantity: decimal.NewFromInt(3),
		Rate:     decimal.NewFromFloat(42.50),
	}
	assert.True(t, decimal.NewFromFloat(127.50).Equal(line.Amount()))
}

func TestMovementLine_StockAfter(t *testing.T) {
	tests := []struct {
		name         string
		movementType domain.MovementType
		want         string
	}{
		{name: "inbound adds", movementType: domain.In, want: "13"},
		{name: "outbound subtracts", movementType: domain.Out, want: "7"},
		{name: "no direction yet", movementType: "", want: "10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := domain.MovementLine{
				StockBefore:  decimal.NewFromInt(10),
				Quantity:     decimal.NewFromInt(3),
				MovementType: tt.movementType,
			}
			assert.Equal(t, tt.want, line.StockAfter().String())
		})
	}
}

func TestMovementLine_SetProduct(t *testing.T) {
	catalog := testCatalog()

	t.Run("known product populates defaults", func(t *testing.T) {
		line := domain.MovementLine{LineID: "l1"}
		line.SetProduct(catalog, "prod-1")

		assert.Equal(t, "prod-1", line.ProductID)
		assert.Equal(t, "Steel Rod", line.ProductName)
		assert.Equal(t, "kg", line.Unit)
		assert.True(t, decimal.NewFromFloat(42.50).Equal(line.Rate), "rate defaults from purchase rate")
		assert.True(t, decimal.NewFromInt(10).Equal(line.StockBefore))
	})

	t.Run("unknown product leaves fields blank", func(t *testing.T) {
		line := domain.MovementLine{LineID: "l1"}
		line.SetProduct(catalog, "prod-1")
		line.SetProduct(catalog, "prod-missing")

		assert.False(t, line.HasProduct())
		assert.Empty(t, line.ProductName)
		assert.True(t, line.StockBefore.IsZero())
	})

	t.Run("rate override survives later quantity changes", func(t *testing.T) {
		line := domain.MovementLine{LineID: "l1"}
		line.SetProduct(catalog, "prod-2")
		line.Rate = decimal.NewFromInt(8)
		line.Quantity = decimal.NewFromInt(4)

		assert.Equal(t, "32", line.Amount().String())
	})
}

func TestCatalog_Search(t *testing.T) {
	catalog := testCatalog()

	assert.Len(t, catalog.Search("steel"), 1)
	assert.Len(t, catalog.Search("CPR"), 1)
	assert.Empty(t, catalog.Search(""))
	assert.Empty(t, catalog.Search("brass"))
}

func TestCatalog_Merge(t *testing.T) {
	catalog := testCatalog()
	merged := catalog.Merge([]domain.Product{
		{ProductID: "prod-1", Name: "Steel Rod", CurrentStock: decimal.NewFromInt(99)},
		{ProductID: "prod-3", Name: "Brass Sheet", CurrentStock: decimal.NewFromInt(5)},
	})

	assert.Len(t, merged, 3)
	existing, _ := merged.Lookup("prod-1")
	assert.Equal(t, "10", existing.CurrentStock.String(), "snapshot stock is never refreshed mid-session")
	added, found := merged.Lookup("prod-3")
	assert.True(t, found)
	assert.Equal(t, "Brass Sheet", added.Name)
}
