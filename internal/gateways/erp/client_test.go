package erp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erpmobile/stock_journal_engine/internal/apperrors"
	"github.com/erpmobile/stock_journal_engine/internal/core/domain"
	"github.com/erpmobile/stock_journal_engine/internal/middleware"
)

const entryJSON = `{
	"entry_id": "je-100",
	"entry_type": "consumption",
	"journal_date": "2025-06-15",
	"reference_number": "REF-7",
	"narration": "maintenance issue",
	"status": "posted",
	"can_edit": false,
	"can_post": false,
	"can_cancel": true,
	"items": [
		{
			"item_id": "item-1",
			"product_id": "prod-1",
			"product_name": "Steel Rod",
			"unit": "kg",
			"movement_type": "out",
			"quantity": "3",
			"rate": "42.5",
			"batch_number": "B-9",
			"remarks": "",
			"stock_before": "10",
			"stock_after": "7"
		}
	],
	"created_at": "2025-06-15T09:30:00Z",
	"updated_at": "2025-06-15T10:00:00Z"
}`

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	return NewClient(server.URL, 5*time.Second), server
}

func TestClient_GetEntry(t *testing.T) {
	var gotPath, gotAuth string
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(entryJSON))
	}))
	defer server.Close()

	ctx := middleware.WithAuthToken(context.Background(), "Bearer token-123")
	entry, err := client.GetEntry(ctx, "je-100")
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/stock-journal/entries/je-100", gotPath)
	assert.Equal(t, "Bearer token-123", gotAuth)
	assert.Equal(t, "je-100", entry.EntryID)
	assert.Equal(t, domain.Consumption, entry.EntryType)
	assert.Equal(t, domain.Posted, entry.Status)
	assert.False(t, entry.CanEdit)
	assert.True(t, entry.CanCancel)
	assert.Equal(t, "2025-06-15", entry.JournalDate.Format("2006-01-02"))
	require.Len(t, entry.Items, 1)
	item := entry.Items[0]
	assert.Equal(t, domain.Out, item.MovementType)
	require.NotNil(t, item.StockAfter)
	assert.True(t, item.StockAfter.Equal(decimal.NewFromInt(7)))
}

func TestClient_CreateEntry(t *testing.T) {
	var gotMethod string
	var gotBody map[string]any
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(entryJSON))
	}))
	defer server.Close()

	submission := domain.EntrySubmission{
		EntryType:   domain.Consumption,
		JournalDate: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		Narration:   "maintenance issue",
		Items: []domain.SubmissionItem{
			{
				ProductID:    "prod-1",
				MovementType: domain.Out,
				Quantity:     decimal.NewFromInt(3),
				Rate:         decimal.RequireFromString("42.50"),
			},
		},
		Action: domain.ActionSaveAndPost,
	}

	entry, err := client.CreateEntry(context.Background(), submission)
	require.NoError(t, err)
	assert.Equal(t, "je-100", entry.EntryID)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "consumption", gotBody["entry_type"])
	assert.Equal(t, "2025-06-15", gotBody["journal_date"])
	assert.Equal(t, "save_and_post", gotBody["action"])
	items, ok := gotBody["items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.Equal(t, "prod-1", item["product_id"])
	assert.Equal(t, "out", item["movement_type"])
}

func TestClient_LifecycleEndpoints(t *testing.T) {
	var gotPaths []string
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPaths = append(gotPaths, r.Method+" "+r.URL.Path)
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		_, _ = w.Write([]byte(entryJSON))
	}))
	defer server.Close()

	ctx := context.Background()
	_, err := client.PostEntry(ctx, "je-100")
	require.NoError(t, err)
	_, err = client.CancelEntry(ctx, "je-100")
	require.NoError(t, err)
	require.NoError(t, client.DeleteEntry(ctx, "je-100"))

	assert.Equal(t, []string{
		"POST /api/v1/stock-journal/entries/je-100/post",
		"POST /api/v1/stock-journal/entries/je-100/cancel",
		"DELETE /api/v1/stock-journal/entries/je-100",
	}, gotPaths)
}

func TestClient_ErrorMapping(t *testing.T) {
	testCases := []struct {
		name       string
		statusCode int
		body       string
		wantErr    error
		wantMsg    string
	}{
		{
			name:       "not found",
			statusCode: http.StatusNotFound,
			body:       `{"error": "entry not found"}`,
			wantErr:    apperrors.ErrNotFound,
		},
		{
			name:       "conflict",
			statusCode: http.StatusConflict,
			body:       `{"error": "entry is already posted"}`,
			wantErr:    apperrors.ErrTransitionNotAllowed,
		},
		{
			name:       "rejection carries the server message verbatim",
			statusCode: http.StatusUnprocessableEntity,
			body:       `{"error": "insufficient stock for Steel Rod"}`,
			wantErr:    apperrors.ErrSubmission,
			wantMsg:    "insufficient stock for Steel Rod",
		},
		{
			name:       "server error",
			statusCode: http.StatusInternalServerError,
			body:       `{"error": "boom"}`,
			wantErr:    apperrors.ErrUpstreamUnavailable,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.statusCode)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			_, err := client.GetEntry(context.Background(), "je-100")
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
			if tc.wantMsg != "" {
				assert.Contains(t, err.Error(), tc.wantMsg)
			}
		})
	}
}

func TestClient_UnreachableUpstream(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := client.GetEntry(context.Background(), "je-100")
	assert.ErrorIs(t, err, apperrors.ErrUpstreamUnavailable)
}

func TestClient_FetchCatalogAndSearch(t *testing.T) {
	var gotQueries []string
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQueries = append(gotQueries, r.URL.Path+"?"+r.URL.RawQuery)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"product_id": "prod-1", "name": "Steel Rod", "sku": "STL-01", "current_stock": "10", "purchase_rate": "42.5", "unit": "kg"},
			{"product_id": "prod-2", "name": "Copper Wire", "sku": "CU-02", "current_stock": "250", "purchase_rate": "7.25", "unit": "m"}
		]`))
	}))
	defer server.Close()

	catalog, err := client.FetchCatalog(context.Background())
	require.NoError(t, err)
	require.Len(t, catalog, 2)
	assert.Equal(t, "Steel Rod", catalog[0].Name)
	assert.True(t, catalog[0].CurrentStock.Equal(decimal.NewFromInt(10)))

	results, err := client.SearchProducts(context.Background(), "steel rod")
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, []string{
		"/api/v1/stock-journal/products?",
		"/api/v1/stock-journal/products/search?q=steel+rod",
	}, gotQueries)
}
