package erp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/erpmobile/stock_journal_engine/internal/apperrors"
	"github.com/erpmobile/stock_journal_engine/internal/core/domain"
	"github.com/erpmobile/stock_journal_engine/internal/core/ports/gateways"
	"github.com/erpmobile/stock_journal_engine/internal/middleware"
)

// Client talks to the stock journal endpoints of the upstream ERP API. It
// forwards the caller's Authorization header from the request context, so the
// upstream sees the original credential and stays the authority on access.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var (
	_ gateways.SubmissionGateway = (*Client)(nil)
	_ gateways.ProductCatalog    = (*Client)(nil)
)

// NewClient creates an upstream API client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// GetEntry reloads one entry from the upstream API.
func (c *Client) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	return c.doEntryRequest(ctx, http.MethodGet, c.entryURL(entryID), nil)
}

// CreateEntry submits a new entry payload.
func (c *Client) CreateEntry(ctx context.Context, submission domain.EntrySubmission) (*domain.JournalEntry, error) {
	return c.doEntryRequest(ctx, http.MethodPost, c.baseURL+"/api/v1/stock-journal/entries", toWireSubmission(submission))
}

// UpdateEntry replaces the content of an existing draft.
func (c *Client) UpdateEntry(ctx context.Context, entryID string, submission domain.EntrySubmission) (*domain.JournalEntry, error) {
	return c.doEntryRequest(ctx, http.MethodPut, c.entryURL(entryID), toWireSubmission(submission))
}

// PostEntry asks the upstream to post a draft and returns the refreshed entry.
func (c *Client) PostEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	return c.doEntryRequest(ctx, http.MethodPost, c.entryURL(entryID)+"/post", nil)
}

// CancelEntry asks the upstream to cancel a posted entry and returns the
// refreshed entry.
func (c *Client) CancelEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	return c.doEntryRequest(ctx, http.MethodPost, c.entryURL(entryID)+"/cancel", nil)
}

// DeleteEntry deletes a draft upstream.
func (c *Client) DeleteEntry(ctx context.Context, entryID string) error {
	resp, err := c.do(ctx, http.MethodDelete, c.entryURL(entryID), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return c.errorFromResponse(resp)
	}
	return nil
}

// FetchCatalog loads the full product snapshot.
func (c *Client) FetchCatalog(ctx context.Context) (domain.Catalog, error) {
	products, err := c.doProductRequest(ctx, c.baseURL+"/api/v1/stock-journal/products")
	if err != nil {
		return nil, err
	}
	return domain.Catalog(products), nil
}

// SearchProducts queries the upstream product search.
func (c *Client) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	u := c.baseURL + "/api/v1/stock-journal/products/search?q=" + url.QueryEscape(query)
	return c.doProductRequest(ctx, u)
}

func (c *Client) entryURL(entryID string) string {
	return c.baseURL + "/api/v1/stock-journal/entries/" + url.PathEscape(entryID)
}

func (c *Client) do(ctx context.Context, method, u string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := middleware.GetAuthTokenFromCtx(ctx); ok {
		req.Header.Set("Authorization", token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstreamUnavailable, err)
	}
	return resp, nil
}

func (c *Client) doEntryRequest(ctx context.Context, method, u string, body any) (*domain.JournalEntry, error) {
	resp, err := c.do(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, c.errorFromResponse(resp)
	}

	var wire wireEntry
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("%w: malformed entry response: %v", apperrors.ErrUpstreamUnavailable, err)
	}
	entry, err := fromWireEntry(&wire)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed entry response: %v", apperrors.ErrUpstreamUnavailable, err)
	}
	return entry, nil
}

func (c *Client) doProductRequest(ctx context.Context, u string) ([]domain.Product, error) {
	resp, err := c.do(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.errorFromResponse(resp)
	}

	var wires []wireProduct
	if err := json.NewDecoder(resp.Body).Decode(&wires); err != nil {
		return nil, fmt.Errorf("%w: malformed product response: %v", apperrors.ErrUpstreamUnavailable, err)
	}
	return fromWireProducts(wires), nil
}

// errorFromResponse maps an upstream error status to a sentinel. Rejection
// messages are carried verbatim so the client sees exactly what the server
// said.
func (c *Client) errorFromResponse(resp *http.Response) error {
	var wire wireErrorResponse
	_ = json.NewDecoder(resp.Body).Decode(&wire)
	message := wire.Error
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", apperrors.ErrNotFound, message)
	case resp.StatusCode == http.StatusConflict:
		return fmt.Errorf("%w: %s", apperrors.ErrTransitionNotAllowed, message)
	case resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", apperrors.ErrUpstreamUnavailable, message)
	default:
		return fmt.Errorf("%w: %s", apperrors.ErrSubmission, message)
	}
}
