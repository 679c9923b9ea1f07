package exchangeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/exchange_rates_etl/internal/apperrors"
	"github.com/SscSPs/exchange_rates_etl/internal/core/domain"
	portssvc "github.com/SscSPs/exchange_rates_etl/internal/core/ports/services"
	"github.com/SscSPs/exchange_rates_etl/internal/platform/logging"
)

// maxBodyBytes bounds the response body read into memory.
const maxBodyBytes = 4 << 20

// resultError is the provider's in-band failure marker.
const resultError = "error"

// Client extracts the latest rates document with a single GET.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ portssvc.ExtractorSvc = (*Client)(nil)

// NewClient creates a Client for baseURL with the given request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Extract fetches and decodes the rates document. It makes exactly one attempt.
func (c *Client) Extract(ctx context.Context) (*domain.RawRateDocument, error) {
	logger := logging.FromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, apperrors.NewDataFetchError("invalid request", 0, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewDataFetchError("request failed", 0, err)
	}
	defer resp.Body.Close()

	logger.Debug("Rate provider responded",
		slog.Int("status", resp.StatusCode),
		slog.Duration("latency", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain a little so the connection can be reused
		_, _ = io.CopyN(io.Discard, resp.Body, 4096)
		return nil, apperrors.NewDataFetchError("unexpected response", resp.StatusCode,
			errors.New(http.StatusText(resp.StatusCode)))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, apperrors.NewDataFetchError("failed to read response body", resp.StatusCode, err)
	}
	if len(body) > maxBodyBytes {
		return nil, apperrors.NewDataFetchError("response body too large", resp.StatusCode,
			fmt.Errorf("exceeds %d bytes", maxBodyBytes))
	}

	var doc domain.RawRateDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, apperrors.NewDataFetchError("response is not a valid rate document", resp.StatusCode, err)
	}

	if doc.Result == resultError {
		return nil, apperrors.NewDataFetchError("provider reported an error", resp.StatusCode,
			fmt.Errorf("error-type %q", doc.ErrorType))
	}

	return &doc, nil
}
