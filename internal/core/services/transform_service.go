package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/exchange_rates_etl/internal/apperrors"
	"github.com/SscSPs/exchange_rates_etl/internal/core/domain"
	portssvc "github.com/SscSPs/exchange_rates_etl/internal/core/ports/services"
)

// lastUpdateLayouts are tried in order; the provider sends RFC 1123 with a numeric zone.
var lastUpdateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339Nano,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// TransformService turns a raw rate document into Exchange_Rates rows.
type TransformService struct {
	BaseService
}

var _ portssvc.TransformerSvc = (*TransformService)(nil)

// NewTransformService creates a TransformService.
func NewTransformService() *TransformService {
	return &TransformService{}
}

// Transform produces one record per conversion rate, in document order.
// The document's metadata fields are not carried over.
func (s *TransformService) Transform(ctx context.Context, doc *domain.RawRateDocument) (domain.RateDataset, error) {
	if doc == nil || doc.BaseCode == nil {
		return nil, apperrors.NewSchemaError("base_code")
	}
	if doc.ConversionRates == nil {
		return nil, apperrors.NewSchemaError("conversion_rates")
	}

	lastUpdate := ParseLastUpdate(string(doc.TimeLastUpdateUTC))
	if lastUpdate == nil {
		s.LogWarn(ctx, "Could not parse last update time, storing NULL",
			slog.String("time_last_update_utc", string(doc.TimeLastUpdateUTC)))
	}

	dataset := make(domain.RateDataset, 0, doc.ConversionRates.Len())
	for _, entry := range doc.ConversionRates.Entries() {
		dataset = append(dataset, domain.RateRecord{
			TargetCurrency: entry.Code,
			BaseCurrency:   *doc.BaseCode,
			ConversionRate: entry.Rate,
			LastUpdateDate: lastUpdate,
		})
	}

	s.LogDebug(ctx, "Transformed rate document",
		slog.String("base_code", *doc.BaseCode),
		slog.Int("records", len(dataset)))
	return dataset, nil
}

// ParseLastUpdate parses the provider timestamp leniently.
// It returns nil instead of an error when value matches no known layout.
func ParseLastUpdate(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	for _, layout := range lastUpdateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			utc := t.UTC()
			return &utc
		}
	}
	return nil
}
