package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Canonical column names of the Exchange_Rates table, in insert order.
const (
	ColumnTargetCurrency  = "Target_Currency"
	ColumnBaseCurrency    = "Base_Currency"
	ColumnConversionRates = "Conversion_Rates"
	ColumnLastUpdateDate  = "Last_Update_Date"
)

// RateColumns lists the table columns in the order RateRecord.Values returns them.
var RateColumns = []string{
	ColumnTargetCurrency,
	ColumnBaseCurrency,
	ColumnConversionRates,
	ColumnLastUpdateDate,
}

// RawRateDocument is the rate provider's response body.
// BaseCode and ConversionRates are pointers so that an absent field can be told
// apart from an empty one. Metadata is kept raw and never interpreted, so an
// oddly typed metadata value cannot fail decoding.
type RawRateDocument struct {
	Result             LooseString     `json:"result"`
	ErrorType          LooseString     `json:"error-type,omitempty"`
	Documentation      json.RawMessage `json:"documentation,omitempty"`
	TermsOfUse         json.RawMessage `json:"terms_of_use,omitempty"`
	TimeLastUpdateUnix json.RawMessage `json:"time_last_update_unix,omitempty"`
	TimeLastUpdateUTC  LooseString     `json:"time_last_update_utc"`
	TimeNextUpdateUnix json.RawMessage `json:"time_next_update_unix,omitempty"`
	TimeNextUpdateUTC  json.RawMessage `json:"time_next_update_utc,omitempty"`
	BaseCode           *string         `json:"base_code"`
	ConversionRates    *RateMap        `json:"conversion_rates"`
}

// LooseString holds a JSON string value. Any other JSON type decodes to "".
type LooseString string

func (s *LooseString) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		*s = ""
		return nil
	}
	*s = LooseString(v)
	return nil
}

// RateRecord is one normalized Exchange_Rates row.
type RateRecord struct {
	TargetCurrency string          `json:"Target_Currency"`
	BaseCurrency   string          `json:"Base_Currency"`
	ConversionRate decimal.Decimal `json:"Conversion_Rates"`
	LastUpdateDate *time.Time      `json:"Last_Update_Date"` // nil when the source timestamp was unparseable
}

// Values returns the record's attributes in RateColumns order, ready for positional binding.
func (r RateRecord) Values() []any {
	return []any{r.TargetCurrency, r.BaseCurrency, r.ConversionRate, r.LastUpdateDate}
}

// RateDataset is the ordered output of the transform stage.
type RateDataset []RateRecord
