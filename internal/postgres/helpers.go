// Package postgres implements the domain repositories on PostgreSQL via pgx.
package postgres

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// parseDecimal converts a NUMERIC column selected as text back into a
// decimal. Columns are cast with ::text in the queries so currency values
// never round-trip through binary floats.
func parseDecimal(value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid numeric value %q: %w", value, err)
	}
	return d, nil
}
