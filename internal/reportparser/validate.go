package reportparser

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateSalesData checks every assembled record against the schema:
// ISO date, non-negative amounts, positive promotion set counts. The batch
// is all-or-nothing: the first invalid record fails the whole slice, with
// an error naming the offending record.
//
// TotalSales deliberately has no "required" rule: a genuinely zero-sales
// day must validate, and presence is already guaranteed by the assembler's
// admission rule.
func ValidateSalesData(records []SalesData) error {
	for i, rec := range records {
		if err := validate.Struct(rec); err != nil {
			return fmt.Errorf("invalid sales record %d (%s): %w", i, rec.Date, err)
		}
	}
	return nil
}
