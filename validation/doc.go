// Package validation checks input and reports failures as 400 errors whose
// problem detail lists the offending fields.
//
// Struct tags are checked with go-playground/validator:
//
//	type CreateForecast struct {
//	    Summary      string `validate:"required"`
//	    TemperatureC int    `validate:"gte=-100,lte=100"`
//	}
//	err := validation.Struct(cmd)
//
// Ad-hoc checks collect into a Validator:
//
//	v := validation.New()
//	v.Range("days", days, 1, 14)
//	err := v.Err()
package validation
