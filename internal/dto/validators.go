package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterValidations installs the custom decimal rules into gin's binding
// validator. Call once at startup before routes are registered.
//
// dgte0 rejects negative decimals. Quantities and rates sourced from text
// input may legitimately be zero while a line is being composed, so the
// lower bound here is zero; the builder's own validation enforces the
// stricter positive-value rules when the entry is checked as a whole.
func RegisterValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("dgte0", func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(decimal.Decimal)
		if !ok {
			return false
		}
		return !d.IsNegative()
	})
}
