// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var yearMonthRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
		_ = v.RegisterValidation("split_type", validateSplitType)
		_ = v.RegisterValidation("year_month", validateYearMonth)
	}
}

func validateTransactionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Expense", "Income":
		return true
	}
	return false
}

func validateSplitType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "equal", "custom":
		return true
	}
	return false
}

func validateYearMonth(fl validator.FieldLevel) bool {
	return yearMonthRegex.MatchString(fl.Field().String())
}
