// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Ticker symbols: 1-6 uppercase letters, optional dot section (e.g. BRK.B).
var stockSymbolRegex = regexp.MustCompile(`^[A-Z]{1,6}(\.[A-Z]{1,2})?$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("stock_symbol", validateStockSymbol)
		_ = v.RegisterValidation("ledger_kind", validateLedgerKind)
	}
}

func validateStockSymbol(fl validator.FieldLevel) bool {
	return stockSymbolRegex.MatchString(fl.Field().String())
}

func validateLedgerKind(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "buy", "sell", "deposit", "withdraw", "transfer_out", "transfer_in":
		return true
	}
	return false
}
