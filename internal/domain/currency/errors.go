package currency

import "errors"

var (
	ErrInvalidCatalog  = errors.New("invalid currency catalog")
	ErrUnknownCurrency = errors.New("unknown currency code")
)
