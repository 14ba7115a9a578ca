package gratuity

import "errors"

var (
	ErrInvalidDateRange       = errors.New("as-of date precedes join date")
	ErrNegativeSalary         = errors.New("basic salary must not be negative")
	ErrRecordNotFound         = errors.New("gratuity record not found")
	ErrSettlementNotFound     = errors.New("gratuity settlement not found")
	ErrInvalidPaymentStatus   = errors.New("invalid settlement payment status")
	ErrInvalidCalculationType = errors.New("invalid gratuity calculation type")
)
