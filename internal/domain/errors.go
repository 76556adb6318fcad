package domain

import "errors"

var (
	// ErrZeroStock is returned when a ratio is requested for a product whose
	// nominal stock level is zero.
	ErrZeroStock = errors.New("product has zero nominal stock")

	ErrDuplicateProduct    = errors.New("duplicate product name in catalog")
	ErrInvalidProduct      = errors.New("invalid product")
	ErrNegativeQuantity    = errors.New("sold quantity cannot be negative")
	ErrInvalidThreshold    = errors.New("stock-low threshold must be within (0, 1)")
	ErrInvalidWarningDays  = errors.New("expiry warning days cannot be negative")
	ErrInvalidDiscountRate = errors.New("discount rate must be within [0, 1)")
	ErrUnknownCategory     = errors.New("unknown product category")
)
