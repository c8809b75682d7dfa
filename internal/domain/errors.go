package domain

import "errors"

var (
	ErrUnknownCategory     = errors.New("domain: unknown category")
	ErrInvalidCategoryData = errors.New("domain: invalid category data")
	ErrInvalidBookingData  = errors.New("domain: invalid booking data")
)
