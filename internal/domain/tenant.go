package domain

import "time"

// Tenant is a business that accepts bookings
type Tenant struct {
	ID           int64
	Slug         string
	Name         string
	Email        string
	Phone        *string
	PrimaryColor string
	Category     Category
	CategoryData *CategoryData
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AcceptsBookingData reports whether booking data of the given category fits this tenant
func (t *Tenant) AcceptsBookingData(data *BookingCategoryData) bool {
	if data == nil {
		return true
	}
	return data.Category == t.Category
}
