package domain

import "time"

// Service is a bookable offering of a tenant
type Service struct {
	ID              int64
	TenantID        int64
	Name            string
	DurationMinutes int
	Price           float64
	Description     *string
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
