package models

import (
	"time"

	"github.com/m04kA/SMC-TenantBookingService/internal/domain"
)

// Request модели

// CreateServiceRequest запрос на создание услуги
type CreateServiceRequest struct {
	TenantID        int64   `json:"-"`
	Name            string  `json:"name" validate:"required,max=200"`
	DurationMinutes int     `json:"durationMinutes" validate:"required,min=1,max=1440"`
	Price           float64 `json:"price" validate:"gte=0"`
	Description     *string `json:"description,omitempty"`
	Active          *bool   `json:"active,omitempty"` // по умолчанию true
}

// UpdateServiceRequest запрос на обновление услуги
// Все поля опциональны - обновляются только переданные значения
type UpdateServiceRequest struct {
	Name            *string  `json:"name,omitempty" validate:"omitempty,max=200"`
	DurationMinutes *int     `json:"durationMinutes,omitempty" validate:"omitempty,min=1,max=1440"`
	Price           *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Description     *string  `json:"description,omitempty"`
	Active          *bool    `json:"active,omitempty"`
}

// ApplyTo применяет обновления к услуге
func (r *UpdateServiceRequest) ApplyTo(svc *domain.Service) {
	if r.Name != nil {
		svc.Name = *r.Name
	}
	if r.DurationMinutes != nil {
		svc.DurationMinutes = *r.DurationMinutes
	}
	if r.Price != nil {
		svc.Price = *r.Price
	}
	if r.Description != nil {
		svc.Description = r.Description
	}
	if r.Active != nil {
		svc.Active = *r.Active
	}
}

// Response модели

// ServiceResponse услуга
type ServiceResponse struct {
	ID              int64     `json:"id"`
	TenantID        int64     `json:"tenantId"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"durationMinutes"`
	Price           float64   `json:"price"`
	Description     *string   `json:"description,omitempty"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ServiceListResponse список услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}
	return &ServiceResponse{
		ID:              s.ID,
		TenantID:        s.TenantID,
		Name:            s.Name,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
		Description:     s.Description,
		Active:          s.Active,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// FromDomainServiceList конвертирует список
func FromDomainServiceList(list []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{Services: make([]ServiceResponse, 0, len(list))}
	for _, s := range list {
		resp.Services = append(resp.Services, *FromDomainService(s))
	}
	return resp
}
