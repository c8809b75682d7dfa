package models

import (
	"github.com/m04kA/SMC-TenantBookingService/internal/domain"
)

// TenantResponse публичные данные тенанта для страницы бронирования
type TenantResponse struct {
	ID            int64                `json:"id"`
	Slug          string               `json:"slug"`
	Name          string               `json:"name"`
	Email         string               `json:"email"`
	Phone         *string              `json:"phone,omitempty"`
	PrimaryColor  string               `json:"primaryColor"`
	Category      domain.Category      `json:"category"`
	CategoryLabel string               `json:"categoryLabel"`
	CategoryData  *domain.CategoryData `json:"categoryData,omitempty"`
}

// FromDomainTenant конвертирует domain модель в DTO
// Для тенанта без настроек категории отдаются настройки по умолчанию
func FromDomainTenant(t *domain.Tenant) *TenantResponse {
	if t == nil {
		return nil
	}

	data := t.CategoryData
	if data == nil {
		data = domain.DefaultCategoryData(t.Category)
	}

	return &TenantResponse{
		ID:            t.ID,
		Slug:          t.Slug,
		Name:          t.Name,
		Email:         t.Email,
		Phone:         t.Phone,
		PrimaryColor:  t.PrimaryColor,
		Category:      t.Category,
		CategoryLabel: t.Category.Label(),
		CategoryData:  data,
	}
}
