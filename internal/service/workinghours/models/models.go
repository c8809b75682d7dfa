package models

import (
	"time"

	"github.com/m04kA/SMC-TenantBookingService/internal/domain"
)

// Request модели

// UpsertRequest запрос на установку рабочих часов на день недели
type UpsertRequest struct {
	TenantID  int64  `json:"-"`
	Weekday   int    `json:"-"`
	IsOpen    bool   `json:"isOpen"`
	OpenTime  string `json:"openTime" validate:"required,hhmm"`  // "09:00"
	CloseTime string `json:"closeTime" validate:"required,hhmm"` // "18:00"
}

// Response модели

// WorkingHoursResponse рабочие часы одного дня недели
type WorkingHoursResponse struct {
	Weekday   int        `json:"weekday"` // 0 = воскресенье
	IsOpen    bool       `json:"isOpen"`
	OpenTime  *string    `json:"openTime,omitempty"`
	CloseTime *string    `json:"closeTime,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// WeekResponse рабочие часы на всю неделю
type WeekResponse struct {
	TenantID int64                  `json:"tenantId"`
	Days     []WorkingHoursResponse `json:"days"`
}

// Методы конвертации

// FromDomainWorkingHours конвертирует domain модель в DTO
func FromDomainWorkingHours(wh *domain.WorkingHours) WorkingHoursResponse {
	open, closeTime := wh.OpenTime.String(), wh.CloseTime.String()
	updatedAt := wh.UpdatedAt
	return WorkingHoursResponse{
		Weekday:   int(wh.Weekday),
		IsOpen:    wh.IsOpen,
		OpenTime:  &open,
		CloseTime: &closeTime,
		UpdatedAt: &updatedAt,
	}
}

// FromDomainWeek собирает неделю с воскресенья по субботу
// Дни без записи отдаются как закрытые
func FromDomainWeek(tenantID int64, hours []*domain.WorkingHours) *WeekResponse {
	byDay := make(map[time.Weekday]*domain.WorkingHours, len(hours))
	for _, wh := range hours {
		byDay[wh.Weekday] = wh
	}

	resp := &WeekResponse{
		TenantID: tenantID,
		Days:     make([]WorkingHoursResponse, 0, 7),
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		if wh, ok := byDay[d]; ok {
			resp.Days = append(resp.Days, FromDomainWorkingHours(wh))
			continue
		}
		resp.Days = append(resp.Days, WorkingHoursResponse{Weekday: int(d), IsOpen: false})
	}
	return resp
}
