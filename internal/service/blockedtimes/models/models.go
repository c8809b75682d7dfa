package models

import (
	"time"

	"github.com/m04kA/SMC-TenantBookingService/internal/domain"
)

// CreateRequest запрос на создание блокировки
// Без startTime/endTime блокируется весь день
type CreateRequest struct {
	TenantID  int64   `json:"-"`
	Date      string  `json:"date" validate:"required,date"`
	StartTime *string `json:"startTime,omitempty" validate:"omitempty,hhmm"`
	EndTime   *string `json:"endTime,omitempty" validate:"omitempty,hhmm"`
	Reason    *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// BlockedTimeResponse блокировка
type BlockedTimeResponse struct {
	ID        int64     `json:"id"`
	TenantID  int64     `json:"tenantId"`
	Date      string    `json:"date"`
	StartTime *string   `json:"startTime,omitempty"`
	EndTime   *string   `json:"endTime,omitempty"`
	WholeDay  bool      `json:"wholeDay"`
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// BlockedTimeListResponse список блокировок
type BlockedTimeListResponse struct {
	BlockedTimes []BlockedTimeResponse `json:"blockedTimes"`
}

// FromDomainBlockedTime конвертирует domain модель в DTO
func FromDomainBlockedTime(bt *domain.BlockedTime) BlockedTimeResponse {
	resp := BlockedTimeResponse{
		ID:        bt.ID,
		TenantID:  bt.TenantID,
		Date:      bt.Date.Format(domain.DateFormat),
		WholeDay:  bt.IsWholeDay(),
		Reason:    bt.Reason,
		CreatedAt: bt.CreatedAt,
	}
	if !resp.WholeDay {
		start, end := bt.StartTime.String(), bt.EndTime.String()
		resp.StartTime = &start
		resp.EndTime = &end
	}
	return resp
}

// FromDomainBlockedTimeList конвертирует список
func FromDomainBlockedTimeList(list []*domain.BlockedTime) *BlockedTimeListResponse {
	resp := &BlockedTimeListResponse{BlockedTimes: make([]BlockedTimeResponse, 0, len(list))}
	for _, bt := range list {
		resp.BlockedTimes = append(resp.BlockedTimes, FromDomainBlockedTime(bt))
	}
	return resp
}
