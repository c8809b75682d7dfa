package create_booking

import (
	"time"

	"github.com/m04kA/SMC-TenantBookingService/internal/domain"
	"github.com/m04kA/SMC-TenantBookingService/pkg/types"
)

// Причины отказа для метрик
const (
	conflictOverlap       = "overlap"
	conflictBlocked       = "blocked"
	conflictSerialization = "serialization"
)

// Request модель запроса на создание бронирования
type Request struct {
	TenantID      int64                       // ID тенанта
	ServiceID     int64                       // ID услуги
	Date          time.Time                   // Дата бронирования (без времени)
	StartTime     types.TimeString            // Время начала, например "10:00"
	CustomerName  string                      // Имя клиента
	CustomerEmail string                      // Email для подтверждения
	CustomerPhone string                      // Телефон
	Note          *string                     // Комментарий (опционально)
	BookingData   *domain.BookingCategoryData // Данные категории (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	TenantID        int64
	ServiceID       int64
	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Status          string

	// Денормализованные данные услуги
	ServiceName  string
	ServicePrice float64

	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Note          *string
	BookingData   *domain.BookingCategoryData

	CreatedAt time.Time
	UpdatedAt time.Time
}
