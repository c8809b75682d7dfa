package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-TenantBookingService/internal/domain"
)

// Источники ответа для метрик
const (
	sourceCache    = "cache"
	sourceComputed = "computed"
)

// Request модель запроса на получение слотов
type Request struct {
	TenantID  int64     // ID тенанта
	ServiceID int64     // ID услуги
	Date      time.Time // Дата (без времени)
}

// Response модель ответа со списком слотов
type Response struct {
	Date            time.Time         // Дата, на которую запрашивались слоты
	TenantID        int64             // ID тенанта
	ServiceID       int64             // ID услуги
	DurationMinutes int               // Длительность услуги
	Slots           []domain.TimeSlot // Все слоты дня, включая занятые
}
