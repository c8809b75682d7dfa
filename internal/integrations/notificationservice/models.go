package notificationservice

// BookingNotification данные бронирования для писем клиенту и тенанту
type BookingNotification struct {
	BookingID     int64   `json:"booking_id"`
	TenantID      int64   `json:"tenant_id"`
	TenantName    string  `json:"tenant_name"`
	TenantEmail   string  `json:"tenant_email"`
	TenantColor   string  `json:"tenant_primary_color"`
	ServiceName   string  `json:"service_name"`
	Date          string  `json:"date"`       // YYYY-MM-DD
	StartTime     string  `json:"start_time"` // HH:MM
	EndTime       string  `json:"end_time"`   // HH:MM
	CustomerName  string  `json:"customer_name"`
	CustomerEmail string  `json:"customer_email"`
	CustomerPhone string  `json:"customer_phone"`
	Note          *string `json:"note,omitempty"`
}

// ErrorResponse модель ошибки от сервиса уведомлений
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
