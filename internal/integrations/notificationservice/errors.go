package notificationservice

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notificationservice client: internal error")

	// ErrInvalidRequest возвращается, когда сервис уведомлений отклонил payload
	ErrInvalidRequest = errors.New("notificationservice client: invalid request")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("notificationservice client: invalid response")

	// ErrDisabled возвращается, когда отправка уведомлений выключена в конфигурации
	ErrDisabled = errors.New("notificationservice client: notifications disabled")
)
