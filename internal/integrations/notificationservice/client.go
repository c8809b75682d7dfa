package notificationservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	confirmationPath = "/internal/notifications/booking-confirmation"
	tenantNotifyPath = "/internal/notifications/tenant-booking"
)

// Client клиент для работы с сервисом уведомлений (email клиенту и тенанту)
type Client struct {
	baseURL    string
	enabled    bool
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса уведомлений
func NewClient(baseURL string, enabled bool, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		enabled: enabled,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SendBookingConfirmation отправляет клиенту подтверждение бронирования
func (c *Client) SendBookingConfirmation(ctx context.Context, n *BookingNotification) error {
	return c.post(ctx, confirmationPath, n)
}

// NotifyTenant уведомляет тенанта о новом бронировании
func (c *Client) NotifyTenant(ctx context.Context, n *BookingNotification) error {
	return c.post(ctx, tenantNotifyPath, n)
}

func (c *Client) post(ctx context.Context, path string, n *BookingNotification) error {
	if !c.enabled {
		return ErrDisabled
	}

	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal payload: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted, http.StatusNoContent:
		return nil
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		var errResp ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
			return fmt.Errorf("%w: status %d", ErrInvalidRequest, resp.StatusCode)
		}
		return fmt.Errorf("%w: %s", ErrInvalidRequest, errResp.Message)
	default:
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}
}

// NotifyBookingCreated отправляет оба уведомления о новом бронировании
// Ошибки только логируются: бронирование уже зафиксировано и не должно зависеть от почты
func (c *Client) NotifyBookingCreated(ctx context.Context, n *BookingNotification) {
	if !c.enabled {
		return
	}

	if err := c.SendBookingConfirmation(ctx, n); err != nil {
		c.log.Error("NotificationService: failed to send confirmation for booking_id=%d to %s: %v", n.BookingID, n.CustomerEmail, err)
	} else {
		c.log.Info("NotificationService: confirmation sent for booking_id=%d", n.BookingID)
	}

	if err := c.NotifyTenant(ctx, n); err != nil {
		c.log.Error("NotificationService: failed to notify tenant_id=%d about booking_id=%d: %v", n.TenantID, n.BookingID, err)
	}
}
