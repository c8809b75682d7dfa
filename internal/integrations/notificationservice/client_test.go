package notificationservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TenantBookingService/pkg/logger"
)

func sampleNotification() *BookingNotification {
	return &BookingNotification{
		BookingID:     42,
		TenantID:      7,
		TenantName:    "Salon Jana",
		ServiceName:   "Pánský střih",
		Date:          "2025-04-10",
		StartTime:     "10:00",
		EndTime:       "10:30",
		CustomerName:  "Petr",
		CustomerEmail: "petr@example.cz",
		CustomerPhone: "+420111222333",
	}
}

func TestClient_SendBookingConfirmation(t *testing.T) {
	var got BookingNotification
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, confirmationPath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, true, time.Second, logger.Nop())
	require.NoError(t, c.SendBookingConfirmation(context.Background(), sampleNotification()))

	assert.Equal(t, int64(42), got.BookingID)
	assert.Equal(t, "10:30", got.EndTime)
}

func TestClient_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"bad request with message", http.StatusBadRequest, `{"code":400,"message":"bad email"}`, ErrInvalidRequest},
		{"bad request without body", http.StatusBadRequest, ``, ErrInvalidRequest},
		{"server error", http.StatusInternalServerError, `oops`, ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL, true, time.Second, logger.Nop())
			err := c.NotifyTenant(context.Background(), sampleNotification())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClient_Unreachable(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", true, 100*time.Millisecond, logger.Nop())
	err := c.SendBookingConfirmation(context.Background(), sampleNotification())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestClient_Disabled(t *testing.T) {
	c := NewClient("http://unused", false, time.Second, logger.Nop())
	assert.ErrorIs(t, c.SendBookingConfirmation(context.Background(), sampleNotification()), ErrDisabled)

	// NotifyBookingCreated при выключенных уведомлениях ничего не делает
	c.NotifyBookingCreated(context.Background(), sampleNotification())
}

func TestClient_NotifyBookingCreated(t *testing.T) {
	var (
		mu    sync.Mutex
		paths []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		if r.URL.Path == confirmationPath {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, true, time.Second, logger.Nop())
	c.NotifyBookingCreated(context.Background(), sampleNotification())

	// Уведомление тенанта отправляется даже если письмо клиенту не ушло
	assert.Equal(t, []string{confirmationPath, tenantNotifyPath}, paths)
}
