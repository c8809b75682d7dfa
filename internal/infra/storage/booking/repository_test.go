package booking

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TenantBookingService/internal/domain"
	"github.com/m04kA/SMC-TenantBookingService/pkg/types"
)

// fakeRow эмулирует *sql.Row, подставляя значения в порядке bookingColumns
type fakeRow struct {
	values []interface{}
	err    error
}

func (f fakeRow) Scan(dest ...interface{}) error {
	if f.err != nil {
		return f.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = f.values[i].(int64)
		case *time.Time:
			*p = f.values[i].(time.Time)
		case *types.TimeString:
			if err := p.Scan(f.values[i]); err != nil {
				return err
			}
		case *domain.BookingStatus:
			*p = domain.BookingStatus(f.values[i].(string))
		case *string:
			*p = f.values[i].(string)
		case *[]byte:
			if f.values[i] != nil {
				*p = f.values[i].([]byte)
			}
		default:
			if s, ok := d.(interface{ Scan(interface{}) error }); ok {
				if err := s.Scan(f.values[i]); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func TestScanBooking(t *testing.T) {
	date := time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)
	created := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)

	row := fakeRow{values: []interface{}{
		int64(11), int64(3), int64(5), date,
		[]byte("10:00:00"), []byte("11:30:00"), "confirmed",
		"Jan Novák", "jan@example.cz", "+420777000111",
		"okno", []byte(`{"category":"RESTAURANT","data":{"tableNumber":4,"personCount":2}}`),
		created, created,
	}}

	b, err := scanBooking(row)
	require.NoError(t, err)

	assert.Equal(t, int64(11), b.ID)
	assert.Equal(t, int64(3), b.TenantID)
	assert.Equal(t, types.TimeString("10:00"), b.StartTime)
	assert.Equal(t, types.TimeString("11:30"), b.EndTime)
	assert.Equal(t, domain.StatusConfirmed, b.Status)
	require.NotNil(t, b.Note)
	assert.Equal(t, "okno", *b.Note)
	require.NotNil(t, b.BookingData)
	assert.Equal(t, 4, b.BookingData.Restaurant.TableNumber)
	assert.Equal(t, created, b.CreatedAt)
}

func TestScanBooking_NoOptionalFields(t *testing.T) {
	date := time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)

	row := fakeRow{values: []interface{}{
		int64(1), int64(3), int64(5), date,
		"09:00", "09:30", "cancelled",
		"Eva", "eva@example.cz", "123",
		nil, nil, nil, nil,
	}}

	b, err := scanBooking(row)
	require.NoError(t, err)
	assert.Nil(t, b.Note)
	assert.Nil(t, b.BookingData)
	assert.True(t, b.CreatedAt.IsZero())
}

func TestScanBooking_Error(t *testing.T) {
	boom := errors.New("boom")
	_, err := scanBooking(fakeRow{err: boom})
	assert.ErrorIs(t, err, boom)
}

func TestDateKey(t *testing.T) {
	morning := time.Date(2025, 5, 20, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2025, 5, 20, 23, 0, 0, 0, time.UTC)
	next := time.Date(2025, 5, 21, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, dateKey(morning), dateKey(evening))
	assert.Equal(t, dateKey(morning)+1, dateKey(next))
	assert.Equal(t, int32(0), dateKey(time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestMarshalBookingData(t *testing.T) {
	v, err := marshalBookingData(nil)
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = marshalBookingData(&domain.BookingCategoryData{
		Category:   domain.CategoryBarbershop,
		Barbershop: &domain.BarbershopBookingData{StylistID: "s1", ServiceType: "Barva"},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"category":"BARBERSHOP","data":{"stylistId":"s1","stylistName":"","serviceType":"Barva"}}`, string(v.([]byte)))
}
