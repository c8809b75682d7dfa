package get_tenant_bookings

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-TenantBookingService/internal/domain"
	"github.com/m04kA/SMC-TenantBookingService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
// Поддерживаются from, to, date (сокращение для from=to=date), status, includeCancelled
func ToServiceRequest(tenantID int64, query url.Values) (*models.ListTenantBookingsRequest, error) {
	req := &models.ListTenantBookingsRequest{
		TenantID: tenantID,
	}

	from, err := parseDate(query.Get("from"))
	if err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	to, err := parseDate(query.Get("to"))
	if err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}
	req.StartDate, req.EndDate = from, to

	if dateStr := query.Get("date"); dateStr != "" {
		date, err := parseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("date: %w", err)
		}
		req.StartDate, req.EndDate = date, date
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if includeStr := query.Get("includeCancelled"); includeStr != "" {
		include, err := strconv.ParseBool(includeStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeCancelled value: %w", err)
		}
		req.IncludeCancelled = include
	}

	return req, nil
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	date, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		return nil, err
	}
	return &date, nil
}
