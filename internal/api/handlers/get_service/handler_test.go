package get_service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-TenantBookingService/internal/domain"
	"github.com/m04kA/SMC-TenantBookingService/internal/service/catalog"
	"github.com/m04kA/SMC-TenantBookingService/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) GetActive(ctx context.Context, tenantID, id int64) (*domain.Service, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Service), args.Error(1)
}

func TestHandler_Handle(t *testing.T) {
	svc := new(mockService)
	r := mux.NewRouter()
	r.HandleFunc("/tenants/{tenantId}/services/{serviceId}", NewHandler(svc, logger.Nop()).Handle).Methods(http.MethodGet)

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	svc.On("GetActive", mock.Anything, int64(1), int64(3)).
		Return(&domain.Service{ID: 3, TenantID: 1, Name: "Masáž", DurationMinutes: 90, Active: true}, nil).Once()
	svc.On("GetActive", mock.Anything, int64(1), int64(4)).Return(nil, catalog.ErrServiceNotFound).Once()

	rec := get("/tenants/1/services/3")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"durationMinutes":90`)

	assert.Equal(t, http.StatusNotFound, get("/tenants/1/services/4").Code)
	svc.AssertExpectations(t)
}
