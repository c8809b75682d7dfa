package get_tenant_profile

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-TenantBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-TenantBookingService/internal/service/tenants"
	"github.com/m04kA/SMC-TenantBookingService/internal/service/tenants/models"
	"github.com/m04kA/SMC-TenantBookingService/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) GetByID(ctx context.Context, id int64) (*models.TenantResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TenantResponse), args.Error(1)
}

func TestHandler_Handle(t *testing.T) {
	svc := new(mockService)
	r := mux.NewRouter()
	admin := r.PathPrefix("/tenants/{tenantId}").Subrouter()
	admin.Use(middleware.TenantScope)
	admin.HandleFunc("/profile", NewHandler(svc, logger.Nop()).Handle).Methods(http.MethodGet)

	get := func(tenant string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/tenants/"+tenant+"/profile", nil)
		req.Header.Set(middleware.TenantIDHeader, tenant)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	svc.On("GetByID", mock.Anything, int64(1)).Return(&models.TenantResponse{ID: 1, Name: "Salon Jana"}, nil).Once()
	svc.On("GetByID", mock.Anything, int64(2)).Return(nil, tenants.ErrTenantNotFound).Once()

	assert.Equal(t, http.StatusOK, get("1").Code)
	assert.Equal(t, http.StatusNotFound, get("2").Code)
	svc.AssertExpectations(t)
}
