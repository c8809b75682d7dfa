package update_service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TenantBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-TenantBookingService/internal/service/catalog"
	"github.com/m04kA/SMC-TenantBookingService/internal/service/catalog/models"
	"github.com/m04kA/SMC-TenantBookingService/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Update(ctx context.Context, tenantID, id int64, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	args := m.Called(ctx, tenantID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ServiceResponse), args.Error(1)
}

func serve(h *Handler, id, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	admin := r.PathPrefix("/tenants/{tenantId}").Subrouter()
	admin.Use(middleware.TenantScope)
	admin.HandleFunc("/services/{serviceId}", h.Handle).Methods(http.MethodPut)

	req := httptest.NewRequest(http.MethodPut, "/tenants/1/services/"+id, strings.NewReader(body))
	req.Header.Set(middleware.TenantIDHeader, "1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Handle(t *testing.T) {
	svc := new(mockService)
	svc.On("Update", mock.Anything, int64(1), int64(3), mock.MatchedBy(func(req *models.UpdateServiceRequest) bool {
		return req.DurationMinutes != nil && *req.DurationMinutes == 60 && req.Name == nil
	})).Return(&models.ServiceResponse{ID: 3, DurationMinutes: 60}, nil).Once()
	svc.On("Update", mock.Anything, int64(1), int64(4), mock.Anything).Return(nil, catalog.ErrServiceNotFound).Once()

	h := NewHandler(svc, logger.Nop())

	rec := serve(h, "3", `{"durationMinutes":60}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"durationMinutes":60`)

	assert.Equal(t, http.StatusNotFound, serve(h, "4", `{"active":false}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, "3", `{"durationMinutes":2000}`).Code)
	svc.AssertExpectations(t)
}
