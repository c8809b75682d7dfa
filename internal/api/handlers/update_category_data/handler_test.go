package update_category_data

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-TenantBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-TenantBookingService/internal/domain"
	"github.com/m04kA/SMC-TenantBookingService/internal/service/tenants"
	"github.com/m04kA/SMC-TenantBookingService/internal/service/tenants/models"
	"github.com/m04kA/SMC-TenantBookingService/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) UpdateCategoryData(ctx context.Context, id int64, data *domain.CategoryData) (*models.TenantResponse, error) {
	args := m.Called(ctx, id, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TenantResponse), args.Error(1)
}

func serve(h *Handler, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	admin := r.PathPrefix("/tenants/{tenantId}").Subrouter()
	admin.Use(middleware.TenantScope)
	admin.HandleFunc("/category-data", h.Handle).Methods(http.MethodPut)

	req := httptest.NewRequest(http.MethodPut, "/tenants/1/category-data", strings.NewReader(body))
	req.Header.Set(middleware.TenantIDHeader, "1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

const barbershopBody = `{"category":"BARBERSHOP","data":{"chairCount":3,"stylists":[{"id":"s1","name":"Tomáš"}]}}`

func TestHandler_Handle(t *testing.T) {
	svc := new(mockService)
	svc.On("UpdateCategoryData", mock.Anything, int64(1), mock.MatchedBy(func(d *domain.CategoryData) bool {
		return d.Category == domain.CategoryBarbershop && d.Barbershop != nil && d.Barbershop.ChairCount == 3
	})).Return(&models.TenantResponse{ID: 1, Category: domain.CategoryBarbershop}, nil).Once()

	rec := serve(NewHandler(svc, logger.Nop()), barbershopBody)
	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"mismatch", tenants.ErrCategoryMismatch, http.StatusBadRequest},
		{"invalid", tenants.ErrInvalidInput, http.StatusBadRequest},
		{"not found", tenants.ErrTenantNotFound, http.StatusNotFound},
		{"internal", tenants.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			svc.On("UpdateCategoryData", mock.Anything, int64(1), mock.Anything).Return(nil, tt.err).Once()

			rec := serve(NewHandler(svc, logger.Nop()), barbershopBody)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}

	t.Run("unknown category", func(t *testing.T) {
		svc := new(mockService)
		rec := serve(NewHandler(svc, logger.Nop()), `{"category":"spaceship","data":{}}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
