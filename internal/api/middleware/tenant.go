package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TenantBookingService/internal/api/handlers"
)

type contextKey string

const (
	// TenantIDHeader заголовок, через который админка передает свой тенант
	TenantIDHeader = "X-Tenant-ID"

	tenantIDKey contextKey = "tenantID"

	msgMissingTenantID = "отсутствует заголовок X-Tenant-ID"
	msgInvalidTenantID = "некорректный заголовок X-Tenant-ID"
	msgTenantMismatch  = "доступ к данным другого тенанта запрещен"
)

// TenantScope ограничивает админские маршруты одним тенантом:
// без заголовка 401, при несовпадении с {tenantId} в пути 403.
func TenantScope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(TenantIDHeader)
		if raw == "" {
			handlers.RespondUnauthorized(w, msgMissingTenantID)
			return
		}

		tenantID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || tenantID <= 0 {
			handlers.RespondUnauthorized(w, msgInvalidTenantID)
			return
		}

		if pathTenant, ok := mux.Vars(r)["tenantId"]; ok && pathTenant != strconv.FormatInt(tenantID, 10) {
			handlers.RespondForbidden(w, msgTenantMismatch)
			return
		}

		ctx := context.WithValue(r.Context(), tenantIDKey, tenantID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetTenantID возвращает тенант, проверенный TenantScope
func GetTenantID(ctx context.Context) (int64, bool) {
	tenantID, ok := ctx.Value(tenantIDKey).(int64)
	return tenantID, ok
}
