package tenant

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TenantBookingService/internal/domain"
	"github.com/m04kA/SMC-TenantBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TenantBookingService/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"slug",
	"name",
	"email",
	"phone",
	"primary_color",
	"category",
	"category_data",
	"created_at",
	"updated_at",
}

// Repository репозиторий тенантов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория тенантов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает тенанта по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Tenant, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetBySlug получает тенанта по slug (используется публичной страницей бронирования)
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error) {
	return r.getOne(ctx, "GetBySlug", squirrel.Eq{"slug": slug})
}

// UpdateCategoryData сохраняет настройки категории тенанта
func (r *Repository) UpdateCategoryData(ctx context.Context, id int64, data *domain.CategoryData) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("%w: UpdateCategoryData - marshal: %v", ErrCategoryData, err)
	}

	query, args, err := psqlbuilder.Update("tenants").
		Set("category_data", raw).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateCategoryData - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateCategoryData - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateCategoryData - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrTenantNotFound
	}

	return nil
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.Tenant, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("tenants").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var (
		t                    domain.Tenant
		phone                sql.NullString
		categoryData         []byte
		createdAt, updatedAt sql.NullTime
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&t.ID,
		&t.Slug,
		&t.Name,
		&t.Email,
		&phone,
		&t.PrimaryColor,
		&t.Category,
		&categoryData,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTenantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan tenant: %w", ErrScanRow, op, err)
	}

	if phone.Valid {
		t.Phone = &phone.String
	}
	if len(categoryData) > 0 {
		var data domain.CategoryData
		if err := json.Unmarshal(categoryData, &data); err != nil {
			return nil, fmt.Errorf("%w: %s - unmarshal: %v", ErrCategoryData, op, err)
		}
		t.CategoryData = &data
	}
	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time

	return &t, nil
}
