package workinghours

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TenantBookingService/internal/domain"
	"github.com/m04kA/SMC-TenantBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TenantBookingService/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"tenant_id",
	"weekday",
	"is_open",
	"open_time",
	"close_time",
	"created_at",
	"updated_at",
}

// Repository репозиторий рабочих часов тенантов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория рабочих часов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByTenantAndWeekday получает рабочие часы тенанта на день недели (0 = воскресенье)
// Возвращает ErrWorkingHoursNotFound, если запись отсутствует
func (r *Repository) GetByTenantAndWeekday(ctx context.Context, tenantID int64, weekday time.Weekday) (*domain.WorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("working_hours").
		Where(squirrel.Eq{"tenant_id": tenantID, "weekday": int(weekday)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByTenantAndWeekday - build select query: %v", ErrBuildQuery, err)
	}

	wh, err := scanWorkingHours(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWorkingHoursNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTenantAndWeekday - scan working hours: %w", ErrScanRow, err)
	}

	return wh, nil
}

// ListByTenant получает все рабочие часы тенанта, упорядоченные по дню недели
func (r *Repository) ListByTenant(ctx context.Context, tenantID int64) ([]*domain.WorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("working_hours").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByTenant - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByTenant - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.WorkingHours, 0, 7)
	for rows.Next() {
		wh, err := scanWorkingHours(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByTenant - scan row: %w", ErrScanRow, err)
		}
		result = append(result, wh)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByTenant - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

// Upsert создает или обновляет рабочие часы на день недели
// На пару (tenant_id, weekday) существует не более одной записи
func (r *Repository) Upsert(ctx context.Context, wh *domain.WorkingHours) (*domain.WorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("working_hours").
		Columns("tenant_id", "weekday", "is_open", "open_time", "close_time").
		Values(wh.TenantID, int(wh.Weekday), wh.IsOpen, wh.OpenTime, wh.CloseTime).
		Suffix(`ON CONFLICT (tenant_id, weekday) DO UPDATE SET
			is_open = EXCLUDED.is_open,
			open_time = EXCLUDED.open_time,
			close_time = EXCLUDED.close_time,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&wh.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %w", ErrExecQuery, err)
	}

	wh.CreatedAt = createdAt.Time
	wh.UpdatedAt = updatedAt.Time

	return wh, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWorkingHours(row rowScanner) (*domain.WorkingHours, error) {
	var (
		wh                   domain.WorkingHours
		weekday              int
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&wh.ID,
		&wh.TenantID,
		&weekday,
		&wh.IsOpen,
		&wh.OpenTime,
		&wh.CloseTime,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	wh.Weekday = time.Weekday(weekday)
	wh.CreatedAt = createdAt.Time
	wh.UpdatedAt = updatedAt.Time

	return &wh, nil
}
