package blockedtime

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TenantBookingService/internal/domain"
	"github.com/m04kA/SMC-TenantBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TenantBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-TenantBookingService/pkg/types"
)

// Repository репозиторий блокировок времени
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListByTenantAndDate получает блокировки тенанта на дату
// Блокировки на весь день (NULL start_time) идут первыми
func (r *Repository) ListByTenantAndDate(ctx context.Context, tenantID int64, date time.Time) ([]*domain.BlockedTime, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	y, m, d := date.Date()
	query, args, err := psqlbuilder.Select(
		"id",
		"tenant_id",
		"blocked_date",
		"start_time",
		"end_time",
		"reason",
		"created_at",
	).
		From("blocked_times").
		Where(squirrel.Eq{
			"tenant_id":    tenantID,
			"blocked_date": time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		}).
		OrderBy("start_time ASC NULLS FIRST").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByTenantAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByTenantAndDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.BlockedTime, 0)
	for rows.Next() {
		var (
			bt         domain.BlockedTime
			start, end types.TimeString
			reason     sql.NullString
			createdAt  sql.NullTime
		)
		if err := rows.Scan(&bt.ID, &bt.TenantID, &bt.Date, &start, &end, &reason, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListByTenantAndDate - scan row: %w", ErrScanRow, err)
		}

		if !start.IsZero() {
			bt.StartTime = &start
		}
		if !end.IsZero() {
			bt.EndTime = &end
		}
		if reason.Valid {
			bt.Reason = &reason.String
		}
		bt.CreatedAt = createdAt.Time

		result = append(result, &bt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByTenantAndDate - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

// Create создает блокировку (на весь день, если StartTime/EndTime не заданы)
func (r *Repository) Create(ctx context.Context, bt *domain.BlockedTime) (*domain.BlockedTime, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	y, m, d := bt.Date.Date()
	query, args, err := psqlbuilder.Insert("blocked_times").
		Columns("tenant_id", "blocked_date", "start_time", "end_time", "reason").
		Values(bt.TenantID, time.Date(y, m, d, 0, 0, 0, 0, time.UTC), bt.StartTime, bt.EndTime, bt.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&bt.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}
	bt.CreatedAt = createdAt.Time

	return bt, nil
}

// Delete удаляет блокировку тенанта и возвращает её дату (нужна для инвалидации кэша)
func (r *Repository) Delete(ctx context.Context, tenantID, id int64) (time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_times").
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID}).
		Suffix("RETURNING blocked_date").
		ToSql()

	if err != nil {
		return time.Time{}, fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	var date time.Time
	err = executor.QueryRowContext(ctx, query, args...).Scan(&date)
	if err == sql.ErrNoRows {
		return time.Time{}, ErrBlockedTimeNotFound
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	return date, nil
}
