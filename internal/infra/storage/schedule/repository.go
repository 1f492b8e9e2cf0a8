package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/slotline/availability-service/internal/domain"
	"github.com/slotline/availability-service/pkg/dbmetrics"
	"github.com/slotline/availability-service/pkg/psqlbuilder"
)

// Repository репозиторий для работы с расписанием тенанта:
// рабочие часы, перерывы и окна отгулов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetWeekSchedule получает недельное расписание тенанта целиком:
// рабочие часы и перерывы по всем настроенным дням недели
func (r *Repository) GetWeekSchedule(ctx context.Context, tenantID int64) (*domain.WeekSchedule, error) {
	days, err := r.getBusinessDays(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	breaks, err := r.getBreaks(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	return &domain.WeekSchedule{
		TenantID: tenantID,
		Days:     days,
		Breaks:   breaks,
	}, nil
}

// ReplaceBusinessDays заменяет рабочие часы тенанта целиком
// Выполняется как delete + insert; вызывать внутри транзакции
func (r *Repository) ReplaceBusinessDays(ctx context.Context, tenantID int64, days []domain.BusinessDay) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("business_days").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceBusinessDays - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceBusinessDays - execute delete: %v", ErrExecQuery, err)
	}

	if len(days) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("business_days").
		Columns("tenant_id", "weekday", "open_time", "close_time")
	for _, d := range days {
		insertBuilder = insertBuilder.Values(tenantID, int(d.Weekday), d.OpenTime, d.CloseTime)
	}

	query, args, err = insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceBusinessDays - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceBusinessDays - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// ReplaceBreaks заменяет перерывы тенанта целиком
// Выполняется как delete + insert; вызывать внутри транзакции
func (r *Repository) ReplaceBreaks(ctx context.Context, tenantID int64, breaks []domain.BreakWindow) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("break_windows").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceBreaks - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceBreaks - execute delete: %v", ErrExecQuery, err)
	}

	if len(breaks) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("break_windows").
		Columns("tenant_id", "weekday", "start_time", "end_time")
	for _, b := range breaks {
		insertBuilder = insertBuilder.Values(tenantID, int(b.Weekday), b.StartTime, b.EndTime)
	}

	query, args, err = insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceBreaks - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceBreaks - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// CreateTimeOff создает окно отгула
func (r *Repository) CreateTimeOff(ctx context.Context, timeOff *domain.TimeOffWindow) (*domain.TimeOffWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("time_off").
		Columns("tenant_id", "starts_at", "ends_at", "reason").
		Values(timeOff.TenantID, timeOff.StartsAt, timeOff.EndsAt, timeOff.Reason).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateTimeOff - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&timeOff.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateTimeOff - execute insert: %v", ErrExecQuery, err)
	}

	timeOff.CreatedAt = createdAt.Time
	timeOff.UpdatedAt = updatedAt.Time

	return timeOff, nil
}

// ListTimeOff получает окна отгулов тенанта, пересекающиеся с периодом [from, to)
// Сравнение полуоткрытое: окно, заканчивающееся ровно в from, не попадает в выборку
func (r *Repository) ListTimeOff(ctx context.Context, tenantID int64, from, to time.Time) ([]*domain.TimeOffWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"tenant_id",
		"starts_at",
		"ends_at",
		"reason",
		"created_at",
		"updated_at",
	).
		From("time_off").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.Lt{"starts_at": to}).
		Where(squirrel.Gt{"ends_at": from}).
		OrderBy("starts_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListTimeOff - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListTimeOff - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]*domain.TimeOffWindow, 0)
	for rows.Next() {
		var window domain.TimeOffWindow
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&window.ID,
			&window.TenantID,
			&window.StartsAt,
			&window.EndsAt,
			&window.Reason,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListTimeOff - scan row: %v", ErrScanRow, err)
		}

		window.CreatedAt = createdAt.Time
		window.UpdatedAt = updatedAt.Time

		windows = append(windows, &window)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListTimeOff - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}

// DeleteTimeOff удаляет окно отгула тенанта
func (r *Repository) DeleteTimeOff(ctx context.Context, tenantID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("time_off").
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteTimeOff - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteTimeOff - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteTimeOff - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrTimeOffNotFound
	}

	return nil
}

// getBusinessDays получает рабочие часы тенанта по дням недели
func (r *Repository) getBusinessDays(ctx context.Context, tenantID int64) ([]domain.BusinessDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"tenant_id",
		"weekday",
		"open_time",
		"close_time",
		"created_at",
		"updated_at",
	).
		From("business_days").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("weekday ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getBusinessDays - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getBusinessDays - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	days := make([]domain.BusinessDay, 0)
	for rows.Next() {
		var day domain.BusinessDay
		var weekday int
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&day.ID,
			&day.TenantID,
			&weekday,
			&day.OpenTime,
			&day.CloseTime,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: getBusinessDays - scan row: %v", ErrScanRow, err)
		}

		day.Weekday = domain.Weekday(weekday)
		day.CreatedAt = createdAt.Time
		day.UpdatedAt = updatedAt.Time

		days = append(days, day)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getBusinessDays - rows error: %v", ErrScanRow, err)
	}

	return days, nil
}

// getBreaks получает перерывы тенанта по дням недели
func (r *Repository) getBreaks(ctx context.Context, tenantID int64) ([]domain.BreakWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"tenant_id",
		"weekday",
		"start_time",
		"end_time",
		"created_at",
		"updated_at",
	).
		From("break_windows").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("weekday ASC, start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getBreaks - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getBreaks - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	breaks := make([]domain.BreakWindow, 0)
	for rows.Next() {
		var window domain.BreakWindow
		var weekday int
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&window.ID,
			&window.TenantID,
			&weekday,
			&window.StartTime,
			&window.EndTime,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: getBreaks - scan row: %v", ErrScanRow, err)
		}

		window.Weekday = domain.Weekday(weekday)
		window.CreatedAt = createdAt.Time
		window.UpdatedAt = updatedAt.Time

		breaks = append(breaks, window)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getBreaks - rows error: %v", ErrScanRow, err)
	}

	return breaks, nil
}
