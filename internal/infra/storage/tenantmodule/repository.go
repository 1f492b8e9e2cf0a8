package tenantmodule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/slotline/availability-service/internal/domain"
	"github.com/slotline/availability-service/pkg/dbmetrics"
	"github.com/slotline/availability-service/pkg/psqlbuilder"
)

// DBExecutor интерфейс для выполнения запросов к БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с включенными модулями тенантов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория модулей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListByTenant получает все записи о модулях тенанта
// Модули без записи считаются выключенными
func (r *Repository) ListByTenant(ctx context.Context, tenantID int64) ([]*domain.TenantModule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"tenant_id",
		"module",
		"enabled",
		"created_at",
		"updated_at",
	).
		From("tenant_modules").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("module ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByTenant - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByTenant - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	modules := make([]*domain.TenantModule, 0)
	for rows.Next() {
		var m domain.TenantModule
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&m.ID,
			&m.TenantID,
			&m.Module,
			&m.Enabled,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByTenant - scan row: %v", ErrScanRow, err)
		}

		m.CreatedAt = createdAt.Time
		m.UpdatedAt = updatedAt.Time

		modules = append(modules, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByTenant - rows error: %v", ErrScanRow, err)
	}

	return modules, nil
}

// IsEnabled проверяет, включен ли модуль у тенанта
// Отсутствие записи трактуется как выключенный модуль
func (r *Repository) IsEnabled(ctx context.Context, tenantID int64, module domain.ModuleCode) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("enabled").
		From("tenant_modules").
		Where(squirrel.Eq{"tenant_id": tenantID, "module": module}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: IsEnabled - build select query: %v", ErrBuildQuery, err)
	}

	var enabled bool
	err = executor.QueryRowContext(ctx, query, args...).Scan(&enabled)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: IsEnabled - scan row: %v", ErrScanRow, err)
	}

	return enabled, nil
}

// Upsert создает или обновляет запись о включении модуля
func (r *Repository) Upsert(ctx context.Context, m *domain.TenantModule) (*domain.TenantModule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("tenant_modules").
		Columns("tenant_id", "module", "enabled").
		Values(m.TenantID, m.Module, m.Enabled).
		Suffix("ON CONFLICT (tenant_id, module) DO UPDATE SET enabled = EXCLUDED.enabled, updated_at = NOW()").
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&m.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	m.CreatedAt = createdAt.Time
	m.UpdatedAt = updatedAt.Time

	return m, nil
}
