package config

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/resago/booking-service/internal/domain"
	"github.com/resago/booking-service/pkg/dbmetrics"
	"github.com/resago/booking-service/pkg/psqlbuilder"
)

var configColumns = []string{
	"id",
	"etablissement_id",
	"prestation_id",
	"step_minutes",
	"segment_mode",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с конфигурациями слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигураций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetConfigWithHierarchy получает конфигурацию слотов с учетом иерархии приоритетов:
// 1. Конфигурация конкретной престации (etablissement_id + prestation_id)
// 2. Конфигурация всего заведения (etablissement_id, prestation_id IS NULL)
// Если ничего не найдено - возвращает ErrConfigNotFound.
func (r *Repository) GetConfigWithHierarchy(ctx context.Context, etablissementID int64, prestationID *int64) (*domain.SlotsConfig, error) {
	// Уровень 1: конфигурация конкретной престации
	if prestationID != nil {
		cfg, err := r.getByKey(ctx, etablissementID, prestationID)
		if err == nil {
			return cfg, nil
		}
		if err != ErrConfigNotFound {
			return nil, err
		}
	}

	// Уровень 2: конфигурация заведения целиком
	return r.getByKey(ctx, etablissementID, nil)
}

// GetByEtablissement получает все конфигурации заведения.
// Конфигурация уровня заведения (если есть) идет первой.
func (r *Repository) GetByEtablissement(ctx context.Context, etablissementID int64) ([]*domain.SlotsConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(configColumns...).
		From("slots_configs").
		Where(squirrel.Eq{"etablissement_id": etablissementID}).
		OrderBy("prestation_id ASC NULLS FIRST").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByEtablissement - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEtablissement - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	configs := make([]*domain.SlotsConfig, 0)
	for rows.Next() {
		var cfg domain.SlotsConfig
		var createdAt, updatedAt sql.NullTime
		if err := rows.Scan(
			&cfg.ID,
			&cfg.EtablissementID,
			&cfg.PrestationID,
			&cfg.StepMinutes,
			&cfg.SegmentMode,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: GetByEtablissement - scan row: %v", ErrScanRow, err)
		}
		cfg.CreatedAt = createdAt.Time
		cfg.UpdatedAt = updatedAt.Time
		configs = append(configs, &cfg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByEtablissement - rows error: %v", ErrScanRow, err)
	}

	return configs, nil
}

// Upsert создает или обновляет конфигурацию слотов.
// Ключ уникальности - пара (etablissement_id, prestation_id), NULL престация
// означает конфигурацию уровня заведения.
func (r *Repository) Upsert(ctx context.Context, cfg *domain.SlotsConfig) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	conflictTarget := "(etablissement_id, prestation_id) WHERE prestation_id IS NOT NULL"
	if cfg.PrestationID == nil {
		conflictTarget = "(etablissement_id) WHERE prestation_id IS NULL"
	}

	query, args, err := psqlbuilder.Insert("slots_configs").
		Columns(
			"etablissement_id",
			"prestation_id",
			"step_minutes",
			"segment_mode",
		).
		Values(
			cfg.EtablissementID,
			cfg.PrestationID,
			cfg.StepMinutes,
			cfg.SegmentMode,
		).
		Suffix(fmt.Sprintf(
			"ON CONFLICT %s DO UPDATE SET step_minutes = EXCLUDED.step_minutes, segment_mode = EXCLUDED.segment_mode, updated_at = NOW() RETURNING id, created_at, updated_at",
			conflictTarget,
		)).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return nil
}

// Delete удаляет конфигурацию слотов по ключу
func (r *Repository) Delete(ctx context.Context, etablissementID int64, prestationID *int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteBuilder := psqlbuilder.Delete("slots_configs").
		Where(squirrel.Eq{"etablissement_id": etablissementID})

	if prestationID != nil {
		deleteBuilder = deleteBuilder.Where(squirrel.Eq{"prestation_id": *prestationID})
	} else {
		deleteBuilder = deleteBuilder.Where("prestation_id IS NULL")
	}

	query, args, err := deleteBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrConfigNotFound
	}

	return nil
}

func (r *Repository) getByKey(ctx context.Context, etablissementID int64, prestationID *int64) (*domain.SlotsConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(configColumns...).
		From("slots_configs").
		Where(squirrel.Eq{"etablissement_id": etablissementID})

	if prestationID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"prestation_id": *prestationID})
	} else {
		selectBuilder = selectBuilder.Where("prestation_id IS NULL")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getByKey - build select query: %v", ErrBuildQuery, err)
	}

	var cfg domain.SlotsConfig
	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&cfg.EtablissementID,
		&cfg.PrestationID,
		&cfg.StepMinutes,
		&cfg.SegmentMode,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getByKey - scan config: %v", ErrScanRow, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return &cfg, nil
}
