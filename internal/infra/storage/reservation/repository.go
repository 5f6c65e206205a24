package reservation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/resago/booking-service/internal/domain"
	"github.com/resago/booking-service/internal/slotengine"
	"github.com/resago/booking-service/pkg/dbmetrics"
	"github.com/resago/booking-service/pkg/psqlbuilder"
)

var reservationColumns = []string{
	"id",
	"client_id",
	"etablissement_id",
	"prestation_id",
	"reservation_date",
	"start_time",
	"party_size",
	"status",
	"prestation_name",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с резервациями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория резерваций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую резервацию.
// Если в контексте передана активная транзакция (через context.Value), использует её.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"client_id",
			"etablissement_id",
			"prestation_id",
			"reservation_date",
			"start_time",
			"party_size",
			"status",
			"prestation_name",
		).
		Values(
			res.ClientID,
			res.EtablissementID,
			res.PrestationID,
			res.ReservationDate,
			res.StartTime,
			res.PartySize,
			res.Status,
			res.PrestationName,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает резервацию по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var res domain.Reservation
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&res.ClientID,
		&res.EtablissementID,
		&res.PrestationID,
		&res.ReservationDate,
		&res.StartTime,
		&res.PartySize,
		&res.Status,
		&res.PrestationName,
		&res.CancellationReason,
		&res.CancelledAt,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

// GetByClientID получает список резерваций клиента
// Опционально фильтрует по статусу
func (r *Repository) GetByClientID(ctx context.Context, clientID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"client_id": clientID}).
		OrderBy("reservation_date DESC, start_time DESC")

	// Фильтрация по статусу, если указан
	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// GetByEtablissementWithFilter получает резервации заведения с гибкой фильтрацией.
// Внутри транзакции выборка на конкретную дату блокируется FOR UPDATE -
// это защита от гонки при создании резервации на тот же слот.
func (r *Repository) GetByEtablissementWithFilter(ctx context.Context, filter domain.EtablissementReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"etablissement_id": filter.EtablissementID})

	if filter.PrestationID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"prestation_id": *filter.PrestationID})
	}

	// Фильтрация по периоду
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"reservation_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"reservation_date": *filter.EndDate})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		// Если не указан конкретный статус и не нужны неактивные - исключаем их
		inactiveStatusStrings := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactiveStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings})
	}

	singleDate := filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate)
	if singleDate {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("reservation_date DESC, start_time DESC")
	}

	if dbmetrics.IsInTransaction(ctx) && singleDate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEtablissementWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEtablissementWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// Update обновляет изменяемые поля резервации (дата, время, услуга, количество гостей)
func (r *Repository) Update(ctx context.Context, res *domain.Reservation) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("reservation_date", res.ReservationDate).
		Set("start_time", res.StartTime).
		Set("prestation_id", res.PrestationID).
		Set("prestation_name", res.PrestationName).
		Set("party_size", res.PartySize).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": res.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// Cancel отменяет резервацию с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, status domain.ReservationStatus, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", status).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// GetLegacySlots читает legacy-таблицу слотов заведения за период.
// Результат сгруппирован по ISO дате в формате, который потребляет slotengine.
func (r *Repository) GetLegacySlots(ctx context.Context, etablissementID int64, from, to time.Time) (map[string][]slotengine.LegacyEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"slot_date",
		"slot_time",
		"reserved_by",
	).
		From("legacy_slots").
		Where(squirrel.Eq{"etablissement_id": etablissementID}).
		Where(squirrel.GtOrEq{"slot_date": from}).
		Where(squirrel.LtOrEq{"slot_date": to}).
		OrderBy("slot_date ASC, slot_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetLegacySlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetLegacySlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	table := make(map[string][]slotengine.LegacyEntry)
	for rows.Next() {
		var slotDate time.Time
		var slotTime string
		var reservedBy sql.NullString

		if err := rows.Scan(&slotDate, &slotTime, &reservedBy); err != nil {
			return nil, fmt.Errorf("%w: GetLegacySlots - scan row: %v", ErrScanRow, err)
		}

		entry := slotengine.LegacyEntry{Time: slotTime}
		if reservedBy.Valid {
			entry.ReservedBy = &reservedBy.String
		}

		dateISO := slotDate.Format(domain.DateFormat)
		table[dateISO] = append(table[dateISO], entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetLegacySlots - rows error: %v", ErrScanRow, err)
	}

	return table, nil
}

func (r *Repository) scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		var res domain.Reservation
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(
			&res.ID,
			&res.ClientID,
			&res.EtablissementID,
			&res.PrestationID,
			&res.ReservationDate,
			&res.StartTime,
			&res.PartySize,
			&res.Status,
			&res.PrestationName,
			&res.CancellationReason,
			&res.CancelledAt,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}

		res.CreatedAt = createdAt.Time
		res.UpdatedAt = updatedAt.Time
		reservations = append(reservations, &res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
