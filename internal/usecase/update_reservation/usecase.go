package update_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/resago/booking-service/internal/domain"
	configRepo "github.com/resago/booking-service/internal/infra/storage/config"
	storage "github.com/resago/booking-service/internal/infra/storage/reservation"
	"github.com/resago/booking-service/internal/integrations/availability"
	catalogClient "github.com/resago/booking-service/internal/integrations/catalogservice"
	"github.com/resago/booking-service/internal/slotengine"
)

// UseCase use case для изменения резервации (перенос даты, времени, услуги).
// Ресторанный flow всегда проверяет новое время по свежему списку, остальные
// типы заведений сохраняют текущее время редактируемой резервации в списке
// (режим непрерывности движка).
type UseCase struct {
	reservationRepo    ReservationRepository
	configRepo         ConfigRepository
	catalogClient      CatalogServiceClient
	availabilityClient AvailabilityClient
	txManager          TransactionManager
	timeProvider       TimeProvider
	logger             Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	configRepo ConfigRepository,
	catalogClient CatalogServiceClient,
	availabilityClient AvailabilityClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo:    reservationRepo,
		configRepo:         configRepo,
		catalogClient:      catalogClient,
		availabilityClient: availabilityClient,
		txManager:          txManager,
		timeProvider:       &RealTimeProvider{},
		logger:             logger,
	}
}

// Execute выполняет use case изменения резервации
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateReservation: reservation=%d, client=%d, date=%s, time=%s",
		req.ReservationID, req.ClientID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время и проверяем дату
	now := uc.timeProvider.Now()
	if err := validateDateNotInPast(req.Date, now); err != nil {
		uc.logger.Warn("UpdateReservation: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, err
	}

	// 3. Получаем резервацию и проверяем права доступа
	reservation, err := uc.reservationRepo.GetByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, storage.ErrReservationNotFound) {
			uc.logger.Warn("UpdateReservation: reservation id=%d not found", req.ReservationID)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("UpdateReservation: failed to get reservation id=%d: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}

	if reservation.ClientID != req.ClientID {
		uc.logger.Warn("UpdateReservation: client=%d tried to edit reservation id=%d of client=%d",
			req.ClientID, reservation.ID, reservation.ClientID)
		return nil, ErrAccessDenied
	}

	if !reservation.CanBeUpdated() {
		uc.logger.Warn("UpdateReservation: reservation id=%d in status %s is not editable",
			reservation.ID, reservation.Status)
		return nil, ErrReservationNotEditable
	}

	// 4. Получаем заведение из каталога
	etab, err := uc.catalogClient.GetEtablissement(ctx, reservation.EtablissementID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrEtablissementNotFound) {
			uc.logger.Warn("UpdateReservation: etablissement id=%d not found", reservation.EtablissementID)
			return nil, ErrEtablissementNotFound
		}
		uc.logger.Error("UpdateReservation: failed to get etablissement id=%d: %v", reservation.EtablissementID, err)
		return nil, fmt.Errorf("%w: failed to get etablissement: %v", ErrInternal, err)
	}

	etabType := domain.ParseEtablissementType(etab.BusinessType)

	// 5. Определяем целевую услугу: из запроса или прежняя
	targetPrestationID := reservation.PrestationID
	if req.PrestationID != nil {
		targetPrestationID = req.PrestationID
	}

	prestationName := reservation.PrestationName
	if targetPrestationID != nil {
		prestation, err := uc.catalogClient.GetPrestation(ctx, reservation.EtablissementID, *targetPrestationID)
		if err != nil {
			if errors.Is(err, catalogClient.ErrPrestationNotFound) {
				uc.logger.Warn("UpdateReservation: prestation id=%d not found", *targetPrestationID)
				return nil, ErrPrestationNotFound
			}
			uc.logger.Error("UpdateReservation: failed to get prestation id=%d: %v", *targetPrestationID, err)
			return nil, fmt.Errorf("%w: failed to get prestation: %v", ErrInternal, err)
		}
		prestationName = &prestation.Nom
	}

	dateISO := req.Date.Format(domain.DateFormat)
	sameDate := reservation.ReservationDate.Format(domain.DateFormat) == dateISO

	// Время редактируемой резервации участвует в расчете, только когда дата
	// не меняется: на другой день прежний выбор не переносится
	selectedTime := ""
	if sameDate {
		selectedTime = string(reservation.StartTime)
	}

	// 6. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Получаем конфигурацию слотов с учетом иерархии
		config, err := uc.configRepo.GetConfigWithHierarchy(txCtx, reservation.EtablissementID, targetPrestationID)
		if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Error("UpdateReservation: failed to get config: %v", err)
			return fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
		}

		stepMinutes := domain.DefaultStepMinutes
		if config != nil {
			stepMinutes = config.StepMinutes
		}

		// 6.2. Запрашиваем серверный расчет доступности для услуги
		var serverSlots []string
		if targetPrestationID != nil {
			serverResult, err := uc.availabilityClient.FetchPrestationSlotsWithGracefulDegradation(
				txCtx, reservation.EtablissementID, *targetPrestationID, dateISO, stepMinutes)
			if err != nil {
				if !errors.Is(err, availability.ErrServiceDegraded) {
					return fmt.Errorf("%w: failed to fetch availability: %v", ErrInternal, err)
				}
				uc.logger.Warn("UpdateReservation: availability degraded, validating against opening hours: %v", err)
			}
			if serverResult != nil {
				serverSlots = serverResult.Slots
			}
		}

		// 6.3. Читаем legacy-таблицу слотов на дату
		legacyTable, err := uc.reservationRepo.GetLegacySlots(txCtx, reservation.EtablissementID, req.Date, req.Date)
		if err != nil {
			uc.logger.Error("UpdateReservation: failed to get legacy slots: %v", err)
			return fmt.Errorf("%w: failed to get legacy slots: %v", ErrInternal, err)
		}

		// 6.4. Финализируем список слотов с учетом режима непрерывности
		hours, err := slotengine.RowForDate(etab.OpeningHours, dateISO)
		if err != nil {
			uc.logger.Error("UpdateReservation: failed to match schedule row: %v", err)
			return fmt.Errorf("%w: failed to match schedule row: %v", ErrInternal, err)
		}

		slots, err := slotengine.Finalize(slotengine.Input{
			DateISO:         dateISO,
			Now:             now,
			Hours:           hours,
			UseDefaultHours: etabType.UsesDefaultHours(),
			StepMinutes:     stepMinutes,
			ServerSlots:     serverSlots,
			LegacyTable:     legacyTable,
			SelectedTime:    selectedTime,
			Continuity:      continuityFor(etabType),
		})
		if err != nil {
			uc.logger.Error("UpdateReservation: failed to finalize slots: %v", err)
			return fmt.Errorf("%w: failed to finalize slots: %v", ErrInternal, err)
		}

		// 6.5. Новое время должно быть доступно; сохранение собственного
		// времени резервации допустимо всегда
		keepingOwnTime := sameDate && req.StartTime == reservation.StartTime
		if !keepingOwnTime && !slotSelectable(slots.Slots, string(req.StartTime)) {
			uc.logger.Warn("UpdateReservation: slot %s is not available on %s", req.StartTime, dateISO)
			return ErrSlotNotAvailable
		}

		// 6.6. Проверяем другие активные резервации клиента на эту дату (FOR UPDATE)
		filter := domain.EtablissementReservationsFilter{
			EtablissementID: reservation.EtablissementID,
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false,
		}

		existing, err := uc.reservationRepo.GetByEtablissementWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("UpdateReservation: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		for _, res := range existing {
			if res.ID != reservation.ID && res.ClientID == req.ClientID && res.StartTime == req.StartTime {
				uc.logger.Warn("UpdateReservation: client=%d already has reservation id=%d at %s %s",
					req.ClientID, res.ID, dateISO, req.StartTime)
				return ErrDuplicateReservation
			}
		}

		// 6.7. Применяем изменения
		reservation.ReservationDate = req.Date
		reservation.StartTime = req.StartTime
		reservation.PrestationID = targetPrestationID
		reservation.PrestationName = prestationName
		if req.PartySize != nil {
			reservation.PartySize = req.PartySize
		}

		if err := uc.reservationRepo.Update(txCtx, reservation); err != nil {
			uc.logger.Error("UpdateReservation: failed to update reservation id=%d: %v", reservation.ID, err)
			return fmt.Errorf("%w: failed to update reservation: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateReservation: successfully updated reservation id=%d", reservation.ID)

	return &Response{
		ID:              reservation.ID,
		ClientID:        reservation.ClientID,
		EtablissementID: reservation.EtablissementID,
		PrestationID:    reservation.PrestationID,
		Date:            reservation.ReservationDate,
		StartTime:       reservation.StartTime,
		PartySize:       reservation.PartySize,
		Status:          string(reservation.Status),
		PrestationName:  reservation.PrestationName,
		CreatedAt:       reservation.CreatedAt,
		UpdatedAt:       reservation.UpdatedAt,
	}, nil
}

// continuityFor выбирает режим непрерывности по типу заведения
func continuityFor(t domain.EtablissementType) slotengine.ContinuityMode {
	if t.IsRestaurant() {
		return slotengine.ContinuityTrustSource
	}
	return slotengine.ContinuityPreserveSelection
}

// slotSelectable проверяет, что время присутствует в списке и доступно для выбора
func slotSelectable(slots []slotengine.Slot, target string) bool {
	for _, s := range slots {
		if s.Time == target {
			return s.Selectable
		}
	}
	return false
}
