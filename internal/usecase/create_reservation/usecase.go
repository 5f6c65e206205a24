package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/resago/booking-service/internal/domain"
	configRepo "github.com/resago/booking-service/internal/infra/storage/config"
	"github.com/resago/booking-service/internal/integrations/availability"
	catalogClient "github.com/resago/booking-service/internal/integrations/catalogservice"
	"github.com/resago/booking-service/internal/slotengine"
)

// UseCase use case для создания резервации
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

// Execute выполняет use case создания резервации.
// Запрошенное время повторно проверяется движком слотов внутри
// сериализуемой транзакции для предотвращения гонки данных.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: client=%d, etablissement=%d, prestation=%v, date=%s, time=%s",
		req.ClientID, req.EtablissementID, req.PrestationID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время и проверяем дату
	now := uc.timeProvider.Now()
	if err := validateDateNotInPast(req.Date, now); err != nil {
		uc.logger.Warn("CreateReservation: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, err
	}

	// 3. Получаем заведение из каталога
	etab, err := uc.catalogClient.GetEtablissement(ctx, req.EtablissementID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrEtablissementNotFound) {
			uc.logger.Warn("CreateReservation: etablissement id=%d not found", req.EtablissementID)
			return nil, ErrEtablissementNotFound
		}
		uc.logger.Error("CreateReservation: failed to get etablissement id=%d: %v", req.EtablissementID, err)
		return nil, fmt.Errorf("%w: failed to get etablissement: %v", ErrInternal, err)
	}

	etabType := domain.ParseEtablissementType(etab.BusinessType)

	// 4. Получаем услугу для денормализации названия
	var prestationName *string
	if req.PrestationID != nil {
		prestation, err := uc.catalogClient.GetPrestation(ctx, req.EtablissementID, *req.PrestationID)
		if err != nil {
			if errors.Is(err, catalogClient.ErrPrestationNotFound) {
				uc.logger.Warn("CreateReservation: prestation id=%d not found", *req.PrestationID)
				return nil, ErrPrestationNotFound
			}
			uc.logger.Error("CreateReservation: failed to get prestation id=%d: %v", *req.PrestationID, err)
			return nil, fmt.Errorf("%w: failed to get prestation: %v", ErrInternal, err)
		}
		prestationName = &prestation.Nom
	}

	dateISO := req.Date.Format(domain.DateFormat)

	// Переменная для хранения результата
	var result *domain.Reservation

	// 5. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Получаем конфигурацию слотов с учетом иерархии
		config, err := uc.configRepo.GetConfigWithHierarchy(txCtx, req.EtablissementID, req.PrestationID)
		if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Error("CreateReservation: failed to get config: %v", err)
			return fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
		}

		stepMinutes := domain.DefaultStepMinutes
		if config != nil {
			stepMinutes = config.StepMinutes
		}

		// 5.2. Запрашиваем серверный расчет доступности для услуги
		var serverSlots []string
		if req.PrestationID != nil {
			serverResult, err := uc.availabilityClient.FetchPrestationSlotsWithGracefulDegradation(
				txCtx, req.EtablissementID, *req.PrestationID, dateISO, stepMinutes)
			if err != nil {
				if !errors.Is(err, availability.ErrServiceDegraded) {
					return fmt.Errorf("%w: failed to fetch availability: %v", ErrInternal, err)
				}
				uc.logger.Warn("CreateReservation: availability degraded, validating against opening hours: %v", err)
			}
			if serverResult != nil {
				serverSlots = serverResult.Slots
			}
		}

		// 5.3. Читаем legacy-таблицу слотов на дату
		legacyTable, err := uc.reservationRepo.GetLegacySlots(txCtx, req.EtablissementID, req.Date, req.Date)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get legacy slots: %v", err)
			return fmt.Errorf("%w: failed to get legacy slots: %v", ErrInternal, err)
		}

		// 5.4. Финализируем список слотов на дату
		hours, err := slotengine.RowForDate(etab.OpeningHours, dateISO)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to match schedule row: %v", err)
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
		})
		if err != nil {
			uc.logger.Error("CreateReservation: failed to finalize slots: %v", err)
			return fmt.Errorf("%w: failed to finalize slots: %v", ErrInternal, err)
		}

		// 5.5. Запрошенное время должно быть в списке и быть доступным
		if !slotSelectable(slots.Slots, string(req.StartTime)) {
			uc.logger.Warn("CreateReservation: slot %s is not available on %s", req.StartTime, dateISO)
			return ErrSlotNotAvailable
		}

		// 5.6. Проверяем активные резервации на эту дату с блокировкой (FOR UPDATE)
		filter := domain.EtablissementReservationsFilter{
			EtablissementID: req.EtablissementID,
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false,
		}

		existing, err := uc.reservationRepo.GetByEtablissementWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		for _, res := range existing {
			if res.ClientID == req.ClientID && res.StartTime == req.StartTime {
				uc.logger.Warn("CreateReservation: client=%d already has reservation id=%d at %s %s",
					req.ClientID, res.ID, dateISO, req.StartTime)
				return ErrDuplicateReservation
			}
		}

		// 5.7. Создаем резервацию с денормализацией названия услуги
		reservation := &domain.Reservation{
			ClientID:        req.ClientID,
			EtablissementID: req.EtablissementID,
			PrestationID:    req.PrestationID,
			ReservationDate: req.Date,
			StartTime:       req.StartTime,
			PartySize:       req.PartySize,
			Status:          domain.StatusConfirmed,
			PrestationName:  prestationName,
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d", result.ID)

	return &Response{
		ID:              result.ID,
		ClientID:        result.ClientID,
		EtablissementID: result.EtablissementID,
		PrestationID:    result.PrestationID,
		Date:            result.ReservationDate,
		StartTime:       result.StartTime,
		PartySize:       result.PartySize,
		Status:          string(result.Status),
		PrestationName:  result.PrestationName,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
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
