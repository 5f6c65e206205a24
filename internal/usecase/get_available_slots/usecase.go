package get_available_slots

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

// UseCase use case для получения доступных слотов на дату
type UseCase struct {
	reservationRepo    ReservationRepository
	configRepo         ConfigRepository
	catalogClient      CatalogServiceClient
	availabilityClient AvailabilityClient
	timeProvider       TimeProvider
	logger             Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	configRepo ConfigRepository,
	catalogClient CatalogServiceClient,
	availabilityClient AvailabilityClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo:    reservationRepo,
		configRepo:         configRepo,
		catalogClient:      catalogClient,
		availabilityClient: availabilityClient,
		timeProvider:       &RealTimeProvider{},
		logger:             logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: client=%d, etablissement=%d, prestation=%v, date=%s",
		req.ClientID, req.EtablissementID, req.PrestationID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем заведение из каталога
	etab, err := uc.catalogClient.GetEtablissement(ctx, req.EtablissementID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrEtablissementNotFound) {
			uc.logger.Warn("GetAvailableSlots: etablissement id=%d not found", req.EtablissementID)
			return nil, ErrEtablissementNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get etablissement id=%d: %v", req.EtablissementID, err)
		return nil, fmt.Errorf("%w: failed to get etablissement: %v", ErrInternal, err)
	}

	etabType := domain.ParseEtablissementType(etab.BusinessType)

	// 4. Получаем конфигурацию слотов с учетом иерархии
	config, err := uc.configRepo.GetConfigWithHierarchy(ctx, req.EtablissementID, req.PrestationID)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get config: %v", err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}

	// Если конфигурация не найдена, используем дефолтные значения
	if config == nil {
		config = &domain.SlotsConfig{
			EtablissementID: req.EtablissementID,
			StepMinutes:     domain.DefaultStepMinutes,
			SegmentMode:     domain.DefaultSegmentModeFor(etabType),
		}
		uc.logger.Info("GetAvailableSlots: using default config for etablissement=%d", req.EtablissementID)
	} else {
		uc.logger.Info("GetAvailableSlots: using config id=%d", config.ID)
	}

	// Явный шаг из запроса имеет приоритет над конфигурацией
	stepMinutes := config.StepMinutes
	if req.StepMinutes != nil {
		stepMinutes = *req.StepMinutes
	}

	dateISO := req.Date.Format(domain.DateFormat)

	// 5. Для услуги запрашиваем серверный расчет доступности.
	// При недоступности сервиса продолжаем без него (graceful degradation).
	var serverSlots []string
	if req.PrestationID != nil {
		if _, err := uc.catalogClient.GetPrestation(ctx, req.EtablissementID, *req.PrestationID); err != nil {
			if errors.Is(err, catalogClient.ErrPrestationNotFound) {
				uc.logger.Warn("GetAvailableSlots: prestation id=%d not found", *req.PrestationID)
				return nil, ErrPrestationNotFound
			}
			uc.logger.Error("GetAvailableSlots: failed to get prestation id=%d: %v", *req.PrestationID, err)
			return nil, fmt.Errorf("%w: failed to get prestation: %v", ErrInternal, err)
		}

		serverResult, err := uc.availabilityClient.FetchPrestationSlotsWithGracefulDegradation(
			ctx, req.EtablissementID, *req.PrestationID, dateISO, stepMinutes)
		if err != nil {
			if !errors.Is(err, availability.ErrServiceDegraded) {
				return nil, fmt.Errorf("%w: failed to fetch availability: %v", ErrInternal, err)
			}
			uc.logger.Warn("GetAvailableSlots: availability degraded, falling back to opening hours: %v", err)
		}
		if serverResult != nil {
			serverSlots = serverResult.Slots
		}
	}

	// 6. Читаем legacy-таблицу слотов на дату
	legacyTable, err := uc.reservationRepo.GetLegacySlots(ctx, req.EtablissementID, req.Date, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get legacy slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get legacy slots: %v", ErrInternal, err)
	}

	// 7. Подбираем строку расписания на день недели
	hours, err := slotengine.RowForDate(etab.OpeningHours, dateISO)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to match schedule row: %v", err)
		return nil, fmt.Errorf("%w: failed to match schedule row: %v", ErrInternal, err)
	}

	// 8. Финализируем список слотов
	result, err := slotengine.Finalize(slotengine.Input{
		DateISO:         dateISO,
		Now:             now,
		Hours:           hours,
		UseDefaultHours: etabType.UsesDefaultHours(),
		StepMinutes:     stepMinutes,
		ServerSlots:     serverSlots,
		LegacyTable:     legacyTable,
		SelectedTime:    req.SelectedTime,
		Continuity:      continuityFor(etabType),
		Segmentation:    engineSegmentMode(config.SegmentMode),
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to finalize slots: %v", err)
		return nil, fmt.Errorf("%w: failed to finalize slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: %d slots (source=%s) for etablissement=%d, date=%s",
		len(result.Slots), domainSource(result.Source), req.EtablissementID, dateISO)

	return &Response{
		EtablissementID: req.EtablissementID,
		PrestationID:    req.PrestationID,
		Date:            req.Date,
		Source:          domainSource(result.Source),
		StepMinutes:     stepMinutes,
		Slots:           toSlotOptions(result.Slots),
		Segments:        toSegments(result.Segments),
	}, nil
}
