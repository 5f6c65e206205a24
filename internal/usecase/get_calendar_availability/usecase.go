package get_calendar_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/resago/booking-service/internal/domain"
	configRepo "github.com/resago/booking-service/internal/infra/storage/config"
	catalogClient "github.com/resago/booking-service/internal/integrations/catalogservice"
	"github.com/resago/booking-service/internal/slotengine"
)

// UseCase use case для календарной доступности: по каждой дате периода
// отвечает, есть ли хотя бы один слот. Серверный расчет доступности сюда
// не подмешивается - календарь строится из часов работы и legacy-таблицы,
// точный список слотов клиент запрашивает отдельно на выбранную дату.
type UseCase struct {
	reservationRepo ReservationRepository
	configRepo      ConfigRepository
	catalogClient   CatalogServiceClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	configRepo ConfigRepository,
	catalogClient CatalogServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		configRepo:      configRepo,
		catalogClient:   catalogClient,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case календарной доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetCalendarAvailability: client=%d, etablissement=%d, prestation=%v, from=%s, to=%s",
		req.ClientID, req.EtablissementID, req.PrestationID,
		req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetCalendarAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем заведение из каталога
	etab, err := uc.catalogClient.GetEtablissement(ctx, req.EtablissementID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrEtablissementNotFound) {
			uc.logger.Warn("GetCalendarAvailability: etablissement id=%d not found", req.EtablissementID)
			return nil, ErrEtablissementNotFound
		}
		uc.logger.Error("GetCalendarAvailability: failed to get etablissement id=%d: %v", req.EtablissementID, err)
		return nil, fmt.Errorf("%w: failed to get etablissement: %v", ErrInternal, err)
	}

	etabType := domain.ParseEtablissementType(etab.BusinessType)

	// 4. Проверяем существование услуги, если указана
	if req.PrestationID != nil {
		if _, err := uc.catalogClient.GetPrestation(ctx, req.EtablissementID, *req.PrestationID); err != nil {
			if errors.Is(err, catalogClient.ErrPrestationNotFound) {
				uc.logger.Warn("GetCalendarAvailability: prestation id=%d not found", *req.PrestationID)
				return nil, ErrPrestationNotFound
			}
			uc.logger.Error("GetCalendarAvailability: failed to get prestation id=%d: %v", *req.PrestationID, err)
			return nil, fmt.Errorf("%w: failed to get prestation: %v", ErrInternal, err)
		}
	}

	// 5. Получаем конфигурацию слотов с учетом иерархии
	config, err := uc.configRepo.GetConfigWithHierarchy(ctx, req.EtablissementID, req.PrestationID)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		uc.logger.Error("GetCalendarAvailability: failed to get config: %v", err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}

	stepMinutes := domain.DefaultStepMinutes
	if config != nil {
		stepMinutes = config.StepMinutes
	}

	// 6. Читаем legacy-таблицу одним запросом на весь период
	legacyTable, err := uc.reservationRepo.GetLegacySlots(ctx, req.EtablissementID, req.From, req.To)
	if err != nil {
		uc.logger.Error("GetCalendarAvailability: failed to get legacy slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get legacy slots: %v", ErrInternal, err)
	}

	// 7. По каждой дате периода спрашиваем движок о наличии слотов
	days := make([]DayAvailability, 0, int(req.To.Sub(req.From).Hours()/24)+1)
	for date := req.From; !date.After(req.To); date = date.AddDate(0, 0, 1) {
		dateISO := date.Format(domain.DateFormat)

		hours, err := slotengine.RowForDate(etab.OpeningHours, dateISO)
		if err != nil {
			uc.logger.Error("GetCalendarAvailability: failed to match schedule row for %s: %v", dateISO, err)
			return nil, fmt.Errorf("%w: failed to match schedule row: %v", ErrInternal, err)
		}

		available, err := slotengine.HasAvailability(slotengine.Input{
			DateISO:         dateISO,
			Now:             now,
			Hours:           hours,
			UseDefaultHours: etabType.UsesDefaultHours(),
			StepMinutes:     stepMinutes,
			LegacyTable:     legacyTable,
		})
		if err != nil {
			uc.logger.Error("GetCalendarAvailability: failed to check availability for %s: %v", dateISO, err)
			return nil, fmt.Errorf("%w: failed to check availability: %v", ErrInternal, err)
		}

		days = append(days, DayAvailability{Date: date, Available: available})
	}

	uc.logger.Info("GetCalendarAvailability: %d days computed for etablissement=%d", len(days), req.EtablissementID)

	return &Response{
		EtablissementID: req.EtablissementID,
		PrestationID:    req.PrestationID,
		Days:            days,
	}, nil
}
