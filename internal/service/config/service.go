package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/resago/booking-service/internal/domain"
	configRepo "github.com/resago/booking-service/internal/infra/storage/config"
	catalogClient "github.com/resago/booking-service/internal/integrations/catalogservice"
	"github.com/resago/booking-service/internal/service/config/models"
)

// Service сервис для работы с конфигурацией отображения слотов
type Service struct {
	configRepo    ConfigRepository
	catalogClient CatalogServiceClient
	logger        Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(
	configRepo ConfigRepository,
	catalogClient CatalogServiceClient,
	logger Logger,
) *Service {
	return &Service{
		configRepo:    configRepo,
		catalogClient: catalogClient,
		logger:        logger,
	}
}

// GetConfig получает конфигурацию слотов с иерархическим поиском:
// конфигурация конкретной услуги имеет приоритет над конфигурацией заведения.
// Когда ни одна строка не найдена, возвращает дефолтную конфигурацию
// по типу заведения.
func (s *Service) GetConfig(ctx context.Context, req *models.GetConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("GetConfig: fetching config for etablissement=%d, prestation=%v",
		req.EtablissementID, req.PrestationID)

	etab, err := s.catalogClient.GetEtablissement(ctx, req.EtablissementID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrEtablissementNotFound) {
			s.logger.Warn("GetConfig: etablissement id=%d not found", req.EtablissementID)
			return nil, ErrEtablissementNotFound
		}
		s.logger.Error("GetConfig: failed to get etablissement id=%d: %v", req.EtablissementID, err)
		return nil, fmt.Errorf("%w: failed to get etablissement: %v", ErrInternal, err)
	}

	config, err := s.configRepo.GetConfigWithHierarchy(ctx, req.EtablissementID, req.PrestationID)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			etabType := domain.ParseEtablissementType(etab.BusinessType)
			s.logger.Info("GetConfig: no config for etablissement=%d, returning defaults", req.EtablissementID)
			return models.FromDomainConfig(&domain.SlotsConfig{
				EtablissementID: req.EtablissementID,
				StepMinutes:     domain.DefaultStepMinutes,
				SegmentMode:     domain.DefaultSegmentModeFor(etabType),
			}), nil
		}
		s.logger.Error("GetConfig: repository error for etablissement=%d: %v", req.EtablissementID, err)
		return nil, fmt.Errorf("%w: GetConfig - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetConfig: successfully fetched config id=%d", config.ID)
	return models.FromDomainConfig(config), nil
}

// GetAllByEtablissement получает все конфигурации заведения
func (s *Service) GetAllByEtablissement(ctx context.Context, etablissementID int64) (*models.ConfigListResponse, error) {
	s.logger.Info("GetAllByEtablissement: fetching configs for etablissement=%d", etablissementID)

	configs, err := s.configRepo.GetByEtablissement(ctx, etablissementID)
	if err != nil {
		s.logger.Error("GetAllByEtablissement: repository error for etablissement=%d: %v", etablissementID, err)
		return nil, fmt.Errorf("%w: GetAllByEtablissement - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAllByEtablissement: successfully fetched %d configs for etablissement=%d",
		len(configs), etablissementID)
	return models.FromDomainConfigList(configs), nil
}

// Upsert создает или обновляет конфигурацию слотов.
// Проверяет существование заведения и услуги в каталоге.
func (s *Service) Upsert(ctx context.Context, req *models.UpsertConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Upsert: saving config for etablissement=%d, prestation=%v",
		req.EtablissementID, req.PrestationID)

	// 1. Валидируем входные данные
	if err := s.validateConfigData(req.StepMinutes, req.SegmentMode); err != nil {
		s.logger.Warn("Upsert: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование заведения
	if _, err := s.catalogClient.GetEtablissement(ctx, req.EtablissementID); err != nil {
		if errors.Is(err, catalogClient.ErrEtablissementNotFound) {
			s.logger.Warn("Upsert: etablissement id=%d not found", req.EtablissementID)
			return nil, ErrEtablissementNotFound
		}
		s.logger.Error("Upsert: failed to get etablissement id=%d: %v", req.EtablissementID, err)
		return nil, fmt.Errorf("%w: failed to get etablissement: %v", ErrInternal, err)
	}

	// 3. Проверяем существование услуги, если конфигурация для конкретной услуги
	if req.PrestationID != nil {
		if _, err := s.catalogClient.GetPrestation(ctx, req.EtablissementID, *req.PrestationID); err != nil {
			if errors.Is(err, catalogClient.ErrPrestationNotFound) {
				s.logger.Warn("Upsert: prestation id=%d not found", *req.PrestationID)
				return nil, ErrPrestationNotFound
			}
			s.logger.Error("Upsert: failed to get prestation id=%d: %v", *req.PrestationID, err)
			return nil, fmt.Errorf("%w: failed to get prestation: %v", ErrInternal, err)
		}
	}

	// 4. Сохраняем конфигурацию
	cfg := &domain.SlotsConfig{
		EtablissementID: req.EtablissementID,
		PrestationID:    req.PrestationID,
		StepMinutes:     req.StepMinutes,
		SegmentMode:     domain.SegmentModeName(req.SegmentMode),
	}

	if err := s.configRepo.Upsert(ctx, cfg); err != nil {
		s.logger.Error("Upsert: repository error for etablissement=%d: %v", req.EtablissementID, err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: successfully saved config id=%d for etablissement=%d", cfg.ID, req.EtablissementID)
	return models.FromDomainConfig(cfg), nil
}

// Delete удаляет конфигурацию слотов
func (s *Service) Delete(ctx context.Context, etablissementID int64, prestationID *int64) error {
	s.logger.Info("Delete: deleting config for etablissement=%d, prestation=%v", etablissementID, prestationID)

	if err := s.configRepo.Delete(ctx, etablissementID, prestationID); err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Warn("Delete: config not found for etablissement=%d, prestation=%v", etablissementID, prestationID)
			return ErrConfigNotFound
		}
		s.logger.Error("Delete: repository error for etablissement=%d: %v", etablissementID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted config for etablissement=%d", etablissementID)
	return nil
}

// validateConfigData проверяет значения конфигурации
func (s *Service) validateConfigData(stepMinutes int, segmentMode string) error {
	if stepMinutes < domain.MinStepMinutes || stepMinutes > domain.MaxStepMinutes {
		return fmt.Errorf("%w: stepMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinStepMinutes, domain.MaxStepMinutes)
	}

	if !domain.SegmentModeName(segmentMode).IsValid() {
		return fmt.Errorf("%w: segmentMode must be %q or %q",
			ErrInvalidInput, domain.SegmentModeBlocks, domain.SegmentModeMidiSoir)
	}

	return nil
}
