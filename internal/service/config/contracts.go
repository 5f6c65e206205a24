package config

import (
	"context"

	"github.com/resago/booking-service/internal/domain"
	"github.com/resago/booking-service/internal/integrations/catalogservice"
)

// ConfigRepository интерфейс репозитория конфигурации слотов
type ConfigRepository interface {
	GetByEtablissement(ctx context.Context, etablissementID int64) ([]*domain.SlotsConfig, error)
	GetConfigWithHierarchy(ctx context.Context, etablissementID int64, prestationID *int64) (*domain.SlotsConfig, error)
	Upsert(ctx context.Context, cfg *domain.SlotsConfig) error
	Delete(ctx context.Context, etablissementID int64, prestationID *int64) error
}

// CatalogServiceClient интерфейс клиента каталога заведений
type CatalogServiceClient interface {
	GetEtablissement(ctx context.Context, etablissementID int64) (*catalogservice.Etablissement, error)
	GetPrestation(ctx context.Context, etablissementID, prestationID int64) (*catalogservice.Prestation, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
