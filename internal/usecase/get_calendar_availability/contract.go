package get_calendar_availability

import (
	"context"
	"time"

	"github.com/resago/booking-service/internal/domain"
	"github.com/resago/booking-service/internal/integrations/catalogservice"
	"github.com/resago/booking-service/internal/slotengine"
)

// ReservationRepository интерфейс репозитория резерваций
type ReservationRepository interface {
	// GetLegacySlots читает legacy-таблицу слотов заведения за период
	GetLegacySlots(ctx context.Context, etablissementID int64, from, to time.Time) (map[string][]slotengine.LegacyEntry, error)
}

// ConfigRepository интерфейс репозитория конфигурации слотов
type ConfigRepository interface {
	GetConfigWithHierarchy(ctx context.Context, etablissementID int64, prestationID *int64) (*domain.SlotsConfig, error)
}

// CatalogServiceClient интерфейс клиента каталога заведений
type CatalogServiceClient interface {
	GetEtablissement(ctx context.Context, etablissementID int64) (*catalogservice.Etablissement, error)
	GetPrestation(ctx context.Context, etablissementID, prestationID int64) (*catalogservice.Prestation, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
