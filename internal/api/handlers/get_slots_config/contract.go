package get_slots_config

import (
	"context"

	"github.com/resago/booking-service/internal/service/config/models"
)

type ConfigService interface {
	GetConfig(ctx context.Context, req *models.GetConfigRequest) (*models.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
