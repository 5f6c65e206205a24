package get_calendar

import (
	"context"

	getCalendarAvailability "github.com/resago/booking-service/internal/usecase/get_calendar_availability"
)

// GetCalendarAvailabilityUseCase интерфейс use case для календарной доступности
type GetCalendarAvailabilityUseCase interface {
	Execute(ctx context.Context, req *getCalendarAvailability.Request) (*getCalendarAvailability.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
