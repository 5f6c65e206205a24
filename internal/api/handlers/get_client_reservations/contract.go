package get_client_reservations

import (
	"context"

	"github.com/resago/booking-service/internal/service/reservations/models"
)

type ReservationsService interface {
	GetClientReservations(ctx context.Context, req *models.GetClientReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
