package cancel_reservation

import (
	"context"

	"github.com/resago/booking-service/internal/service/reservations/models"
)

type ReservationsService interface {
	Cancel(ctx context.Context, reservationID int64, req *models.CancelReservationRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
