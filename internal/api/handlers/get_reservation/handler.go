package get_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/resago/booking-service/internal/api/handlers"
	"github.com/resago/booking-service/internal/api/middleware"
	reservationsService "github.com/resago/booking-service/internal/service/reservations"
)

const (
	msgInvalidReservationID = "identifiant de réservation invalide"
	msgReservationNotFound  = "réservation introuvable"
	msgAccessDenied         = "accès refusé"
)

type Handler struct {
	service ReservationsService
	logger  Logger
}

func NewHandler(service ReservationsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID := middleware.GetClientID(r.Context())
	vars := mux.Vars(r)

	// Извлекаем reservationId из URL
	reservationIDStr := vars["reservationId"]
	reservationID, err := strconv.ParseInt(reservationIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /reservations/{id} - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	// Вызываем сервис
	result, err := h.service.GetByID(r.Context(), reservationID, clientID)
	if err != nil {
		switch {
		case errors.Is(err, reservationsService.ErrReservationNotFound):
			h.logger.Warn("GET /reservations/{id} - Reservation not found: reservation_id=%d, client_id=%d",
				reservationID, clientID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, reservationsService.ErrAccessDenied):
			h.logger.Warn("GET /reservations/{id} - Access denied: reservation_id=%d, client_id=%d",
				reservationID, clientID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /reservations/{id} - Failed to get reservation: reservation_id=%d, client_id=%d, error=%v",
				reservationID, clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /reservations/{id} - Reservation retrieved successfully: reservation_id=%d, client_id=%d",
		reservationID, clientID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
