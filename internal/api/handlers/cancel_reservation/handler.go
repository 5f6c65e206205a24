package cancel_reservation

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/resago/booking-service/internal/api/handlers"
	"github.com/resago/booking-service/internal/api/middleware"
	reservationsService "github.com/resago/booking-service/internal/service/reservations"
)

const (
	msgInvalidReservationID = "identifiant de réservation invalide"
	msgInvalidBody          = "corps de requête invalide"
	msgInvalidInput         = "données d'annulation invalides"
	msgReservationNotFound  = "réservation introuvable"
	msgAccessDenied         = "accès refusé"
	msgCannotCancel         = "la réservation ne peut plus être annulée"
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

// Handle PATCH /api/v1/reservations/{reservationId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID := middleware.GetClientID(r.Context())
	vars := mux.Vars(r)

	// Извлекаем reservationId из URL
	reservationIDStr := vars["reservationId"]
	reservationID, err := strconv.ParseInt(reservationIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/cancel - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	// Декодируем тело запроса (пустое тело допустимо - отмена без причины)
	var req CancelReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PATCH /reservations/{id}/cancel - Invalid request body: reservation_id=%d, error=%v",
			reservationID, err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	// Вызываем сервис
	if err := h.service.Cancel(r.Context(), reservationID, req.ToServiceRequest(clientID)); err != nil {
		switch {
		case errors.Is(err, reservationsService.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Reservation not found: reservation_id=%d, client_id=%d",
				reservationID, clientID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, reservationsService.ErrAccessDenied):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Access denied: reservation_id=%d, client_id=%d",
				reservationID, clientID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, reservationsService.ErrCannotCancel):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Cannot cancel: reservation_id=%d, client_id=%d",
				reservationID, clientID)
			handlers.RespondConflict(w, msgCannotCancel)

		case errors.Is(err, reservationsService.ErrInvalidInput):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Invalid input: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /reservations/{id}/cancel - Failed to cancel reservation: reservation_id=%d, client_id=%d, error=%v",
				reservationID, clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/cancel - Reservation cancelled successfully: reservation_id=%d, client_id=%d",
		reservationID, clientID)
	w.WriteHeader(http.StatusNoContent)
}
