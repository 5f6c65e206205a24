package get_client_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/resago/booking-service/internal/api/handlers"
	"github.com/resago/booking-service/internal/api/middleware"
	reservationsService "github.com/resago/booking-service/internal/service/reservations"
	"github.com/resago/booking-service/internal/service/reservations/models"
)

const (
	msgInvalidClientID = "identifiant de client invalide"
	msgAccessDenied    = "accès refusé"
	msgInvalidStatus   = "statut de réservation invalide"
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

// Handle GET /api/v1/clients/{clientId}/reservations
// Query params: status (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	authClientID := middleware.GetClientID(r.Context())
	vars := mux.Vars(r)

	// Извлекаем clientId из URL
	clientIDStr := vars["clientId"]
	clientID, err := strconv.ParseInt(clientIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /clients/{id}/reservations - Invalid client ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClientID)
		return
	}

	// Клиент видит только собственные резервации
	if clientID != authClientID {
		h.logger.Warn("GET /clients/{id}/reservations - Access denied: client_id=%d, auth_client_id=%d",
			clientID, authClientID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	// Извлекаем status из query параметров (опционально)
	var status *string
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		status = &statusStr
	}

	// Вызываем сервис
	result, err := h.service.GetClientReservations(r.Context(), &models.GetClientReservationsRequest{
		ClientID: clientID,
		Status:   status,
	})
	if err != nil {
		switch {
		case errors.Is(err, reservationsService.ErrInvalidInput):
			h.logger.Warn("GET /clients/{id}/reservations - Invalid status: client_id=%d, error=%v", clientID, err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /clients/{id}/reservations - Failed to get reservations: client_id=%d, error=%v",
				clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /clients/{id}/reservations - Reservations retrieved successfully: client_id=%d, count=%d",
		clientID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
