package update_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/resago/booking-service/internal/api/handlers"
	"github.com/resago/booking-service/internal/api/middleware"
	updateReservation "github.com/resago/booking-service/internal/usecase/update_reservation"
)

const (
	msgInvalidReservationID = "identifiant de réservation invalide"
	msgInvalidBody          = "corps de requête invalide"
	msgInvalidDate          = "format de date invalide, attendu YYYY-MM-DD"
	msgInvalidInput         = "données de réservation invalides"
	msgReservationNotFound  = "réservation introuvable"
	msgAccessDenied         = "accès refusé"
	msgNotEditable          = "la réservation ne peut plus être modifiée"
	msgEtablissementGone    = "établissement introuvable"
	msgPrestationNotFound   = "prestation introuvable"
	msgSlotNotAvailable     = "le créneau demandé n'est plus disponible"
	msgDuplicateReservation = "une réservation existe déjà pour ce créneau"
)

type Handler struct {
	useCase UpdateReservationUseCase
	logger  Logger
}

func NewHandler(useCase UpdateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID := middleware.GetClientID(r.Context())
	vars := mux.Vars(r)

	// Извлекаем reservationId из URL
	reservationIDStr := vars["reservationId"]
	reservationID, err := strconv.ParseInt(reservationIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /reservations/{id} - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	// Декодируем тело запроса
	var req UpdateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /reservations/{id} - Invalid request body: reservation_id=%d, error=%v", reservationID, err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := req.ToUseCaseRequest(reservationID, clientID)
	if err != nil {
		h.logger.Warn("PUT /reservations/{id} - Invalid date format: reservation_id=%d, error=%v", reservationID, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, updateReservation.ErrReservationNotFound):
			h.logger.Warn("PUT /reservations/{id} - Reservation not found: reservation_id=%d, client_id=%d",
				reservationID, clientID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, updateReservation.ErrAccessDenied):
			h.logger.Warn("PUT /reservations/{id} - Access denied: reservation_id=%d, client_id=%d",
				reservationID, clientID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, updateReservation.ErrReservationNotEditable):
			h.logger.Warn("PUT /reservations/{id} - Reservation not editable: reservation_id=%d, client_id=%d",
				reservationID, clientID)
			handlers.RespondConflict(w, msgNotEditable)

		case errors.Is(err, updateReservation.ErrEtablissementNotFound):
			h.logger.Warn("PUT /reservations/{id} - Etablissement not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgEtablissementGone)

		case errors.Is(err, updateReservation.ErrPrestationNotFound):
			h.logger.Warn("PUT /reservations/{id} - Prestation not found: reservation_id=%d, prestation_id=%v",
				reservationID, req.PrestationID)
			handlers.RespondNotFound(w, msgPrestationNotFound)

		case errors.Is(err, updateReservation.ErrSlotNotAvailable):
			h.logger.Warn("PUT /reservations/{id} - Slot not available: reservation_id=%d, date=%s, time=%s",
				reservationID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, updateReservation.ErrDuplicateReservation):
			h.logger.Warn("PUT /reservations/{id} - Duplicate reservation: reservation_id=%d, date=%s, time=%s",
				reservationID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgDuplicateReservation)

		case errors.Is(err, updateReservation.ErrInvalidDate):
			h.logger.Warn("PUT /reservations/{id} - Invalid date: reservation_id=%d, date=%s", reservationID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, updateReservation.ErrInvalidInput):
			h.logger.Warn("PUT /reservations/{id} - Invalid input: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /reservations/{id} - Failed to update reservation: reservation_id=%d, client_id=%d, error=%v",
				reservationID, clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("PUT /reservations/{id} - Reservation updated successfully: reservation_id=%d, client_id=%d, date=%s, time=%s",
		reservationID, clientID, req.Date, req.StartTime)
	handlers.RespondJSON(w, http.StatusOK, response)
}
