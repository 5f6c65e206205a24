package create_reservation

import (
	"errors"
	"net/http"

	"github.com/resago/booking-service/internal/api/handlers"
	"github.com/resago/booking-service/internal/api/middleware"
	createReservation "github.com/resago/booking-service/internal/usecase/create_reservation"
)

const (
	msgInvalidBody           = "corps de requête invalide"
	msgInvalidDate           = "format de date invalide, attendu YYYY-MM-DD"
	msgInvalidInput          = "données de réservation invalides"
	msgEtablissementNotFound = "établissement introuvable"
	msgPrestationNotFound    = "prestation introuvable"
	msgSlotNotAvailable      = "le créneau demandé n'est plus disponible"
	msgDuplicateReservation  = "une réservation existe déjà pour ce créneau"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID := middleware.GetClientID(r.Context())

	// Декодируем тело запроса
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: client_id=%d, error=%v", clientID, err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := req.ToUseCaseRequest(clientID)
	if err != nil {
		h.logger.Warn("POST /reservations - Invalid date format: client_id=%d, error=%v", clientID, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, createReservation.ErrEtablissementNotFound):
			h.logger.Warn("POST /reservations - Etablissement not found: client_id=%d, etablissement_id=%d",
				clientID, req.EtablissementID)
			handlers.RespondNotFound(w, msgEtablissementNotFound)

		case errors.Is(err, createReservation.ErrPrestationNotFound):
			h.logger.Warn("POST /reservations - Prestation not found: client_id=%d, etablissement_id=%d, prestation_id=%v",
				clientID, req.EtablissementID, req.PrestationID)
			handlers.RespondNotFound(w, msgPrestationNotFound)

		case errors.Is(err, createReservation.ErrSlotNotAvailable):
			h.logger.Warn("POST /reservations - Slot not available: client_id=%d, etablissement_id=%d, date=%s, time=%s",
				clientID, req.EtablissementID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createReservation.ErrDuplicateReservation):
			h.logger.Warn("POST /reservations - Duplicate reservation: client_id=%d, etablissement_id=%d, date=%s, time=%s",
				clientID, req.EtablissementID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgDuplicateReservation)

		case errors.Is(err, createReservation.ErrInvalidDate):
			h.logger.Warn("POST /reservations - Invalid date: client_id=%d, date=%s", clientID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: client_id=%d, error=%v", clientID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: client_id=%d, etablissement_id=%d, error=%v",
				clientID, req.EtablissementID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, client_id=%d, etablissement_id=%d",
		result.ID, clientID, req.EtablissementID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
