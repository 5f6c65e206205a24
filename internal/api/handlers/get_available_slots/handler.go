package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/resago/booking-service/internal/api/handlers"
	"github.com/resago/booking-service/internal/api/middleware"
	getAvailableSlots "github.com/resago/booking-service/internal/usecase/get_available_slots"
)

const (
	msgInvalidEtablissementID = "identifiant d'établissement invalide"
	msgInvalidPrestationID    = "identifiant de prestation invalide"
	msgMissingDate            = "la date est obligatoire"
	msgInvalidDate            = "format de date invalide, attendu YYYY-MM-DD"
	msgInvalidStep            = "pas de créneau invalide"
	msgInvalidInput           = "paramètres de requête invalides"
	msgEtablissementNotFound  = "établissement introuvable"
	msgPrestationNotFound     = "prestation introuvable"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/etablissements/{etablissementId}/available-slots
// Query params: date (required, YYYY-MM-DD), prestationId, step, selectedTime
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем etablissementId из URL
	etablissementIDStr := vars["etablissementId"]
	etablissementID, err := strconv.ParseInt(etablissementIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /etablissements/{id}/available-slots - Invalid etablissement ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEtablissementID)
		return
	}

	// Извлекаем prestationId из query параметров (опционально)
	var prestationID *int64
	if prestationIDStr := r.URL.Query().Get("prestationId"); prestationIDStr != "" {
		id, err := strconv.ParseInt(prestationIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /etablissements/{id}/available-slots - Invalid prestation ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPrestationID)
			return
		}
		prestationID = &id
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /etablissements/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Извлекаем step из query параметров (опционально)
	var step *int
	if stepStr := r.URL.Query().Get("step"); stepStr != "" {
		v, err := strconv.Atoi(stepStr)
		if err != nil {
			h.logger.Warn("GET /etablissements/{id}/available-slots - Invalid step: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStep)
			return
		}
		step = &v
	}

	selectedTime := r.URL.Query().Get("selectedTime")

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(etablissementID, prestationID, dateStr, step, selectedTime)
	if err != nil {
		h.logger.Warn("GET /etablissements/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	useCaseReq.ClientID = middleware.GetClientID(r.Context())

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, getAvailableSlots.ErrEtablissementNotFound):
			h.logger.Warn("GET /etablissements/{id}/available-slots - Etablissement not found: etablissement_id=%d", etablissementID)
			handlers.RespondNotFound(w, msgEtablissementNotFound)

		case errors.Is(err, getAvailableSlots.ErrPrestationNotFound):
			h.logger.Warn("GET /etablissements/{id}/available-slots - Prestation not found: etablissement_id=%d", etablissementID)
			handlers.RespondNotFound(w, msgPrestationNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /etablissements/{id}/available-slots - Invalid date: etablissement_id=%d, date=%s", etablissementID, dateStr)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /etablissements/{id}/available-slots - Invalid input: etablissement_id=%d, error=%v", etablissementID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /etablissements/{id}/available-slots - Failed to get slots: etablissement_id=%d, date=%s, error=%v",
				etablissementID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /etablissements/{id}/available-slots - Slots retrieved successfully: etablissement_id=%d, date=%s, source=%s, slots_count=%d",
		etablissementID, dateStr, result.Source, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
