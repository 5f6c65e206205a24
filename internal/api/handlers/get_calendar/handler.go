package get_calendar

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/resago/booking-service/internal/api/handlers"
	"github.com/resago/booking-service/internal/api/middleware"
	getCalendarAvailability "github.com/resago/booking-service/internal/usecase/get_calendar_availability"
)

const (
	msgInvalidEtablissementID = "identifiant d'établissement invalide"
	msgInvalidPrestationID    = "identifiant de prestation invalide"
	msgMissingPeriod          = "les paramètres from et to sont obligatoires"
	msgInvalidDate            = "format de date invalide, attendu YYYY-MM-DD"
	msgInvalidRange           = "période invalide"
	msgInvalidInput           = "paramètres de requête invalides"
	msgEtablissementNotFound  = "établissement introuvable"
	msgPrestationNotFound     = "prestation introuvable"
)

type Handler struct {
	useCase GetCalendarAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetCalendarAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/etablissements/{etablissementId}/availability-calendar
// Query params: from (required, YYYY-MM-DD), to (required, YYYY-MM-DD), prestationId
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем etablissementId из URL
	etablissementIDStr := vars["etablissementId"]
	etablissementID, err := strconv.ParseInt(etablissementIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /etablissements/{id}/availability-calendar - Invalid etablissement ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEtablissementID)
		return
	}

	// Извлекаем prestationId из query параметров (опционально)
	var prestationID *int64
	if prestationIDStr := r.URL.Query().Get("prestationId"); prestationIDStr != "" {
		id, err := strconv.ParseInt(prestationIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /etablissements/{id}/availability-calendar - Invalid prestation ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPrestationID)
			return
		}
		prestationID = &id
	}

	// Извлекаем границы периода из query параметров
	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")
	if fromStr == "" || toStr == "" {
		h.logger.Warn("GET /etablissements/{id}/availability-calendar - Missing period bounds")
		handlers.RespondBadRequest(w, msgMissingPeriod)
		return
	}

	// Формируем запрос к use case (с парсингом дат)
	useCaseReq, err := ToUseCaseRequest(etablissementID, prestationID, fromStr, toStr)
	if err != nil {
		h.logger.Warn("GET /etablissements/{id}/availability-calendar - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	useCaseReq.ClientID = middleware.GetClientID(r.Context())

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, getCalendarAvailability.ErrEtablissementNotFound):
			h.logger.Warn("GET /etablissements/{id}/availability-calendar - Etablissement not found: etablissement_id=%d", etablissementID)
			handlers.RespondNotFound(w, msgEtablissementNotFound)

		case errors.Is(err, getCalendarAvailability.ErrPrestationNotFound):
			h.logger.Warn("GET /etablissements/{id}/availability-calendar - Prestation not found: etablissement_id=%d", etablissementID)
			handlers.RespondNotFound(w, msgPrestationNotFound)

		case errors.Is(err, getCalendarAvailability.ErrInvalidRange):
			h.logger.Warn("GET /etablissements/{id}/availability-calendar - Invalid range: etablissement_id=%d, from=%s, to=%s",
				etablissementID, fromStr, toStr)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, getCalendarAvailability.ErrInvalidInput):
			h.logger.Warn("GET /etablissements/{id}/availability-calendar - Invalid input: etablissement_id=%d, error=%v", etablissementID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /etablissements/{id}/availability-calendar - Failed to get calendar: etablissement_id=%d, from=%s, to=%s, error=%v",
				etablissementID, fromStr, toStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /etablissements/{id}/availability-calendar - Calendar retrieved successfully: etablissement_id=%d, days_count=%d",
		etablissementID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, response)
}
