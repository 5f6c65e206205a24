package update_slots_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/resago/booking-service/internal/api/handlers"
	configService "github.com/resago/booking-service/internal/service/config"
)

const (
	msgInvalidEtablissementID = "identifiant d'établissement invalide"
	msgInvalidBody            = "corps de requête invalide"
	msgInvalidInput           = "données de configuration invalides"
	msgEtablissementNotFound  = "établissement introuvable"
	msgPrestationNotFound     = "prestation introuvable"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/etablissements/{etablissementId}/slots-config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем etablissementId из URL
	etablissementIDStr := vars["etablissementId"]
	etablissementID, err := strconv.ParseInt(etablissementIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /etablissements/{id}/slots-config - Invalid etablissement ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEtablissementID)
		return
	}

	// Декодируем тело запроса
	var req UpdateSlotsConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /etablissements/{id}/slots-config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	// Вызываем сервис
	result, err := h.service.Upsert(r.Context(), req.ToServiceRequest(etablissementID))
	if err != nil {
		switch {
		case errors.Is(err, configService.ErrEtablissementNotFound):
			h.logger.Warn("PUT /etablissements/{id}/slots-config - Etablissement not found: etablissement_id=%d", etablissementID)
			handlers.RespondNotFound(w, msgEtablissementNotFound)

		case errors.Is(err, configService.ErrPrestationNotFound):
			h.logger.Warn("PUT /etablissements/{id}/slots-config - Prestation not found: etablissement_id=%d, prestation_id=%v",
				etablissementID, req.PrestationID)
			handlers.RespondNotFound(w, msgPrestationNotFound)

		case errors.Is(err, configService.ErrInvalidInput):
			h.logger.Warn("PUT /etablissements/{id}/slots-config - Validation failed: etablissement_id=%d, error=%v",
				etablissementID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /etablissements/{id}/slots-config - Failed to save config: etablissement_id=%d, error=%v",
				etablissementID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /etablissements/{id}/slots-config - Config saved successfully: etablissement_id=%d, config_id=%d",
		etablissementID, result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
