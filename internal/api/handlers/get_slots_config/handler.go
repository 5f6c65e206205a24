package get_slots_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/resago/booking-service/internal/api/handlers"
	configService "github.com/resago/booking-service/internal/service/config"
	"github.com/resago/booking-service/internal/service/config/models"
)

const (
	msgInvalidEtablissementID = "identifiant d'établissement invalide"
	msgInvalidPrestationID    = "identifiant de prestation invalide"
	msgEtablissementNotFound  = "établissement introuvable"
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

// Handle GET /api/v1/etablissements/{etablissementId}/slots-config
// Query params: prestationId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем etablissementId из URL
	etablissementIDStr := vars["etablissementId"]
	etablissementID, err := strconv.ParseInt(etablissementIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /etablissements/{id}/slots-config - Invalid etablissement ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEtablissementID)
		return
	}

	// Извлекаем prestationId из query параметров (опционально)
	var prestationID *int64
	if prestationIDStr := r.URL.Query().Get("prestationId"); prestationIDStr != "" {
		id, err := strconv.ParseInt(prestationIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /etablissements/{id}/slots-config - Invalid prestation ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPrestationID)
			return
		}
		prestationID = &id
	}

	// Вызываем сервис
	result, err := h.service.GetConfig(r.Context(), &models.GetConfigRequest{
		EtablissementID: etablissementID,
		PrestationID:    prestationID,
	})
	if err != nil {
		switch {
		case errors.Is(err, configService.ErrEtablissementNotFound):
			h.logger.Warn("GET /etablissements/{id}/slots-config - Etablissement not found: etablissement_id=%d", etablissementID)
			handlers.RespondNotFound(w, msgEtablissementNotFound)

		default:
			h.logger.Error("GET /etablissements/{id}/slots-config - Failed to get config: etablissement_id=%d, error=%v",
				etablissementID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /etablissements/{id}/slots-config - Config retrieved successfully: etablissement_id=%d, step=%d, mode=%s",
		etablissementID, result.StepMinutes, result.SegmentMode)
	handlers.RespondJSON(w, http.StatusOK, result)
}
