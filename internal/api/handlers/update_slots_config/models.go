package update_slots_config

import "github.com/resago/booking-service/internal/service/config/models"

// UpdateSlotsConfigRequest HTTP request body
type UpdateSlotsConfigRequest struct {
	PrestationID *int64 `json:"prestationId,omitempty"`
	StepMinutes  int    `json:"stepMinutes"`
	SegmentMode  string `json:"segmentMode"` // "blocks" | "midi_soir"
}

// ToServiceRequest создает запрос сервиса из HTTP модели
func (r *UpdateSlotsConfigRequest) ToServiceRequest(etablissementID int64) *models.UpsertConfigRequest {
	return &models.UpsertConfigRequest{
		EtablissementID: etablissementID,
		PrestationID:    r.PrestationID,
		StepMinutes:     r.StepMinutes,
		SegmentMode:     r.SegmentMode,
	}
}
