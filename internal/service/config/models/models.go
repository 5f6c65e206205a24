package models

import (
	"time"

	"github.com/resago/booking-service/internal/domain"
)

// Request модели

// UpsertConfigRequest запрос на создание или обновление конфигурации слотов.
// NULL prestationId означает конфигурацию уровня заведения.
type UpsertConfigRequest struct {
	EtablissementID int64  `json:"etablissementId"`
	PrestationID    *int64 `json:"prestationId,omitempty"`
	StepMinutes     int    `json:"stepMinutes"`
	SegmentMode     string `json:"segmentMode"` // "blocks" | "midi_soir"
}

// GetConfigRequest запрос на получение конфигурации с иерархическим поиском
type GetConfigRequest struct {
	EtablissementID int64  `json:"etablissementId"`
	PrestationID    *int64 `json:"prestationId,omitempty"`
}

// Response модели

// ConfigResponse ответ с данными конфигурации слотов
type ConfigResponse struct {
	ID              int64     `json:"id"`
	EtablissementID int64     `json:"etablissementId"`
	PrestationID    *int64    `json:"prestationId,omitempty"`
	StepMinutes     int       `json:"stepMinutes"`
	SegmentMode     string    `json:"segmentMode"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ConfigListResponse ответ со списком конфигураций заведения
type ConfigListResponse struct {
	Configs []ConfigResponse `json:"configs"`
}

// Методы конвертации

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.SlotsConfig) *ConfigResponse {
	if c == nil {
		return nil
	}
	return &ConfigResponse{
		ID:              c.ID,
		EtablissementID: c.EtablissementID,
		PrestationID:    c.PrestationID,
		StepMinutes:     c.StepMinutes,
		SegmentMode:     string(c.SegmentMode),
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

// FromDomainConfigList конвертирует список domain моделей в DTO
func FromDomainConfigList(configs []*domain.SlotsConfig) *ConfigListResponse {
	out := make([]ConfigResponse, 0, len(configs))
	for _, c := range configs {
		out = append(out, *FromDomainConfig(c))
	}
	return &ConfigListResponse{Configs: out}
}
