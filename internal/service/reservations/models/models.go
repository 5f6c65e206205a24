package models

import (
	"errors"
	"time"

	"github.com/resago/booking-service/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// CancelReservationRequest запрос на отмену резервации
type CancelReservationRequest struct {
	ClientID           int64  `json:"clientId"`
	CancellationReason string `json:"cancellationReason"`
}

// GetClientReservationsRequest запрос на получение резерваций клиента
type GetClientReservationsRequest struct {
	ClientID int64   `json:"clientId"`
	Status   *string `json:"status,omitempty"`
}

// Response модели

// ReservationResponse ответ с данными резервации
type ReservationResponse struct {
	ID              int64   `json:"id"`
	ClientID        int64   `json:"clientId"`
	EtablissementID int64   `json:"etablissementId"`
	PrestationID    *int64  `json:"prestationId,omitempty"`
	ReservationDate string  `json:"reservationDate"` // "2025-10-15"
	StartTime       string  `json:"startTime"`       // "19:30"
	PartySize       *int    `json:"partySize,omitempty"`
	Status          string  `json:"status"`
	PrestationName  *string `json:"prestationName,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком резерваций
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:                 r.ID,
		ClientID:           r.ClientID,
		EtablissementID:    r.EtablissementID,
		PrestationID:       r.PrestationID,
		ReservationDate:    r.ReservationDate.Format(domain.DateFormat),
		StartTime:          r.StartTime.String(),
		PartySize:          r.PartySize,
		Status:             string(r.Status),
		PrestationName:     r.PrestationName,
		CancellationReason: r.CancellationReason,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}

	if r.CancelledAt != nil {
		cancelled := r.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelled
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	out := make([]ReservationResponse, 0, len(reservations))
	for _, r := range reservations {
		out = append(out, *FromDomainReservation(r))
	}
	return &ReservationListResponse{Reservations: out}
}

// ToDomainReservationStatus валидирует и конвертирует строковый статус
func ToDomainReservationStatus(s string) (domain.ReservationStatus, error) {
	status := domain.ReservationStatus(s)
	switch status {
	case domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusCompleted,
		domain.StatusCancelledByClient,
		domain.StatusCancelledByEtablissement,
		domain.StatusNoShow:
		return status, nil
	default:
		return "", ErrInvalidStatus
	}
}
