package domain

import (
	"time"

	"github.com/resago/booking-service/pkg/types"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending                  ReservationStatus = "pending"
	StatusConfirmed                ReservationStatus = "confirmed"
	StatusCompleted                ReservationStatus = "completed"
	StatusCancelledByClient        ReservationStatus = "cancelled_by_client"
	StatusCancelledByEtablissement ReservationStatus = "cancelled_by_etablissement"
	StatusNoShow                   ReservationStatus = "no_show"
)

// Reservation represents a client's reservation at an establishment
type Reservation struct {
	ID              int64
	ClientID        int64
	EtablissementID int64
	PrestationID    *int64 // nil для ресторанов (бронируется столик, а не услуга)
	ReservationDate time.Time
	StartTime       types.TimeString
	PartySize       *int // только для ресторанов
	Status          ReservationStatus

	// Denormalized data for history
	PrestationName *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the reservation is in an active state
func (r *Reservation) IsActive() bool {
	return r.Status != StatusCancelledByClient &&
		r.Status != StatusCancelledByEtablissement &&
		r.Status != StatusNoShow
}

// CanBeCancelled returns true if the reservation can be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// CanBeUpdated returns true if the reservation can be updated
func (r *Reservation) CanBeUpdated() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// IsCancelled returns true if the reservation has been cancelled
func (r *Reservation) IsCancelled() bool {
	return r.Status == StatusCancelledByClient || r.Status == StatusCancelledByEtablissement
}

// EtablissementReservationsFilter фильтр для выборки резерваций заведения
type EtablissementReservationsFilter struct {
	EtablissementID int64              // Обязательный параметр
	PrestationID    *int64             // Фильтр по услуге (опционально)
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *ReservationStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отмененные и no-show
}
