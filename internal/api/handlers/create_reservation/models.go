package create_reservation

import (
	"time"

	"github.com/resago/booking-service/internal/domain"
	createReservation "github.com/resago/booking-service/internal/usecase/create_reservation"
	"github.com/resago/booking-service/pkg/types"
)

// CreateReservationRequest HTTP request body
type CreateReservationRequest struct {
	EtablissementID int64  `json:"etablissementId"`
	PrestationID    *int64 `json:"prestationId,omitempty"`
	Date            string `json:"date"`      // YYYY-MM-DD
	StartTime       string `json:"startTime"` // HH:MM
	PartySize       *int   `json:"partySize,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID              int64   `json:"id"`
	ClientID        int64   `json:"clientId"`
	EtablissementID int64   `json:"etablissementId"`
	PrestationID    *int64  `json:"prestationId,omitempty"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	PartySize       *int    `json:"partySize,omitempty"`
	Status          string  `json:"status"`
	PrestationName  *string `json:"prestationName,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest создает запрос use case из HTTP модели (с парсингом даты)
func (r *CreateReservationRequest) ToUseCaseRequest(clientID int64) (*createReservation.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		ClientID:        clientID,
		EtablissementID: r.EtablissementID,
		PrestationID:    r.PrestationID,
		Date:            date,
		StartTime:       types.TimeString(r.StartTime),
		PartySize:       r.PartySize,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:              resp.ID,
		ClientID:        resp.ClientID,
		EtablissementID: resp.EtablissementID,
		PrestationID:    resp.PrestationID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		PartySize:       resp.PartySize,
		Status:          resp.Status,
		PrestationName:  resp.PrestationName,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
