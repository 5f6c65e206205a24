package cancel_reservation

import "github.com/resago/booking-service/internal/service/reservations/models"

// CancelReservationRequest HTTP request body
type CancelReservationRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// ToServiceRequest создает запрос сервиса из HTTP модели
func (r *CancelReservationRequest) ToServiceRequest(clientID int64) *models.CancelReservationRequest {
	return &models.CancelReservationRequest{
		ClientID:           clientID,
		CancellationReason: r.CancellationReason,
	}
}
