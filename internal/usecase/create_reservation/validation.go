package create_reservation

import (
	"fmt"
	"time"

	"github.com/resago/booking-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.EtablissementID <= 0 {
		return fmt.Errorf("%w: etablissementID must be positive", ErrInvalidInput)
	}

	if req.PrestationID != nil && *req.PrestationID <= 0 {
		return fmt.Errorf("%w: prestationID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime must be HH:MM", ErrInvalidInput)
	}

	if req.PartySize != nil {
		if *req.PartySize < domain.MinPartySize || *req.PartySize > domain.MaxPartySize {
			return fmt.Errorf("%w: partySize must be between %d and %d",
				ErrInvalidInput, domain.MinPartySize, domain.MaxPartySize)
		}
	}

	return nil
}

// validateDateNotInPast проверяет, что дата резервации не в прошлом
func validateDateNotInPast(date, now time.Time) error {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	if dateOnly.Before(today) {
		return ErrInvalidDate
	}
	return nil
}
