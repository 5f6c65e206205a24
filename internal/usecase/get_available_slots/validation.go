package get_available_slots

import (
	"fmt"

	"github.com/resago/booking-service/internal/domain"
	"github.com/resago/booking-service/internal/slotengine"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.EtablissementID <= 0 {
		return fmt.Errorf("%w: etablissementID must be positive", ErrInvalidInput)
	}

	if req.PrestationID != nil && *req.PrestationID <= 0 {
		return fmt.Errorf("%w: prestationID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StepMinutes != nil {
		if *req.StepMinutes < domain.MinStepMinutes || *req.StepMinutes > domain.MaxStepMinutes {
			return fmt.Errorf("%w: step must be between %d and %d minutes",
				ErrInvalidInput, domain.MinStepMinutes, domain.MaxStepMinutes)
		}
	}

	// Черновик валидируется мягко: непарсящееся время отбрасывается движком,
	// но явный мусор в запросе отклоняем сразу
	if req.SelectedTime != "" {
		if _, ok := slotengine.NormalizeHour(req.SelectedTime); !ok {
			return fmt.Errorf("%w: selectedTime must be HH:MM", ErrInvalidInput)
		}
	}

	return nil
}
