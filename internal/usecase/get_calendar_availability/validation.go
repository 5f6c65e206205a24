package get_calendar_availability

import "fmt"

// maxRangeDays ограничивает период календарного запроса тремя месяцами
const maxRangeDays = 92

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.EtablissementID <= 0 {
		return fmt.Errorf("%w: etablissementID must be positive", ErrInvalidInput)
	}

	if req.PrestationID != nil && *req.PrestationID <= 0 {
		return fmt.Errorf("%w: prestationID must be positive", ErrInvalidInput)
	}

	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}

	if req.To.Before(req.From) {
		return fmt.Errorf("%w: to is before from", ErrInvalidRange)
	}

	days := int(req.To.Sub(req.From).Hours()/24) + 1
	if days > maxRangeDays {
		return fmt.Errorf("%w: range exceeds %d days", ErrInvalidRange, maxRangeDays)
	}

	return nil
}
