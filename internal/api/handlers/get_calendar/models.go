package get_calendar

import (
	"time"

	"github.com/resago/booking-service/internal/domain"
	getCalendarAvailability "github.com/resago/booking-service/internal/usecase/get_calendar_availability"
)

// CalendarResponse HTTP response model
type CalendarResponse struct {
	EtablissementID int64             `json:"etablissementId"`
	PrestationID    *int64            `json:"prestationId,omitempty"`
	Days            []DayAvailability `json:"days"`
}

// DayAvailability доступность одной даты
type DayAvailability struct {
	Date      string `json:"date"`
	Available bool   `json:"available"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getCalendarAvailability.Response) *CalendarResponse {
	days := make([]DayAvailability, len(resp.Days))
	for i, day := range resp.Days {
		days[i] = DayAvailability{
			Date:      day.Date.Format(domain.DateFormat),
			Available: day.Available,
		}
	}

	return &CalendarResponse{
		EtablissementID: resp.EtablissementID,
		PrestationID:    resp.PrestationID,
		Days:            days,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(etablissementID int64, prestationID *int64, fromStr, toStr string) (*getCalendarAvailability.Request, error) {
	from, err := time.Parse(domain.DateFormat, fromStr)
	if err != nil {
		return nil, err
	}

	to, err := time.Parse(domain.DateFormat, toStr)
	if err != nil {
		return nil, err
	}

	return &getCalendarAvailability.Request{
		EtablissementID: etablissementID,
		PrestationID:    prestationID,
		From:            from,
		To:              to,
	}, nil
}
