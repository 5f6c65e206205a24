package get_available_slots

import (
	"time"

	"github.com/resago/booking-service/internal/domain"
	getAvailableSlots "github.com/resago/booking-service/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string          `json:"date"`
	EtablissementID int64           `json:"etablissementId"`
	PrestationID    *int64          `json:"prestationId,omitempty"`
	Source          string          `json:"source"` // "server" | "hours" | "legacy"
	StepMinutes     int             `json:"stepMinutes"`
	Slots           []AvailableSlot `json:"slots"`
	Segments        []SlotSegment   `json:"segments"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime  string `json:"startTime"`
	Selectable bool   `json:"selectable"`
}

// SlotSegment группа слотов для отображения
type SlotSegment struct {
	Label string   `json:"label,omitempty"`
	Slots []string `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime:  slot.StartTime.String(),
			Selectable: slot.Selectable,
		}
	}

	segments := make([]SlotSegment, len(resp.Segments))
	for i, seg := range resp.Segments {
		times := make([]string, len(seg.Slots))
		for j, t := range seg.Slots {
			times[j] = t.String()
		}
		segments[i] = SlotSegment{Label: seg.Label, Slots: times}
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		EtablissementID: resp.EtablissementID,
		PrestationID:    resp.PrestationID,
		Source:          string(resp.Source),
		StepMinutes:     resp.StepMinutes,
		Slots:           slots,
		Segments:        segments,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(etablissementID int64, prestationID *int64, dateStr string, step *int, selectedTime string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		EtablissementID: etablissementID,
		PrestationID:    prestationID,
		Date:            date,
		StepMinutes:     step,
		SelectedTime:    selectedTime,
	}, nil
}
