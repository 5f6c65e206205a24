package update_reservation

import (
	"time"

	"github.com/resago/booking-service/pkg/types"
)

// Request модель запроса на изменение резервации.
// Дата и время задаются полностью (PUT-семантика), услуга и количество
// гостей меняются, только когда переданы.
type Request struct {
	ReservationID int64
	ClientID      int64 // ID клиента (из заголовка аутентификации)

	Date         time.Time        // Новая дата резервации
	StartTime    types.TimeString // Новое время начала ("HH:MM")
	PrestationID *int64           // Новая услуга (nil - оставить без изменений)
	PartySize    *int             // Новое количество гостей (nil - оставить без изменений)
}

// Response модель ответа с обновленной резервацией
type Response struct {
	ID              int64
	ClientID        int64
	EtablissementID int64
	PrestationID    *int64
	Date            time.Time
	StartTime       types.TimeString
	PartySize       *int
	Status          string
	PrestationName  *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
