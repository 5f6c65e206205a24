package create_reservation

import (
	"time"

	"github.com/resago/booking-service/pkg/types"
)

// Request модель запроса на создание резервации
type Request struct {
	ClientID        int64            // ID клиента (из заголовка аутентификации)
	EtablissementID int64            // ID заведения
	PrestationID    *int64           // ID услуги (nil для ресторанной резервации столика)
	Date            time.Time        // Дата резервации (без времени)
	StartTime       types.TimeString // Время начала ("HH:MM")
	PartySize       *int             // Количество гостей (рестораны)
}

// Response модель ответа с созданной резервацией
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
