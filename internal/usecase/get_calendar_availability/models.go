package get_calendar_availability

import "time"

// Request модель запроса календарной доступности за период
type Request struct {
	ClientID        int64     // ID клиента (0 для анонимного запроса, только для логирования)
	EtablissementID int64     // ID заведения
	PrestationID    *int64    // ID услуги (влияет на выбор конфигурации)
	From            time.Time // Начало периода (включительно)
	To              time.Time // Конец периода (включительно)
}

// DayAvailability доступность одной даты
type DayAvailability struct {
	Date      time.Time
	Available bool // true, когда на дату есть хотя бы один слот
}

// Response модель ответа с доступностью по дням
type Response struct {
	EtablissementID int64
	PrestationID    *int64
	Days            []DayAvailability
}
