package get_available_slots

import (
	"time"

	"github.com/resago/booking-service/internal/domain"
)

// Request модель запроса доступных слотов на дату
type Request struct {
	ClientID        int64     // ID клиента (0 для анонимного запроса, только для логирования)
	EtablissementID int64     // ID заведения
	PrestationID    *int64    // ID услуги (nil - расчет только по часам работы и legacy-таблице)
	Date            time.Time // Дата, на которую запрашиваются слоты (без времени)
	StepMinutes     *int      // Переопределение шага сетки из запроса (nil - из конфигурации)
	SelectedTime    string    // Время редактируемой резервации ("" - нет черновика)
}

// Response модель ответа со слотами на дату
type Response struct {
	EtablissementID int64
	PrestationID    *int64
	Date            time.Time
	Source          domain.SlotSource    // Источник, из которого собран итоговый список
	StepMinutes     int                  // Фактический шаг сетки
	Slots           []domain.SlotOption  // Плоский список слотов с флагом selectable
	Segments        []domain.SlotSegment // Группировка для отображения
}
