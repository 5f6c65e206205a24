package availability

// SlotsResult результат серверного расчета доступности для услуги и даты.
// Список slots уже учитывает занятость сотрудников и ресурсов.
type SlotsResult struct {
	PrestationID    int64    `json:"prestationId"`
	EtablissementID int64    `json:"etablissementId"`
	Date            string   `json:"date"` // YYYY-MM-DD
	DurationMinutes int      `json:"durationMinutes"`
	StepMinutes     int      `json:"stepMinutes"`
	Slots           []string `json:"slots"` // ["HH:mm", ...]
}
