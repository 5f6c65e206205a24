package catalogservice

import "github.com/resago/booking-service/internal/slotengine"

// Etablissement модель заведения из каталога.
// OpeningHours приходят в сыром виде: формат полей и регистр ключей
// отличаются между версиями бэкенда каталога, нормализацией занимается
// slotengine.
type Etablissement struct {
	ID           int64               `json:"id"`
	Nom          string              `json:"nom"`
	Lieu         *string             `json:"lieu"`
	BusinessType string              `json:"businessType"`
	OpeningHours []slotengine.RawRow `json:"openingHours"`
}

// Prestation модель услуги заведения
type Prestation struct {
	ID              int64   `json:"id"`
	EtablissementID int64   `json:"etablissementId"`
	CategorieID     int64   `json:"categorieId"`
	Nom             string  `json:"nom"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           *float64 `json:"price"`
}

// ErrorResponse модель ошибки каталога
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
