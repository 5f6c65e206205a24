package get_calendar_availability

import "errors"

var (
	// ErrEtablissementNotFound возвращается, когда заведение не найдено
	ErrEtablissementNotFound = errors.New("etablissement not found")

	// ErrPrestationNotFound возвращается, когда услуга не найдена
	ErrPrestationNotFound = errors.New("prestation not found")

	// ErrInvalidRange возвращается при некорректном периоде запроса
	ErrInvalidRange = errors.New("invalid date range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
