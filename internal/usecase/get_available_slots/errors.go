package get_available_slots

import "errors"

var (
	// ErrEtablissementNotFound возвращается, когда заведение не найдено
	ErrEtablissementNotFound = errors.New("etablissement not found")

	// ErrPrestationNotFound возвращается, когда услуга не найдена
	ErrPrestationNotFound = errors.New("prestation not found")

	// ErrInvalidDate возвращается при некорректной дате запроса
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
