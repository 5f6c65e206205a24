package create_reservation

import "errors"

var (
	// ErrEtablissementNotFound возвращается, когда заведение не найдено
	ErrEtablissementNotFound = errors.New("etablissement not found")

	// ErrPrestationNotFound возвращается, когда услуга не найдена
	ErrPrestationNotFound = errors.New("prestation not found")

	// ErrInvalidDate возвращается при некорректной дате резервации
	ErrInvalidDate = errors.New("invalid reservation date")

	// ErrSlotNotAvailable возвращается, когда запрошенное время отсутствует
	// в итоговом списке слотов или недоступно по данным сервера
	ErrSlotNotAvailable = errors.New("slot is not available")

	// ErrDuplicateReservation возвращается, когда у клиента уже есть активная
	// резервация в этом заведении на ту же дату и время
	ErrDuplicateReservation = errors.New("duplicate reservation")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
