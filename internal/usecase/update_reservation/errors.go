package update_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда резервация не найдена
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrAccessDenied возвращается при попытке изменить чужую резервацию
	ErrAccessDenied = errors.New("access denied")

	// ErrReservationNotEditable возвращается, когда резервацию уже нельзя изменить
	ErrReservationNotEditable = errors.New("reservation can not be edited")

	// ErrEtablissementNotFound возвращается, когда заведение не найдено
	ErrEtablissementNotFound = errors.New("etablissement not found")

	// ErrPrestationNotFound возвращается, когда услуга не найдена
	ErrPrestationNotFound = errors.New("prestation not found")

	// ErrInvalidDate возвращается при некорректной дате резервации
	ErrInvalidDate = errors.New("invalid reservation date")

	// ErrSlotNotAvailable возвращается, когда новое время отсутствует
	// в итоговом списке слотов или недоступно по данным сервера
	ErrSlotNotAvailable = errors.New("slot is not available")

	// ErrDuplicateReservation возвращается, когда на новое время уже есть
	// другая активная резервация клиента в том же заведении
	ErrDuplicateReservation = errors.New("duplicate reservation")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
