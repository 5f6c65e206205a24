package catalogservice

import "errors"

var (
	// ErrEtablissementNotFound возвращается, когда заведение не найдено в каталоге
	ErrEtablissementNotFound = errors.New("etablissement not found")

	// ErrPrestationNotFound возвращается, когда услуга не найдена
	ErrPrestationNotFound = errors.New("prestation not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("catalogservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе каталога
	ErrInvalidResponse = errors.New("catalogservice client: invalid response")
)
