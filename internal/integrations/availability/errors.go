package availability

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("availability client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе сервиса
	ErrInvalidResponse = errors.New("availability client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation.
	// Указывает, что сервис availability недоступен и следует использовать
	// слоты, построенные из часов работы, либо legacy-таблицу.
	ErrServiceDegraded = errors.New("availability service unavailable: graceful degradation applied")
)
