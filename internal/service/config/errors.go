package config

import "errors"

var (
	// ErrConfigNotFound возвращается, когда конфигурация не найдена
	ErrConfigNotFound = errors.New("config not found")

	// ErrEtablissementNotFound возвращается, когда заведение не найдено
	ErrEtablissementNotFound = errors.New("etablissement not found")

	// ErrPrestationNotFound возвращается, когда услуга не найдена
	ErrPrestationNotFound = errors.New("prestation not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
