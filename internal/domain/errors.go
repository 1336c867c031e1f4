package domain

import "errors"

// Категории ошибок. Ошибки пакетов оборачивают одну из них,
// handlers по категории выбирают HTTP-статус
var (
	// ErrNotFound сущность не найдена (404)
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput некорректные входные данные (400)
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict нарушение инварианта или недопустимый переход состояния (409)
	ErrConflict = errors.New("conflict")

	// ErrInternal ошибка хранилища или инфраструктуры (500)
	ErrInternal = errors.New("internal error")
)
