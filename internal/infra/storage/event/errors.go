package event

import "errors"

var (
	// ErrMarshalPayload возвращается, когда payload события не сериализуется в JSON
	ErrMarshalPayload = errors.New("event.repository: failed to marshal payload")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("event.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("event.repository: failed to execute query")
)
