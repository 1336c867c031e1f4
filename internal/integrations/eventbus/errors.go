package eventbus

import "errors"

var (
	// ErrInvalidConfig возвращается при пустом списке брокеров или топике
	ErrInvalidConfig = errors.New("eventbus: invalid kafka config")

	// ErrEncode возвращается, когда факт не сериализуется в JSON
	ErrEncode = errors.New("eventbus: failed to encode event")

	// ErrWrite возвращается, когда брокер не принял сообщения
	ErrWrite = errors.New("eventbus: failed to write messages")
)
