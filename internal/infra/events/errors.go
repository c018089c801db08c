package events

import "errors"

var (
	// ErrEncode возвращается при ошибке сериализации события
	ErrEncode = errors.New("events: failed to encode event")

	// ErrPublish возвращается, когда событие не удалось отправить
	ErrPublish = errors.New("events: failed to publish event")

	// ErrFetch ошибка чтения из топика (чтение повторяется)
	ErrFetch = errors.New("events: failed to fetch message")
)
