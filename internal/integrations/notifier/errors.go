package notifier

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("alerts webhook: internal error")

	// ErrInvalidResponse возвращается при неожиданном ответе webhook
	ErrInvalidResponse = errors.New("alerts webhook: invalid response")
)
