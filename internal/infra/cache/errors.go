package cache

import "errors"

var (
	// ErrLoad возвращается, когда загрузчик не смог получить данные
	ErrLoad = errors.New("cache: failed to load value")

	// ErrEncode возвращается при ошибке сериализации значения
	ErrEncode = errors.New("cache: failed to encode value")

	// ErrBackend возвращается при ошибке хранилища кэша
	ErrBackend = errors.New("cache: backend error")

	errStale = errors.New("cache: value is stale")
)
