package slots

import "errors"

var (
	// ErrCacheRead возвращается при ошибке чтения из redis
	ErrCacheRead = errors.New("slots.cache: failed to read")

	// ErrCacheWrite возвращается при ошибке записи в redis
	ErrCacheWrite = errors.New("slots.cache: failed to write")

	// ErrCacheDecode возвращается, если закэшированное значение повреждено
	ErrCacheDecode = errors.New("slots.cache: failed to decode cached slots")
)
