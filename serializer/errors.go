package serializer

import "errors"

var (
	// ErrNotAvailable is returned when no serializer matches a format name or content type.
	ErrNotAvailable = errors.New("serializer: not available")
	// ErrNoneAvailable is returned when a registry is built without any serializer.
	ErrNoneAvailable = errors.New("serializer: no serializers available")
)
