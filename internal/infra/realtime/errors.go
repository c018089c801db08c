package realtime

import "errors"

var ErrInvalidate = errors.New("realtime.hub: failed to invalidate cache")
