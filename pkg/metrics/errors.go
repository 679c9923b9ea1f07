package metrics

import (
	"errors"
)

// ErrPushFailed wraps errors returned by the Pushgateway.
var ErrPushFailed = errors.New("metrics push failed")
