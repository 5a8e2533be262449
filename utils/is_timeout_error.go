package utils

import (
	"context"
	"errors"
	"net"
)

// IsTimeoutErr reports whether err came from a deadline being exceeded,
// either on the context or inside the transport.
func IsTimeoutErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}
