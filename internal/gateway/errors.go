package gateway

import (
	"context"
	"errors"
	"fmt"
	"net"
)

var (
	ErrTransport = errors.New("gateway unreachable")
	ErrTimeout   = errors.New("gateway timeout")
)

// NewTransportError wraps a failed round trip. Timeouts match both ErrTransport and ErrTimeout.
func NewTransportError(err error) error {
	if isTimeout(err) {
		return fmt.Errorf("%w: %w: %v", ErrTransport, ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrTransport, err)
}

func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
