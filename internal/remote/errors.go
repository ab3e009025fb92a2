package remote

import (
	"errors"
	"fmt"
	"io"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	// ErrConnection indicates that the link to the registry broke while a
	// call was in flight. Callers treat it as a disconnection event.
	ErrConnection = errors.New("registry connection error")

	// ErrEndOfStream indicates that the registry closed its end of the
	// stream. Like [ErrConnection] it is an expected link-loss condition.
	ErrEndOfStream = errors.New("registry end of stream")

	// ErrConnClosed is returned by operations on a connection that has
	// already been closed locally.
	ErrConnClosed = errors.New("connection is closed")
)

// mapError translates transport failures into the package sentinels. A clean
// stream end maps to [ErrEndOfStream]; transport-level failures map to
// [ErrConnection]; everything else is returned unchanged because it
// indicates a contract violation rather than an expected network condition.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %s", ErrEndOfStream, err)
	}

	switch status.Code(err) {
	case codes.Unavailable, codes.Canceled:
		return fmt.Errorf("%w: %s", ErrConnection, err)
	}

	return err
}
