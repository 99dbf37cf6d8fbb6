package copilot

import (
	"errors"
	"fmt"
)

// ErrModelInvocation marks a failed outbound model call, as opposed to a
// store failure or a parse degradation. The server maps it to 502.
var ErrModelInvocation = errors.New("model invocation failed")

func modelErr(err error) error {
	return fmt.Errorf("%w: %w", ErrModelInvocation, err)
}
