package flow

import (
	"context"
	"errors"
	"net"
	"strings"
)

// ErrProviderUnavailable marks total language-model provider unavailability
// after every retry was spent. The graph still produces a canonical fallback
// reply; the boundary layer can match this sentinel with errors.Is to report
// the outage separately from a normal reply.
var ErrProviderUnavailable = errors.New("language model provider unavailable")

// isTransient reports whether a provider or transport error is worth
// retrying. Anything non-transient (bad request, parse failure) fails fast.
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, hint := range []string{
		"timeout",
		"timed out",
		"connection refused",
		"connection reset",
		"no such host",
		"temporarily unavailable",
		"status 500",
		"status 502",
		"status 503",
		"status 504",
	} {
		if strings.Contains(msg, hint) {
			return true
		}
	}
	return false
}
