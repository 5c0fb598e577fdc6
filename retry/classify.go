package retry

import (
	"errors"
	"strings"

	"stayflow/suppliers"
)

// Statuses that must never be retried: the request itself is wrong or the
// resource is gone, so a second identical attempt cannot succeed.
var nonRetryableStatuses = map[int]bool{
	400: true,
	401: true,
	403: true,
	404: true,
}

// Upstream failure messages that mean the failure is permanent for this
// request, regardless of status.
var nonRetryableMarkers = []string{
	"not available",
	"sold out",
	"invalid token",
	"expired",
	"unauthorized",
	"forbidden",
}

// Retryable reports whether another attempt at the same call may succeed.
// Terminal classifications stop the retry loop after a single attempt.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	// No usable provider is a configuration fact; another attempt cannot
	// conjure one.
	var npe *suppliers.NoProviderError
	if errors.As(err, &npe) {
		return false
	}
	if errors.Is(err, suppliers.ErrNotConfigured) {
		return false
	}
	if status := suppliers.StatusOf(err); status != 0 && nonRetryableStatuses[status] {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range nonRetryableMarkers {
		if strings.Contains(msg, marker) {
			return false
		}
	}
	return true
}
