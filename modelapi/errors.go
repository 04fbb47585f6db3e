package modelapi

import "errors"

// ErrNotConfigured is returned by provider clients whose credentials were
// absent at startup. Callers treat it like any other provider failure when
// walking a fallback chain.
var ErrNotConfigured = errors.New("provider not configured")
