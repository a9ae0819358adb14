package domain

import "fmt"

// IDFormat selects how trip and activity identifiers are generated.
// The value is loaded from configuration once at startup and injected into
// the repos at construction — it is immutable for the lifetime of the
// process. Deployments migrated from the legacy system carry numeric ids;
// fresh deployments use UUIDs. Columns are TEXT either way, so both formats
// read back through the same code path.
type IDFormat string

const (
	IDFormatUUID    IDFormat = "uuid"
	IDFormatNumeric IDFormat = "numeric"
)

// ParseIDFormat validates a configured id format string.
func ParseIDFormat(s string) (IDFormat, error) {
	switch IDFormat(s) {
	case IDFormatUUID, IDFormatNumeric:
		return IDFormat(s), nil
	default:
		return "", fmt.Errorf("unknown id format %q (want %q or %q)", s, IDFormatUUID, IDFormatNumeric)
	}
}
