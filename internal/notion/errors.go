package notion

import (
	"errors"
	"fmt"
)

// MalformedRecordError reports a payload missing a structurally required field,
// or carrying it with the wrong JSON type.
type MalformedRecordError struct {
	Entity string
	Path   string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "missing"
	}
	return fmt.Sprintf("malformed %s: %s: %s", e.Entity, e.Path, reason)
}

func IsMalformed(err error) bool {
	var target *MalformedRecordError
	return errors.As(err, &target)
}
