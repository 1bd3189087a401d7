package preset

import (
	"errors"
	"fmt"
)

// ErrNotEditable is returned when an edit targets a built-in preset.
// Built-ins are immutable; callers should duplicate instead.
var ErrNotEditable = errors.New("built-in presets cannot be edited")

// ErrUnresolvedPreset is available for callers that need to surface a nil
// resolution result as an error. Resolve itself never returns it.
var ErrUnresolvedPreset = errors.New("preset reference resolves to nothing")

// InvalidSamplerOrderError reports a malformed sampler-order
// specification, carrying the offending value.
type InvalidSamplerOrderError struct {
	Value  string
	Reason string
}

func (e *InvalidSamplerOrderError) Error() string {
	return fmt.Sprintf("invalid sampler order value %q: %s", e.Value, e.Reason)
}
