package misassembly

import (
	"errors"
	"fmt"

	"github.com/logsdon-lab/misasim/edit"
)

// ErrBadRequest indicates a batch entry that can never be satisfied
// (non-edit kind, negative count).
var ErrBadRequest = errors.New("misassembly: bad request")

// EditError reports a failure with enough context to locate it.
// Request and Instance are -1 when the failure concerns the whole sequence.
type EditError struct {
	SeqID    string
	Request  int
	Instance int
	Kind     edit.Kind
	Err      error
}

// Error implements error.
func (e *EditError) Error() string {
	if e.Request < 0 {
		return fmt.Sprintf("misassembly: sequence %s: %v", e.SeqID, e.Err)
	}
	return fmt.Sprintf("misassembly: sequence %s request %d (%s) instance %d: %v",
		e.SeqID, e.Request, e.Kind, e.Instance, e.Err)
}

// Unwrap exposes the underlying sentinel to errors.Is.
func (e *EditError) Unwrap() error { return e.Err }
