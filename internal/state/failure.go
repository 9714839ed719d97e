package state

import (
	"errors"
	"fmt"

	"github.com/yungbote/eduadmin/internal/api"
)

var (
	// ErrUnsupported is returned for operations the remote API does not
	// offer for a resource. State is left untouched.
	ErrUnsupported = errors.New("operation not supported")
	ErrMissingID   = errors.New("id required")
)

// GeneralField is the key used when a field-shaped failure has no
// per-field detail from the server.
const GeneralField = "general"

const generalFieldMessage = "An error occurred"

type FailureKind int

const (
	// FailureMessage carries a single user-facing string.
	FailureMessage FailureKind = iota
	// FailureFields carries field -> message validation errors.
	FailureFields
)

func (k FailureKind) String() string {
	if k == FailureFields {
		return "fields"
	}
	return "message"
}

// Failure is the error every container operation returns. Callers switch
// on Kind rather than guessing which shape an endpoint produces.
type Failure struct {
	Kind     FailureKind
	Op       string
	Resource string
	Message  string
	Fields   map[string]string
	Err      error
}

func (f *Failure) Error() string {
	if f == nil {
		return "failure"
	}
	return fmt.Sprintf("%s %s: %s", f.Op, f.Resource, f.Message)
}

func (f *Failure) Unwrap() error {
	if f == nil {
		return nil
	}
	return f.Err
}

// AsFailure unwraps err to a *Failure.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

func newFailure(kind FailureKind, op, resource, fallback string, err error) *Failure {
	f := &Failure{
		Kind:     kind,
		Op:       op,
		Resource: resource,
		Message:  failureMessage(err, fallback),
		Err:      err,
	}
	if kind == FailureFields {
		f.Fields = api.FieldsOf(err)
		if len(f.Fields) == 0 {
			f.Fields = map[string]string{GeneralField: generalFieldMessage}
		}
	}
	return f
}

// failureMessage prefers what the server said, then the operation's own
// fallback when the server answered without a message, then the generic
// transport fallback.
func failureMessage(err error, fallback string) string {
	if msg := api.ServerMessage(err); msg != "" {
		return msg
	}
	var herr *api.HTTPError
	var eerr *api.EnvelopeError
	if errors.As(err, &herr) || errors.As(err, &eerr) {
		if fallback != "" {
			return fallback
		}
	}
	return api.FallbackMessage
}
