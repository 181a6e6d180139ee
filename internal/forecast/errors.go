package forecast

import "fmt"

// Kind partitions engine failures the way callers route on them. Nothing
// is retried internally: the engine is deterministic except for sampling,
// so a failed validation cannot succeed on a second attempt.
type Kind string

const (
	// KindConfig: unknown (game, pool) pair or an internally inconsistent
	// pool config. Surfaced before any computation starts.
	KindConfig Kind = "configuration"
	// KindValidation: a request field outside its domain.
	KindValidation Kind = "validation"
	// KindCompute: the solver or simulator could not produce a result
	// (unbounded state space, pull ceiling). Never silently approximated.
	KindCompute Kind = "compute"
)

// Error is the engine's fail-closed error: a kind to route on and, where
// one applies, the offending field.
type Error struct {
	Kind  Kind
	Field string
	Msg   string
	Err   error // underlying cause, if any
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s error: %s: %s", e.Kind, e.Field, e.Msg)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

func configErr(field, format string, args ...any) *Error {
	return &Error{Kind: KindConfig, Field: field, Msg: fmt.Sprintf(format, args...)}
}

func validationErr(field, format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Field: field, Msg: fmt.Sprintf(format, args...)}
}

func computeErr(format string, args ...any) *Error {
	return &Error{Kind: KindCompute, Msg: fmt.Sprintf(format, args...)}
}
