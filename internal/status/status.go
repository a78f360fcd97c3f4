// Package status defines the small set of result/error kinds shared by the
// DEM, track and acquire packages, in the style of the structured
// application-error type used elsewhere in this corpus: a Kind tag plus an
// optional wrapped cause, rather than ad-hoc sentinel errors or bare
// strings.
package status

import "fmt"

// Kind is one of the result kinds a component-level operation can return.
type Kind int

const (
	Success Kind = iota
	NotRequired
	FileAccess
	IntermediateFileAccess
	Error
	InternalError
	Cancelled
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case NotRequired:
		return "not_required"
	case FileAccess:
		return "file_access"
	case IntermediateFileAccess:
		return "intermediate_file_access"
	case Error:
		return "error"
	case InternalError:
		return "internal_error"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// OK reports whether k represents a nominal (non-failure) result.
func (k Kind) OK() bool {
	return k == Success || k == NotRequired
}

// Status is a Kind plus a human-readable message and optional wrapped
// cause. It implements error so it can be returned and compared with
// errors.Is/errors.As against the wrapped cause.
type Status struct {
	Kind    Kind
	Message string
	Cause   error
}

func New(kind Kind, message string) *Status {
	return &Status{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, cause error) *Status {
	return &Status{Kind: kind, Message: message, Cause: cause}
}

func Ok() *Status { return &Status{Kind: Success} }

func (s *Status) Error() string {
	if s == nil {
		return ""
	}
	if s.Cause != nil {
		return fmt.Sprintf("%s: %s (%v)", s.Kind, s.Message, s.Cause)
	}
	if s.Message != "" {
		return fmt.Sprintf("%s: %s", s.Kind, s.Message)
	}
	return s.Kind.String()
}

func (s *Status) Unwrap() error {
	if s == nil {
		return nil
	}
	return s.Cause
}

// IsOK reports whether s is nil or carries a nominal Kind. A nil *Status is
// treated as success so that functions can return a plain nil on the happy
// path.
func IsOK(s *Status) bool {
	return s == nil || s.Kind.OK()
}

// KindOf extracts the Kind from s, treating nil as Success.
func KindOf(s *Status) Kind {
	if s == nil {
		return Success
	}
	return s.Kind
}

// Failure collapses Error/FileAccess/IntermediateFileAccess, and also
// InternalError/Cancelled, into a single boolean, matching the acquire
// worker's finalization policy in §7: every non-Success kind means
// "discard the fresh target, nothing is attached".
func (s *Status) Failure() bool {
	if s == nil {
		return false
	}
	switch s.Kind {
	case Error, FileAccess, IntermediateFileAccess, InternalError, Cancelled:
		return true
	default:
		return false
	}
}
