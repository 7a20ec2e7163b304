// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Mailbox errors.
	ErrAuth     = errors.New("mailbox authentication failed")
	ErrProtocol = errors.New("unexpected mailbox content")
	ErrMailbox  = errors.New("mailbox operation failed")

	// Per-item errors.
	ErrParse          = errors.New("could not parse problem identifier")
	ErrExtraction     = errors.New("could not extract problem statement")
	ErrClassification = errors.New("classification failed")

	// Database errors.
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEntry = errors.New("duplicate entry")
	ErrStorage        = errors.New("storage operation failed")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Severity tells the ingestion loop whether it may continue after an error.
type Severity int

const (
	// Recoverable errors skip the current mail item; the run continues.
	Recoverable Severity = iota
	// Fatal errors abort the run.
	Fatal
)

func (s Severity) String() string {
	if s == Fatal {
		return "fatal"
	}
	return "recoverable"
}

// ErrorKind names the pipeline stage an error came from.
type ErrorKind string

// Error kinds.
const (
	KindAuth           ErrorKind = "auth"
	KindProtocol       ErrorKind = "protocol"
	KindMailbox        ErrorKind = "mailbox"
	KindParse          ErrorKind = "parse"
	KindExtraction     ErrorKind = "extraction"
	KindClassification ErrorKind = "classification"
	KindDuplicateKey   ErrorKind = "duplicate_key"
	KindStorage        ErrorKind = "storage"
)

var kindSentinels = map[ErrorKind]error{
	KindAuth:           ErrAuth,
	KindProtocol:       ErrProtocol,
	KindMailbox:        ErrMailbox,
	KindParse:          ErrParse,
	KindExtraction:     ErrExtraction,
	KindClassification: ErrClassification,
	KindDuplicateKey:   ErrDuplicateEntry,
	KindStorage:        ErrStorage,
}

// PipelineError is a tagged error carrying its kind and severity, so callers
// decide continue-vs-abort from the value rather than from the error's identity.
type PipelineError struct {
	Err      error
	Kind     ErrorKind
	Detail   string
	Severity Severity
}

func (e *PipelineError) Error() string {
	msg := string(e.Kind)
	if sentinel, ok := kindSentinels[e.Kind]; ok {
		msg = sentinel.Error()
	}
	if e.Detail != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Detail)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel error associated with the error's kind.
func (e *PipelineError) Is(target error) bool {
	sentinel, ok := kindSentinels[e.Kind]
	return ok && sentinel == target
}

// NewRecoverable creates an error that skips the current item.
func NewRecoverable(kind ErrorKind, detail string, err error) error {
	return &PipelineError{Kind: kind, Severity: Recoverable, Detail: detail, Err: err}
}

// NewFatal creates an error that aborts the run.
func NewFatal(kind ErrorKind, detail string, err error) error {
	return &PipelineError{Kind: kind, Severity: Fatal, Detail: detail, Err: err}
}

// IsFatal reports whether err should abort the run. Untagged errors are
// treated as fatal.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Severity == Fatal
	}
	return true
}

// KindOf returns the kind of a tagged error, or "" if err is untagged.
func KindOf(err error) ErrorKind {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
