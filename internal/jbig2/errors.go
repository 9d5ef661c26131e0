package jbig2

import (
	"errors"
	"fmt"
)

// errNilImage is the sentinel wrapped by InvalidInput errors when an entry
// point is handed a nil bitmap.
var errNilImage = errors.New("nil image")

// ErrorKind classifies the failure modes an encoding operation can hit, so
// callers (and the CLI's exit-code mapping) can react differently to a bad
// argument than to an internal coding inconsistency.
type ErrorKind int

const (
	// InvalidInput marks a caller-supplied image or option that cannot be
	// encoded at all, e.g. a nil bitmap.
	InvalidInput ErrorKind = iota
	// InvalidValue marks an option outside its documented range, e.g. a
	// threshold outside [0,1].
	InvalidValue
	// ResourceExceeded marks a structural limit being hit. No function in
	// this package returns it: a dictionary of more than
	// JBig2MaxExportSymbols symbols is raised by EncodeSymbolDict as a
	// CodingError.
	ResourceExceeded
	// CodingError marks an internal inconsistency in the arithmetic coder
	// or segment framer that should never happen given valid input; it is
	// the only kind top-level entry points recover as a panic.
	CodingError
	// IoError marks a failure reading or writing encoded bytes.
	IoError
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidInput:
		return "invalid input"
	case InvalidValue:
		return "invalid value"
	case ResourceExceeded:
		return "resource exceeded"
	case CodingError:
		return "coding error"
	case IoError:
		return "i/o error"
	default:
		return "unknown error"
	}
}

// Error is the concrete error type returned (and, for CodingError, panicked)
// by this package's encoding entry points.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("jbig2: %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("jbig2: %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// panicCoding raises a CodingError as a panic, for the handful of call
// sites (segment sizing, context indexing) where the only honest response
// to a violated internal invariant is to stop immediately. Top-level entry
// points recover it and turn it back into a returned *Error.
func panicCoding(op string, err error) {
	panic(newError(CodingError, op, err))
}

// recoverCoding turns a panicked *Error of kind CodingError raised by
// panicCoding back into a normal return value. Any other panic value is
// re-raised, since only CodingError is meant to cross this boundary.
func recoverCoding(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	if e, ok := r.(*Error); ok && e.Kind == CodingError {
		*errp = e
		return
	}
	panic(r)
}

// RecoverCodingError is recoverCoding exported for callers outside this
// package that drive MultiPage directly, e.g. pkg/jbig2enc.Encoder, whose
// PagesComplete/ProducePage calls can panic on the same internal invariants
// as the entry points in this package.
func RecoverCodingError(errp *error) {
	recoverCoding(errp)
}
