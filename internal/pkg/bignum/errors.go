package bignum

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
)

var (
	// ErrUnderflow is reported when a subtraction would produce a negative value.
	ErrUnderflow = errors.New("subtrahend is greater than minuend")
	// ErrDivisionByZero is reported by every division and modulo operation with a zero divisor.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrNegativeBit is reported by SetBit for a negative bit index.
	ErrNegativeBit = errors.New("negative bit index")
	// ErrShortRead is reported when a stream ends in the middle of an encoded value.
	ErrShortRead = errors.New("short read")
	// ErrShortWrite is reported when fewer bytes than requested were written.
	ErrShortWrite = errors.New("short write")
	// ErrMalformedBlock is reported when a block does not fit the buffer sized for the key.
	ErrMalformedBlock = errors.New("malformed block")
	// ErrTooManySegments is reported when a value cannot be described by a u16 segment count.
	ErrTooManySegments = errors.New("too many segments")
)

// Error describes a failed precondition or I/O failure together with the
// source location that detected it.
type Error struct {
	Op   string
	File string
	Line int
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("bignum: %s failed at %s:%d: %v", e.Op, e.File, e.Line, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(op string, err error) *Error {
	e := &Error{Op: op, Err: err}
	if _, file, line, ok := runtime.Caller(1); ok {
		e.File = filepath.Base(file)
		e.Line = line
	}
	return e
}

// Recover stops a panic raised by this package and stores it in *errp.
// Panics of any other kind are re-raised. It must be called directly by defer.
func Recover(errp *error) {
	if r := recover(); r != nil {
		e, ok := r.(*Error)
		if !ok {
			panic(r)
		}
		*errp = e
	}
}
