package gr2

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Sentinel error kinds. Every failure Decode returns wraps exactly one of
// these; callers distinguish them with errors.Is.
var (
	ErrBadMagic         = errors.New("gr2: unrecognized 16-byte magic")
	ErrShortInput       = errors.New("gr2: buffer underflow")
	ErrUnsupportedCodec = errors.New("gr2: unsupported sector compression codec")
	ErrDuplicateFixup   = errors.New("gr2: duplicate fixup src_offset")
	ErrSectorOutOfRange = errors.New("gr2: sector index out of range")
	ErrOffsetOutOfRange = errors.New("gr2: offset exceeds sector length")
	ErrUnknownTypeID    = errors.New("gr2: unknown type_id")
	ErrMissingFixup     = errors.New("gr2: missing required fixup")
	ErrInvalidUTF8      = errors.New("gr2: string is not valid UTF-8")
	ErrRecursionLimit   = errors.New("gr2: structural recursion limit exceeded")
	ErrUnresolvedPath   = errors.New("gr2: dotted path did not resolve to an element")
	ErrUnknownVariant   = errors.New("gr2: path resolved to an element of a different kind")
)

// Error is the concrete type every error returned from Decode,
// DecodeWithOptions and DecodeCached is wrapped in. It carries a correlation ID so a caller
// decoding many files in a batch can tie a failure back to one call to
// Decode without threading extra context through logs by hand.
type Error struct {
	RequestID uuid.UUID
	Op        string // the entry point that failed ("decode"); Err's message names the stage, e.g. "header"
	Err       error  // wraps one of the Err* sentinels above
}

func (e *Error) Error() string {
	return fmt.Sprintf("gr2[%s] %s: %v", e.RequestID, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func wrapErr(requestID uuid.UUID, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{RequestID: requestID, Op: op, Err: err}
}

func fail(op string, sentinel error, detail string) error {
	if detail == "" {
		return fmt.Errorf("%s: %w", op, sentinel)
	}
	return fmt.Errorf("%s: %w: %s", op, sentinel, detail)
}
