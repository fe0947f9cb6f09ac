package buf

import "errors"

var (
	// ErrEmpty is returned for a zero-length buffer that is not the
	// end-of-body sentinel.
	ErrEmpty = errors.New("buf: zero-length buffer outside end-of-body sentinel")
	// ErrClosed is returned when appending to a chain that was closed.
	ErrClosed = errors.New("buf: chain already closed")
	// ErrEmptyChain is returned when a chain without links is closed or
	// validated.
	ErrEmptyChain = errors.New("buf: empty chain")
	// ErrUnterminated is returned when no link is marked last-in-chain.
	ErrUnterminated = errors.New("buf: chain has no last-in-chain link")
	// ErrMisplacedLast is returned when a link other than the final one is
	// marked last-in-chain.
	ErrMisplacedLast = errors.New("buf: last-in-chain link is not the final link")
	// ErrMisplacedSentinel is returned when the end-of-body sentinel is not
	// the final, last-of-body link.
	ErrMisplacedSentinel = errors.New("buf: end-of-body sentinel is not the final last-of-body link")
	// ErrDuplicateLastOfBody is returned when more than one link is marked
	// last-of-body.
	ErrDuplicateLastOfBody = errors.New("buf: more than one last-of-body link")
)
