package adapter

import "errors"

// Classification errors. Every error returned by a [RegistryAdapter] wraps
// exactly one of them, except a call cancelled by its caller, which wraps
// [context.Canceled] only.
var (
	// ErrUnreachable means the registry server could not be reached: a
	// transport error, a timeout or a gateway status (502, 503, 504).
	ErrUnreachable = errors.New("registry unreachable")
	// ErrRejected means the server answered and refused the request.
	ErrRejected = errors.New("registry rejected request")
)

// Specific rejections. They are always returned together with [ErrRejected].
var (
	ErrBadRequest          = errors.New("bad request")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")
)

// IsUnreachable reports whether err is classified as [ErrUnreachable].
func IsUnreachable(err error) bool {
	return errors.Is(err, ErrUnreachable)
}

// IsRejected reports whether err is classified as [ErrRejected].
func IsRejected(err error) bool {
	return errors.Is(err, ErrRejected)
}
