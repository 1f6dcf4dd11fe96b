package bridge

import "errors"

var (
	// ErrTitleEncoding is returned when the title is empty or cannot be
	// passed to native code as a C string.
	ErrTitleEncoding = errors.New("title cannot be encoded as a native string")
	// ErrInvalidSize is returned for non-positive or oversized dimensions.
	ErrInvalidSize = errors.New("invalid window size")
	// ErrOpen is returned when the native layer refuses to create a window.
	ErrOpen = errors.New("unable to open window")
	// ErrBufferSize is returned by Update when the pixel buffer does not
	// hold exactly width*height pixels.
	ErrBufferSize = errors.New("pixel buffer does not match window size")
	// ErrClosed is returned by operations on a closed window.
	ErrClosed = errors.New("window closed")
)

// Error records a failed window operation.
type Error struct {
	Op    string
	Title string
	Err   error
}

func (e *Error) Error() string {
	if e.Title != "" {
		return e.Op + " " + e.Title + ": " + e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}
