package link

import "errors"

// ErrClosed is returned by Send when no handle is open, e.g. after a failed
// reopen.
var ErrClosed = errors.New("link closed")
