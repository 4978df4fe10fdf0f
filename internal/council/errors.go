// ABOUTME: Sentinel errors for the council client's failure taxonomy
// ABOUTME: Transport and framing failures are connection-fatal; server errors are data

package council

import "errors"

var (
	// ErrConnect reports that the remote endpoint refused or was unreachable.
	ErrConnect = errors.New("connection failed")

	// ErrIO reports a read or write failure mid-session. The connection is
	// unusable afterwards; the caller must close and reconnect.
	ErrIO = errors.New("i/o failure")

	// ErrState reports a call on a client that is not connected. No I/O is
	// performed.
	ErrState = errors.New("client not connected")

	// ErrCorrelation reports a reply whose id does not match the request
	// that was just sent. The stream position is unreliable afterwards.
	ErrCorrelation = errors.New("response id mismatch")

	// ErrTimeout reports that the per-call deadline expired while waiting
	// for a reply. The connection is left in an indeterminate state.
	ErrTimeout = errors.New("call timed out")
)
