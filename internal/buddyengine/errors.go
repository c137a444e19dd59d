package buddyengine

import "errors"

// ErrNoSpace indicates that no free block large enough was found in the
// pool. The request fails; it is not retried on the large-block path.
var ErrNoSpace = errors.New("buddyengine: no free block large enough")

// ErrTooLarge indicates a request exceeds the pool's maximum block size and
// must be served by the large-block list instead.
var ErrTooLarge = errors.New("buddyengine: request exceeds maximum pool block size")

// ErrInitFailed indicates that one of the OS Memory Gate calls needed to
// carve the initial pool region (reading the break, extending it) failed,
// on this call or an earlier one: a failed initialization is not retried.
var ErrInitFailed = errors.New("buddyengine: pool initialization failed")
