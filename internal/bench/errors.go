package bench

import "errors"

// ErrInvalidWorkload marks workload parameter combinations that cannot
// produce a meaningful run. Inspect with errors.Is.
var ErrInvalidWorkload = errors.New("invalid workload")
