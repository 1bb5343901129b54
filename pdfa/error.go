package pdfa

import "errors"

// ErrStateLimitReached is returned by Build when the number of distinct
// parallel states a pattern requires exceeds the configured state
// limit (spec §4.4's "state_limit"). It means the pattern is too
// combinatorially rich for the parallel reduction's fixed-width state
// encoding — not a bug in construction.
var ErrStateLimitReached = errors.New("pdfa: state limit reached during construction")

// ErrTooManyStates is returned by Build when a caller-supplied state
// limit exceeds the hard structural cap of 255 real states (spec §3's
// size cap): StateID is a byte and RejectState reserves 0xFF, so no
// more than 255 real states (0..254) can ever be addressed.
var ErrTooManyStates = errors.New("pdfa: state limit exceeds the 255-state structural cap")

// ErrMergeTableOverflow is returned by Build when the discovered state
// count's N*N merge table, plus the 256-byte initial-state table,
// would exceed the spec's 32768-byte kernel shared-memory footprint
// cap (N*N+256 <= 32768) even though N itself is within the 255-state
// cap.
var ErrMergeTableOverflow = errors.New("pdfa: merge table exceeds the 32768-byte footprint cap")
