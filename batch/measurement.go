package batch

import (
	"fmt"
	"time"
)

// Measurement records the cost of one successful background removal.
// Deltas are signed: RAM can shrink across a call when the GC runs, and
// VRAMDeltaMB is a constant 0 when no GPU telemetry backend is available.
type Measurement struct {
	Path        string
	Elapsed     time.Duration
	RAMDeltaMB  float64
	VRAMDeltaMB float64
}

// ItemError is the failure of a single item. The runner logs it and moves
// on; it never aborts the batch.
type ItemError struct {
	Path string
	Err  error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("process %s: %v", e.Path, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}
