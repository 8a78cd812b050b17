// Package invoice builds frozen invoice snapshots from orders, numbers
// them, renders them to PDF and stores the rendered files.
package invoice

import (
	"fmt"
	"time"
)

// NumberAt derives an invoice number from the given instant:
// BK-{year}-{NNNNNN}, where the sequence is the low six decimal digits of
// the unix-millisecond timestamp. Two calls within the same millisecond
// collide; the builder relies on the unique index on the number column and
// regenerates on conflict rather than treating this as a strong guarantee.
func NumberAt(t time.Time) string {
	seq := t.UnixMilli() % 1_000_000
	return fmt.Sprintf("BK-%d-%06d", t.Year(), seq)
}

// NewNumber derives an invoice number from the current time.
func NewNumber() string {
	return NumberAt(time.Now())
}
