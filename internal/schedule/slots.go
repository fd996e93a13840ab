// Package schedule spreads one day's entries across a fixed number of
// display rows. It is applied to weekday entries only; weekend days keep
// their raw chronological order with no padding.
package schedule

// Slot layout constants. Offsets are seconds elapsed since the anchor.
const (
	// Capacity is the number of display rows per day.
	Capacity = 3
	// AnchorSec is the reference clock (08:00) offsets are measured from.
	AnchorSec = 8 * 3600
	// Step is the slot width: one blank row per 2.5 hours of visual room.
	Step = 9000
	// ceilingStart is where the shrinking ceiling begins.
	ceilingStart = 36000
	// Empty marks an unoccupied slot in an Arrange result.
	Empty = -1
)

// Arrange places the ascending start offsets of one day's entries into
// exactly Capacity slots, padding with Empty where there is visual room.
// Widely separated entries each get their own row with blanks between
// them; tightly clustered entries are packed without artificial spacing.
//
// The walk is greedy and latest-first: a shrinking ceiling starts at
// ceilingStart, and an offset at least one Step below the ceiling earns a
// blank row above it as long as the blanks plus the real entries still
// fit the capacity.
//
// Guarantees: the result has length Capacity, filled slots preserve the
// input's relative order, and the number of filled slots never exceeds
// min(len(offsets), Capacity).
func Arrange(offsets []int) []int {
	ceiling := ceilingStart
	inserted := 0
	rows := make([]int, 0, Capacity)

	for i := len(offsets) - 1; i >= 0; i-- {
		x := offsets[i]

		for ceiling-x >= Step && inserted+len(offsets) < Capacity {
			rows = append(rows, Empty)
			inserted++
			ceiling -= Step
		}

		if x <= ceiling {
			ceiling = x
		}
		rows = append(rows, x)
	}

	for len(rows) < Capacity {
		rows = append(rows, Empty)
	}

	// rows is latest-first; restore chronological order, then truncate.
	for l, r := 0, len(rows)-1; l < r; l, r = l+1, r-1 {
		rows[l], rows[r] = rows[r], rows[l]
	}
	return rows[:Capacity]
}
