package track

import "fmt"

// Validate checks that rows, in order, tile [origStart, origEnd) in original
// coordinates and [0, newLen) in new coordinates with no gap or overlap.
// Zero-width rows are allowed in either space.
func Validate(rows []Row, origStart, origEnd, newLen int) error {
	oc, nc := origStart, 0
	for i, r := range rows {
		if r.OrigStart != oc || r.OrigEnd < r.OrigStart {
			return fmt.Errorf("row %d %s: original cursor at %d: %w", i, r, oc, ErrBrokenTiling)
		}
		if r.NewStart != nc || r.NewEnd < r.NewStart {
			return fmt.Errorf("row %d %s: new cursor at %d: %w", i, r, nc, ErrBrokenTiling)
		}
		oc, nc = r.OrigEnd, r.NewEnd
	}
	if oc != origEnd {
		return fmt.Errorf("rows end at original %d, want %d: %w", oc, origEnd, ErrBrokenTiling)
	}
	if nc != newLen {
		return fmt.Errorf("rows end at new %d, want %d: %w", nc, newLen, ErrBrokenTiling)
	}
	return nil
}
