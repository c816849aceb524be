package edit

import (
	"bytes"
	"fmt"
)

// GapSymbol is the byte written over gap spans.
const GapSymbol = 'N'

// Apply returns the replacement bytes for span under kind. The input slice is
// never modified and the result never aliases it.
func Apply(kind Kind, span []byte, p Params) ([]byte, error) {
	switch kind {
	case Good:
		return bytes.Clone(span), nil
	case Misjoin:
		return []byte{}, nil
	case Gap:
		return bytes.Repeat([]byte{GapSymbol}, len(span)), nil
	case Inversion:
		return ReverseComplement(span)
	case FalseDuplication:
		return duplicate(span, p.Duplications), nil
	case Break:
		// A break only marks a split point; the bytes around it are copied as good sequence.
		return bytes.Clone(span), nil
	case Collapse:
		return collapse(span, p.Unit, p.Keep)
	default:
		return nil, fmt.Errorf("edit: apply %d: %w", uint8(kind), ErrUnknownKind)
	}
}

// duplicate returns span followed by d more copies of itself. d < 0 is treated as 0.
func duplicate(span []byte, d int) []byte {
	if d < 0 {
		d = 0
	}
	return bytes.Repeat(span, 1+d)
}

// collapse keeps the first keep units of a span made of whole copies of a unit.
// keep is clamped into [1, k-1] so the span always shrinks.
func collapse(span []byte, unit, keep int) ([]byte, error) {
	w := len(span)
	if unit <= 0 || w == 0 || w%unit != 0 {
		return nil, fmt.Errorf("edit: collapse width %d unit %d: %w", w, unit, ErrNonPeriodicSpan)
	}
	k := w / unit
	if k < 2 {
		return nil, fmt.Errorf("edit: collapse needs >=2 units, got %d: %w", k, ErrNonPeriodicSpan)
	}
	for i := unit; i < w; i += unit {
		if !bytes.Equal(span[i:i+unit], span[:unit]) {
			return nil, fmt.Errorf("edit: collapse unit %q differs at offset %d: %w", span[:unit], i, ErrNonPeriodicSpan)
		}
	}
	keep = ClampKeep(keep, k)
	return bytes.Clone(span[:keep*unit]), nil
}

// ClampKeep bounds the kept unit count k' into [1, k-1].
func ClampKeep(keep, k int) int {
	if keep >= k {
		keep = k - 1
	}
	if keep < 1 {
		keep = 1
	}
	return keep
}

// NewWidth returns the replacement width of a span of width w without
// materializing it. It mirrors Apply for well-formed params.
func NewWidth(kind Kind, w int, p Params) int {
	switch kind {
	case Misjoin:
		return 0
	case FalseDuplication:
		d := p.Duplications
		if d < 0 {
			d = 0
		}
		return w * (1 + d)
	case Collapse:
		if p.Unit <= 0 || w%p.Unit != 0 {
			return w
		}
		return ClampKeep(p.Keep, w/p.Unit) * p.Unit
	default:
		return w
	}
}
