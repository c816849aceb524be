package edit

import (
	"fmt"
	"strings"
)

// Kind enumerates the edit classifications. The set is closed.
type Kind uint8

const (
	// Good labels unedited, verbatim-copied sequence.
	Good Kind = iota
	// Misjoin deletes the span (erroneous deletion-join).
	Misjoin
	// Gap masks the span with 'N'.
	Gap
	// Inversion replaces the span with its reverse complement.
	Inversion
	// FalseDuplication appends extra verbatim copies of the span.
	FalseDuplication
	// Break splits the sequence in two at a zero-width position.
	Break
	// Collapse removes repeat units from a tandem repeat.
	Collapse
)

// Kinds lists every edit kind (Good excluded) in declaration order.
var Kinds = []Kind{Misjoin, Gap, Inversion, FalseDuplication, Break, Collapse}

var kindNames = [...]string{
	Good:             "good",
	Misjoin:          "misjoin",
	Gap:              "gap",
	Inversion:        "inversion",
	FalseDuplication: "false_dupe",
	Break:            "break",
	Collapse:         "collapse",
}

// String returns the annotation label for k.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool { return int(k) < len(kindNames) }

// IsEdit reports whether k is an edit (anything but Good).
func (k Kind) IsEdit() bool { return k != Good && k.Valid() }

// Color returns the BED itemRgb for k: red for edits, white for good sequence.
func (k Kind) Color() string {
	if k.IsEdit() {
		return "255,0,0"
	}
	return "255,255,255"
}

// ParseKind resolves a label (case-insensitive, '-' and '_' interchangeable)
// to a Kind.
func ParseKind(s string) (Kind, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	switch name {
	case "good":
		return Good, nil
	case "misjoin", "deletion":
		return Misjoin, nil
	case "gap":
		return Gap, nil
	case "inversion":
		return Inversion, nil
	case "false_dupe", "false_duplication", "falseduplication", "falsedup":
		return FalseDuplication, nil
	case "break":
		return Break, nil
	case "collapse":
		return Collapse, nil
	}
	return Good, fmt.Errorf("edit: %q: %w", s, ErrUnknownKind)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("edit: %d: %w", uint8(k), ErrUnknownKind)
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
