package codec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Formatting errors.
var (
	// ErrInvalidFormatSpec is returned for format strings that are not of
	// the form "NxM" with positive N and M.
	ErrInvalidFormatSpec = errors.New("invalid format specification")
)

// FormatSpec controls how encoded output is grouped for human reading: a
// separator space after every GroupSize-th printable unit and a line break
// after every GroupsPerLine-th group. It only inserts whitespace between
// units; sequence boundaries are never split.
type FormatSpec struct {
	GroupSize     int
	GroupsPerLine int
}

// DefaultFormatSpec is the grouping applied when none is configured.
var DefaultFormatSpec = FormatSpec{GroupSize: 8, GroupsPerLine: 10}

// Validate rejects non-positive group dimensions.
func (f FormatSpec) Validate() error {
	if f.GroupSize < 1 || f.GroupsPerLine < 1 {
		return fmt.Errorf("%w: group size and groups per line must be positive, got %dx%d",
			ErrInvalidFormatSpec, f.GroupSize, f.GroupsPerLine)
	}
	return nil
}

func (f FormatSpec) String() string {
	return fmt.Sprintf("%dx%d", f.GroupSize, f.GroupsPerLine)
}

// ParseFormatSpec parses a "NxM" grouping string such as "8x10".
func ParseFormatSpec(s string) (FormatSpec, error) {
	left, right, found := strings.Cut(s, "x")
	if !found {
		return FormatSpec{}, fmt.Errorf("%w: %q (expected NxM, e.g. 8x10)", ErrInvalidFormatSpec, s)
	}
	group, err := strconv.Atoi(left)
	if err != nil {
		return FormatSpec{}, fmt.Errorf("%w: %q: %w", ErrInvalidFormatSpec, s, err)
	}
	perLine, err := strconv.Atoi(right)
	if err != nil {
		return FormatSpec{}, fmt.Errorf("%w: %q: %w", ErrInvalidFormatSpec, s, err)
	}
	spec := FormatSpec{GroupSize: group, GroupsPerLine: perLine}
	if err := spec.Validate(); err != nil {
		return FormatSpec{}, err
	}
	return spec, nil
}

// Format groups encoded output for reading. Unit boundaries are re-derived
// from the leading-byte length heuristic alone; the formatter never consults
// the symbol table because it never decodes, it only skips whole units. No
// separator is emitted after the final unit, so formatted output never ends
// in stray whitespace of its own making.
func (f FormatSpec) Format(encoded []byte) []byte {
	if len(encoded) == 0 {
		return nil
	}

	// Worst case adds one space per group plus one newline per line.
	est := len(encoded) + len(encoded)/f.GroupSize + len(encoded)/(f.GroupSize*f.GroupsPerLine)
	out := make([]byte, 0, est)

	units := 0
	i := 0
	for i < len(encoded) {
		n := unitLen(encoded[i])
		if rem := len(encoded) - i; n > rem {
			n = rem
		}
		out = append(out, encoded[i:i+n]...)
		units++
		i += n

		if units%f.GroupSize == 0 && i < len(encoded) {
			out = append(out, ' ')
			if (units/f.GroupSize)%f.GroupsPerLine == 0 {
				out = append(out, '\n')
			}
		}
	}
	return out
}
