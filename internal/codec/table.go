// Package codec implements the printable-binary symbol table and the
// encode, decode, format, and sanitize operations built on top of it.
//
// Every 8-bit byte value is assigned exactly one printable UTF-8 sequence of
// one to three bytes. The assignment is fixed: printable ASCII maps to
// itself, the two high ranges map through stable two-byte transforms, and a
// curated set of visually distinctive characters covers control bytes and
// easily-confused punctuation. The table is built once and is read-only
// afterwards, so it is safe to share between concurrent callers.
package codec

import (
	"errors"
	"fmt"
)

// maxSequenceLen is the longest printable sequence the table ever assigns.
const maxSequenceLen = 3

// Error definitions for symbol table construction. Any of these indicates a
// defect in the fixed assignment data, not a runtime condition.
var (
	// ErrMissingSequence indicates a byte value that received no sequence.
	ErrMissingSequence = errors.New("byte value has no assigned sequence")

	// ErrDuplicateSequence indicates two byte values whose sequences collide
	// in the decode index.
	ErrDuplicateSequence = errors.New("two byte values map to the same sequence")

	// ErrPrefixCollision indicates a sequence that is a byte prefix of a
	// longer sequence, which would break greedy longest-match decoding.
	ErrPrefixCollision = errors.New("sequence is a byte prefix of another sequence")
)

// Sequence is the printable encoding of a single byte value: one to three
// bytes forming one visual unit in the output alphabet.
type Sequence struct {
	buf [maxSequenceLen]byte
	n   uint8
}

// Bytes returns the encoded bytes of the sequence.
func (s Sequence) Bytes() []byte { return s.buf[:s.n] }

// Len returns the number of encoded bytes.
func (s Sequence) Len() int { return int(s.n) }

func (s Sequence) String() string { return string(s.buf[:s.n]) }

// newSequence builds a Sequence from a literal UTF-8 string. Literals longer
// than maxSequenceLen would corrupt the table, so they panic immediately.
func newSequence(lit string) Sequence {
	if len(lit) == 0 || len(lit) > maxSequenceLen {
		panic(fmt.Sprintf("codec: sequence literal %q has invalid length %d", lit, len(lit)))
	}
	var s Sequence
	s.n = uint8(copy(s.buf[:], lit))
	return s
}

// overrideEntry is one curated byte-to-sequence assignment.
type overrideEntry struct {
	value byte
	seq   string
}

// overrideSequences lists the hand-picked assignments that take priority over
// the range rules: all control bytes 0-31, space, DEL, punctuation that is
// easy to confuse with formatting, and the two high bytes that would
// otherwise fall into the 0xC3/0xC4 ranges. Kept as a flat data table so the
// completeness and injectivity invariants stay checkable by iteration.
var overrideSequences = []overrideEntry{
	{0x00, "∅"},  // U+2205 empty set
	{0x01, "¯"},  // U+00AF
	{0x02, "«"},  // U+00AB
	{0x03, "»"},  // U+00BB
	{0x04, "ϟ"},  // U+03DE
	{0x05, "¿"},  // U+00BF
	{0x06, "¡"},  // U+00A1
	{0x07, "ª"},  // U+00AA
	{0x08, "⌫"},  // U+232B backspace
	{0x09, "⇥"},  // U+21E5 tab
	{0x0A, "⇩"},  // U+21E9 line feed
	{0x0B, "⊧"},  // U+22A7 vertical tab
	{0x0C, "§"},  // U+00A7
	{0x0D, "⏎"},  // U+23CE carriage return
	{0x0E, "ȯ"},  // U+022F
	{0x0F, "ʘ"},  // U+0298
	{0x10, "Ɣ"},  // U+0194
	{0x11, "¹"},  // U+00B9
	{0x12, "²"},  // U+00B2
	{0x13, "º"},  // U+00BA
	{0x14, "³"},  // U+00B3
	{0x15, "µ"},  // U+00B5
	{0x16, "ɨ"},  // U+0268
	{0x17, "¬"},  // U+00AC
	{0x18, "©"},  // U+00A9
	{0x19, "¦"},  // U+00A6
	{0x1A, "Ƶ"},  // U+01B5
	{0x1B, "⎋"},  // U+238B escape
	{0x1C, "Ξ"},  // U+039E
	{0x1D, "ǁ"},  // U+01C1
	{0x1E, "ǀ"},  // U+01C0
	{0x1F, "¶"},  // U+00B6
	{0x20, "␣"},  // U+2423 space
	{0x21, "﹗"}, // U+FE57 small exclamation mark
	{0x22, "˵"},  // U+02F5
	{0x23, "♯"},  // U+266F music sharp sign
	{0x24, "﹩"}, // U+FE69 small dollar sign
	{0x25, "﹪"}, // U+FE6A small percent sign
	{0x26, "﹠"}, // U+FE60 small ampersand
	{0x27, "ʼ"},  // U+02BC
	{0x28, "❨"},  // U+2768 medium left parenthesis ornament
	{0x29, "❩"},  // U+2769 medium right parenthesis ornament
	{0x2A, "﹡"}, // U+FE61 small asterisk
	{0x2B, "﹢"}, // U+FE62 small plus sign
	{0x2D, "﹣"}, // U+FE63 small hyphen-minus
	{0x2F, "⁄"},  // U+2044 fraction slash
	{0x3A, "﹕"}, // U+FE55 small colon
	{0x3B, "﹔"}, // U+FE54 small semicolon
	{0x3D, "﹦"}, // U+FE66 small equals sign
	{0x3F, "﹖"}, // U+FE56 small question mark
	{0x40, "﹫"}, // U+FE6B small commercial at
	{0x5B, "⟦"},  // U+27E6 mathematical left white square bracket
	{0x5C, "⧹"},  // U+29F9 big reverse solidus
	{0x5D, "⟧"},  // U+27E7 mathematical right white square bracket
	{0x60, "ˋ"},  // U+02CB modifier letter grave accent
	{0x7B, "❴"},  // U+2774 medium left curly bracket ornament
	{0x7C, "∣"},  // U+2223 divides
	{0x7D, "❵"},  // U+2775 medium right curly bracket ornament
	{0x7E, "˜"},  // U+02DC small tilde
	{0x7F, "⌦"},  // U+2326 delete
	{0x98, "Ō"},  // U+014C
	{0xB8, "ŏ"},  // U+014F
}

// SymbolTable pairs the complete byte-to-sequence assignment with its exact
// inverse. Built once via NewSymbolTable; read-only afterwards.
type SymbolTable struct {
	encode [256]Sequence
	decode map[uint16]byte
}

// NewSymbolTable builds the printable-binary symbol table and verifies its
// invariants: every byte value has a non-empty sequence, no two byte values
// share a decode key, and no sequence is a byte prefix of another. A non-nil
// error means the fixed assignment data itself is defective and the process
// must not encode or decode anything.
func NewSymbolTable() (*SymbolTable, error) {
	t := &SymbolTable{
		decode: make(map[uint16]byte, 256),
	}

	overrides := make(map[byte]string, len(overrideSequences))
	for _, o := range overrideSequences {
		overrides[o.value] = o.seq
	}

	for i := 0; i < 256; i++ {
		b := byte(i)
		switch {
		case overrides[b] != "":
			t.encode[i] = newSequence(overrides[b])
		case b >= 33 && b <= 126:
			// Printable ASCII is already unambiguous; identity mapping.
			t.encode[i] = Sequence{buf: [maxSequenceLen]byte{b}, n: 1}
		case b >= 128 && b < 192:
			t.encode[i] = Sequence{buf: [maxSequenceLen]byte{0xC3, b}, n: 2}
		case b >= 192:
			t.encode[i] = Sequence{buf: [maxSequenceLen]byte{0xC4, b - 192 + 128}, n: 2}
		}
	}

	if err := t.buildDecodeIndex(); err != nil {
		return nil, err
	}
	if err := t.checkPrefixFreedom(); err != nil {
		return nil, err
	}
	return t, nil
}

// buildDecodeIndex fills the inverse map and rejects incomplete or colliding
// assignments.
func (t *SymbolTable) buildDecodeIndex() error {
	for i := 0; i < 256; i++ {
		seq := t.encode[i]
		if seq.Len() == 0 {
			return fmt.Errorf("%w: 0x%02X", ErrMissingSequence, i)
		}
		key := sequenceKey(seq.Bytes())
		if prev, exists := t.decode[key]; exists {
			return fmt.Errorf("%w: 0x%02X and 0x%02X share key 0x%04X", ErrDuplicateSequence, prev, i, key)
		}
		t.decode[key] = byte(i)
	}
	return nil
}

// checkPrefixFreedom verifies that no assigned sequence is a byte prefix of
// a longer assigned sequence. Greedy decoding shrinks an overestimated match
// length until a table entry hits; a prefix collision is the one condition
// under which that shrink could resolve to the wrong byte.
func (t *SymbolTable) checkPrefixFreedom() error {
	assigned := make(map[string]struct{}, 256)
	for i := 0; i < 256; i++ {
		assigned[t.encode[i].String()] = struct{}{}
	}
	for i := 0; i < 256; i++ {
		s := t.encode[i].String()
		for n := 1; n < len(s); n++ {
			if _, exists := assigned[s[:n]]; exists {
				return fmt.Errorf("%w: %q shadows 0x%02X", ErrPrefixCollision, s[:n], i)
			}
		}
	}
	return nil
}

// SequenceFor returns the printable sequence assigned to the given byte.
func (t *SymbolTable) SequenceFor(b byte) Sequence {
	return t.encode[b]
}

// sequenceKey computes the 16-bit decode index key for a candidate sequence.
// One-byte sequences key on the byte itself, two-byte sequences on the raw
// byte pair, and three-byte sequences on the packed low bits of each byte
// (the UTF-8 codepoint of the sequence). The key spaces of the three lengths
// never overlap for sequences the builder actually emits; buildDecodeIndex
// rejects the table outright if that ever stops holding.
func sequenceKey(seq []byte) uint16 {
	switch len(seq) {
	case 1:
		return uint16(seq[0])
	case 2:
		return uint16(seq[0])<<8 | uint16(seq[1])
	case 3:
		return uint16(seq[0]&0x0F)<<12 | uint16(seq[1]&0x3F)<<6 | uint16(seq[2]&0x3F)
	default:
		return 0
	}
}

// unitLen estimates the byte length of the printable unit starting with the
// given byte, from its high bits. This mirrors the byte-length shape of the
// sequences the encoder emits; the decoder treats it as a first guess only.
func unitLen(first byte) int {
	switch {
	case first < 0x80:
		return 1
	case first < 0xE0:
		return 2
	case first < 0xF0:
		return 3
	default:
		return 4
	}
}
