package codec

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTable(t *testing.T) *SymbolTable {
	t.Helper()
	table, err := NewSymbolTable()
	require.NoError(t, err)
	return table
}

func TestRoundTrip(t *testing.T) {
	table := mustTable(t)

	allBytes := make([]byte, 256)
	for i := range allBytes {
		allBytes[i] = byte(i)
	}

	rng := rand.New(rand.NewSource(1))
	random := make([]byte, 100_000)
	_, err := rng.Read(random)
	require.NoError(t, err)

	tests := []struct {
		name  string
		input []byte
	}{
		{name: "empty", input: nil},
		{name: "all zero", input: make([]byte, 64)},
		{name: "all 0xFF", input: bytes.Repeat([]byte{0xFF}, 64)},
		{name: "every byte value", input: allBytes},
		{name: "random 100k", input: random},
		{name: "text", input: []byte("hello, world\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := table.Encode(tt.input)
			decoded := table.Decode(encoded)
			if len(tt.input) == 0 {
				assert.Empty(t, decoded)
				return
			}
			assert.Equal(t, tt.input, decoded)
			assert.LessOrEqual(t, len(encoded), len(tt.input)*3)
		})
	}
}

func TestDecode_KnownSequences(t *testing.T) {
	table := mustTable(t)

	tests := []struct {
		name  string
		text  []byte
		want  []byte
	}{
		{name: "empty set symbol decodes to NUL", text: []byte{0xE2, 0x88, 0x85}, want: []byte{0x00}},
		{name: "ASCII decodes to itself", text: []byte{'A'}, want: []byte{'A'}},
		{name: "C3 prefix decodes low extended range", text: []byte{0xC3, 0x80}, want: []byte{0x80}},
		{name: "C4 prefix decodes high extended range", text: []byte{0xC4, 0x80}, want: []byte{0xC0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, table.Decode(tt.text))
		})
	}
}

// Foreign bytes that match no table entry are skipped, never fatal, and the
// decoded result can never be longer than the input.
func TestDecode_Resilience(t *testing.T) {
	table := mustTable(t)

	payload := table.Encode([]byte("resilient"))

	tests := []struct {
		name string
		text []byte
		want []byte
	}{
		{
			name: "lone continuation byte",
			text: []byte{0x85},
			want: []byte{},
		},
		{
			name: "four-byte leading pattern is skipped bytewise",
			text: []byte{0xF0, 0x9F, 0xA7, 0xBE},
			want: []byte{},
		},
		{
			name: "junk between valid units",
			text: append(append([]byte{0xF5, 0xF6}, payload...), 0xFE),
			want: []byte("resilient"),
		},
		{
			name: "truncated multi-byte tail",
			text: append(table.Encode([]byte{'x'}), 0xE2, 0x88),
			want: []byte{'x'},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := table.Decode(tt.text)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), len(tt.text))
		})
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  []byte
	}{
		{name: "empty", input: nil, want: []byte{}},
		{name: "only whitespace", input: []byte(" \t\r\n"), want: []byte{}},
		{name: "mixed", input: []byte("a b\tc\nd\re"), want: []byte("abcde")},
		{name: "order preserved", input: []byte("∅ ¯\n«"), want: []byte("∅¯«")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Sanitize(got), "sanitize must be idempotent")
		})
	}
}

func TestRoundTrip_WithFormatting(t *testing.T) {
	table := mustTable(t)

	rng := rand.New(rand.NewSource(7))
	input := make([]byte, 4096)
	_, err := rng.Read(input)
	require.NoError(t, err)

	specs := []FormatSpec{
		{GroupSize: 1, GroupsPerLine: 1},
		{GroupSize: 3, GroupsPerLine: 2},
		{GroupSize: 8, GroupsPerLine: 10},
		{GroupSize: 100, GroupsPerLine: 1},
	}

	for _, spec := range specs {
		t.Run(spec.String(), func(t *testing.T) {
			formatted := spec.Format(table.Encode(input))
			decoded := table.Decode(Sanitize(formatted))
			assert.Equal(t, input, decoded)
		})
	}
}
