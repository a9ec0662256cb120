package pipeline

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isseis/go-printable-binary/internal/codec"
	"github.com/isseis/go-printable-binary/internal/disasm"
)

func mustTable(t *testing.T) *codec.SymbolTable {
	t.Helper()
	table, err := codec.NewSymbolTable()
	require.NoError(t, err)
	return table
}

func TestPipeline_EncodeDecode(t *testing.T) {
	table := mustTable(t)
	input := []byte{0x00, 'A', 0x80, 0xC0, 0xFF}

	var encoded bytes.Buffer
	require.NoError(t, New(table).Encode(input, &encoded, nil))

	var decoded bytes.Buffer
	require.NoError(t, New(table).Decode(encoded.Bytes(), &decoded))

	assert.Equal(t, input, decoded.Bytes())
}

func TestPipeline_Encode_Passthrough(t *testing.T) {
	table := mustTable(t)
	input := []byte("raw bytes")

	var out, aux bytes.Buffer
	p := New(table, WithPassthrough())
	require.NoError(t, p.Encode(input, &out, &aux))

	assert.Equal(t, input, out.Bytes(), "original bytes pass through unchanged")
	assert.Equal(t, table.Encode(input), aux.Bytes(), "encoded copy goes to the auxiliary stream")
}

func TestPipeline_Encode_Formatted(t *testing.T) {
	table := mustTable(t)
	input := bytes.Repeat([]byte{'a'}, 20)

	var out bytes.Buffer
	p := New(table, WithFormat(codec.FormatSpec{GroupSize: 8, GroupsPerLine: 10}))
	require.NoError(t, p.Encode(input, &out, nil))

	assert.Equal(t, "aaaaaaaa aaaaaaaa aaaa", out.String())

	var decoded bytes.Buffer
	require.NoError(t, New(table).Decode(out.Bytes(), &decoded))
	assert.Equal(t, input, decoded.Bytes())
}

func TestPipeline_Decode_IgnoresWhitespace(t *testing.T) {
	table := mustTable(t)

	var out bytes.Buffer
	require.NoError(t, New(table).Decode([]byte(" A\tB\nC\r"), &out))
	assert.Equal(t, "ABC", out.String())
}

func TestPipeline_AnnotateNative(t *testing.T) {
	table := mustTable(t)

	var out bytes.Buffer
	p := New(table)
	require.NoError(t, p.AnnotateNative([]byte{0x90, 0xC3}, disasm.ArchX64, &out))

	listing := out.String()
	assert.Contains(t, listing, " 🧾 nop\n")
	assert.Contains(t, listing, " 🧾 ret")
}

func TestPipeline_AnnotateNative_UnknownArch(t *testing.T) {
	table := mustTable(t)

	var out bytes.Buffer
	err := New(table).AnnotateNative([]byte{0x90}, disasm.Arch("mips"), &out)
	assert.ErrorIs(t, err, disasm.ErrUnknownArch)
	assert.Zero(t, out.Len())
}
