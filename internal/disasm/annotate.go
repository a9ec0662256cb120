package disasm

import (
	"github.com/isseis/go-printable-binary/internal/codec"
)

// mnemonicSeparator sits between the encoded instruction bytes and the
// mnemonic on every annotated line.
const mnemonicSeparator = " 🧾 "

// commentPrefix marks pass-through header lines.
const commentPrefix = "# "

// Annotator renders instruction listings with the instruction bytes encoded
// through the printable codec.
type Annotator struct {
	table *codec.SymbolTable
}

// NewAnnotator creates an Annotator over the given symbol table.
func NewAnnotator(table *codec.SymbolTable) *Annotator {
	return &Annotator{table: table}
}

// Line renders one instruction: encoded raw bytes, the separator, the
// mnemonic, and a newline.
func (a *Annotator) Line(raw []byte, mnemonic string) []byte {
	encoded := a.table.Encode(raw)
	out := make([]byte, 0, len(encoded)+len(mnemonicSeparator)+len(mnemonic)+1)
	out = append(out, encoded...)
	out = append(out, mnemonicSeparator...)
	out = append(out, mnemonic...)
	out = append(out, '\n')
	return out
}

// Comment renders a pass-through header line.
func (a *Annotator) Comment(text string) []byte {
	out := make([]byte, 0, len(commentPrefix)+len(text)+1)
	out = append(out, commentPrefix...)
	out = append(out, text...)
	out = append(out, '\n')
	return out
}

// Listing renders a native-decoder instruction stream.
func (a *Annotator) Listing(insts []Instruction) []byte {
	var out []byte
	for _, inst := range insts {
		out = append(out, a.Line(inst.Raw, inst.Text)...)
	}
	return out
}

// ObjdumpListing renders parsed objdump lines, passing header comments
// through.
func (a *Annotator) ObjdumpListing(lines []ObjdumpLine) []byte {
	var out []byte
	for _, l := range lines {
		if l.IsComment() {
			out = append(out, a.Comment(l.Comment)...)
			continue
		}
		out = append(out, a.Line(l.Bytes, l.Mnemonic)...)
	}
	return out
}
