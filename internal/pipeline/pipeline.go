// Package pipeline wires the codec stages into whole-buffer operations: the
// input is read completely, transformed, and written to its sink in one
// pass. Buffers are owned by the stage that produced them; nothing here
// holds state between operations beyond the shared read-only symbol table.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/isseis/go-printable-binary/internal/codec"
	"github.com/isseis/go-printable-binary/internal/disasm"
)

// Pipeline executes encode, decode, and annotation operations over one
// shared symbol table.
type Pipeline struct {
	table       *codec.SymbolTable
	format      *codec.FormatSpec
	passthrough bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithFormat enables grouped output with the given spec.
func WithFormat(spec codec.FormatSpec) Option {
	return func(p *Pipeline) {
		s := spec
		p.format = &s
	}
}

// WithPassthrough duplicates the original bytes on the primary writer while
// the encoded text goes to the auxiliary writer.
func WithPassthrough() Option {
	return func(p *Pipeline) {
		p.passthrough = true
	}
}

// New creates a Pipeline over a built symbol table.
func New(table *codec.SymbolTable, opts ...Option) *Pipeline {
	p := &Pipeline{table: table}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ReadSource reads the whole input: the named file, or stdin when path is
// empty or "-".
func ReadSource(path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// Encode writes the printable form of src. Without passthrough the encoded
// text goes to out and aux is unused; with passthrough the original bytes go
// to out and the encoded text to aux, so a pipeline can monitor a binary
// stream without disturbing it.
func (p *Pipeline) Encode(src []byte, out, aux io.Writer) error {
	if p.passthrough {
		if _, err := out.Write(src); err != nil {
			return fmt.Errorf("failed to write passthrough output: %w", err)
		}
		out = aux
	}

	encoded := p.table.Encode(src)
	slog.Info("encoded input", "bytes_in", len(src), "bytes_out", len(encoded))

	if p.format != nil {
		encoded = p.format.Format(encoded)
	}
	if _, err := out.Write(encoded); err != nil {
		return fmt.Errorf("failed to write encoded output: %w", err)
	}
	return nil
}

// Decode strips whitespace from src, decodes it, and writes the recovered
// bytes to out.
func (p *Pipeline) Decode(src []byte, out io.Writer) error {
	cleaned := codec.Sanitize(src)
	decoded := p.table.Decode(cleaned)
	slog.Info("decoded input",
		"bytes_in", len(src),
		"bytes_sanitized", len(cleaned),
		"bytes_out", len(decoded))

	if _, err := out.Write(decoded); err != nil {
		return fmt.Errorf("failed to write decoded output: %w", err)
	}
	return nil
}

// AnnotateNative disassembles raw code bytes with the built-in decoder for
// the given architecture and writes the annotated listing to out.
func (p *Pipeline) AnnotateNative(code []byte, arch disasm.Arch, out io.Writer) error {
	dec, err := disasm.NewDecoder(arch)
	if err != nil {
		return err
	}
	insts := disasm.Disassemble(dec, code)
	slog.Info("disassembled input", "arch", string(arch), "bytes", len(code), "instructions", len(insts))

	listing := disasm.NewAnnotator(p.table).Listing(insts)
	if _, err := out.Write(listing); err != nil {
		return fmt.Errorf("failed to write annotated listing: %w", err)
	}
	return nil
}

// AnnotateObjdump runs objdump on the named file and writes the annotated,
// format-aware listing to out.
func (p *Pipeline) AnnotateObjdump(ctx context.Context, runner *disasm.ObjdumpRunner, file string, out io.Writer) error {
	lines, err := runner.Run(ctx, file)
	if err != nil {
		return err
	}
	slog.Info("parsed objdump output", "file", file, "lines", len(lines))

	listing := disasm.NewAnnotator(p.table).ObjdumpListing(lines)
	if _, err := out.Write(listing); err != nil {
		return fmt.Errorf("failed to write annotated listing: %w", err)
	}
	return nil
}
