// Package disasm produces instruction-annotated encodings: machine code is
// decoded one instruction at a time, each instruction's bytes are rendered
// through the printable codec, and the mnemonic is appended after a fixed
// visual separator.
//
// Decoding is either native (golang.org/x/arch, works on raw code bytes) or
// driven by external objdump output for format-aware listings of ELF files.
package disasm

import (
	"errors"
	"fmt"

	"golang.org/x/arch/arm/armasm"
	"golang.org/x/arch/arm64/arm64asm"
	"golang.org/x/arch/x86/x86asm"
)

// Arch names an instruction set the native decoder supports.
type Arch string

// Supported architectures.
const (
	ArchX64   Arch = "x64"
	ArchX32   Arch = "x32"
	ArchARM64 Arch = "arm64"
	ArchARM   Arch = "arm"
)

// DefaultArch is used when no architecture is configured.
const DefaultArch = ArchX64

// Decoder errors.
var (
	// ErrUnknownArch is returned for architecture names outside the
	// supported set.
	ErrUnknownArch = errors.New("unknown architecture")
)

// ParseArch validates an architecture name.
func ParseArch(s string) (Arch, error) {
	switch Arch(s) {
	case ArchX64, ArchX32, ArchARM64, ArchARM:
		return Arch(s), nil
	default:
		return "", fmt.Errorf("%w: %q (valid: x64, x32, arm64, arm)", ErrUnknownArch, s)
	}
}

// Instruction is one decoded machine instruction: its offset in the code
// buffer, its raw bytes, and its GNU-syntax mnemonic text.
type Instruction struct {
	Offset uint64
	Raw    []byte
	Text   string
}

// Decoder decodes machine code one instruction at a time.
type Decoder interface {
	// Decode decodes the instruction at the start of code, which sits at
	// the given offset in the overall buffer.
	Decode(code []byte, offset uint64) (Instruction, error)

	// MinStep is how many bytes to skip past an undecodable position:
	// one byte on x86, the fixed instruction width on ARM.
	MinStep() int
}

// NewDecoder returns the native decoder for the given architecture.
func NewDecoder(arch Arch) (Decoder, error) {
	switch arch {
	case ArchX64:
		return &x86Decoder{mode: 64}, nil
	case ArchX32:
		return &x86Decoder{mode: 32}, nil
	case ArchARM64:
		return &arm64Decoder{}, nil
	case ArchARM:
		return &armDecoder{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownArch, arch)
	}
}

type x86Decoder struct {
	mode int
}

func (d *x86Decoder) Decode(code []byte, offset uint64) (Instruction, error) {
	inst, err := x86asm.Decode(code, d.mode)
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{
		Offset: offset,
		Raw:    code[:inst.Len],
		Text:   x86asm.GNUSyntax(inst, offset, nil),
	}, nil
}

func (d *x86Decoder) MinStep() int { return 1 }

type arm64Decoder struct{}

func (d *arm64Decoder) Decode(code []byte, offset uint64) (Instruction, error) {
	inst, err := arm64asm.Decode(code)
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{
		Offset: offset,
		Raw:    code[:4],
		Text:   arm64asm.GNUSyntax(inst),
	}, nil
}

func (d *arm64Decoder) MinStep() int { return 4 }

type armDecoder struct{}

func (d *armDecoder) Decode(code []byte, offset uint64) (Instruction, error) {
	inst, err := armasm.Decode(code, armasm.ModeARM)
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{
		Offset: offset,
		Raw:    code[:4],
		Text:   armasm.GNUSyntax(inst),
	}, nil
}

func (d *armDecoder) MinStep() int { return 4 }

// badInstructionText marks bytes the decoder could not interpret, matching
// the objdump convention.
const badInstructionText = "(bad)"

// Disassemble walks the whole code buffer. Undecodable positions advance by
// the decoder's minimum step and are reported as "(bad)" instructions so the
// annotated listing still accounts for every input byte.
func Disassemble(d Decoder, code []byte) []Instruction {
	insts := make([]Instruction, 0, len(code)/4)
	offset := uint64(0)
	for int(offset) < len(code) {
		rest := code[offset:]
		inst, err := d.Decode(rest, offset)
		if err != nil {
			step := d.MinStep()
			if step > len(rest) {
				step = len(rest)
			}
			inst = Instruction{
				Offset: offset,
				Raw:    rest[:step],
				Text:   badInstructionText,
			}
		}
		insts = append(insts, inst)
		offset += uint64(len(inst.Raw))
	}
	return insts
}
