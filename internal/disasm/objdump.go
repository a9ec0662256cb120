package disasm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
)

// Objdump errors.
var (
	// ErrObjdumpNotFound is returned when objdump is not installed.
	ErrObjdumpNotFound = errors.New("objdump not found in PATH")
)

// ObjdumpLine is one parsed line of objdump -d output: either an instruction
// (Bytes and Mnemonic set) or a section/file header passed through as a
// comment (Comment set).
type ObjdumpLine struct {
	Addr     uint64
	Bytes    []byte
	Mnemonic string
	Comment  string
}

// IsComment reports whether the line is a header comment rather than an
// instruction.
func (l ObjdumpLine) IsComment() bool { return l.Comment != "" }

// ObjdumpRunner invokes objdump -d on a file and parses its output.
type ObjdumpRunner struct {
	path string
}

// NewObjdumpRunner locates objdump in PATH. The format-aware annotation mode
// treats the error as fatal; nothing else in the tool needs objdump.
func NewObjdumpRunner() (*ObjdumpRunner, error) {
	path, err := exec.LookPath("objdump")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrObjdumpNotFound, err)
	}
	return &ObjdumpRunner{path: path}, nil
}

// Run disassembles the named file and returns the parsed lines. objdump's
// own stderr is discarded; a non-zero exit is an error since the mode that
// uses this runner cannot produce output without it.
func (r *ObjdumpRunner) Run(ctx context.Context, file string) ([]ObjdumpLine, error) {
	cmd := exec.CommandContext(ctx, r.path, "-d", file)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = io.Discard

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("objdump -d %s failed: %w", file, err)
	}
	return ParseObjdump(&stdout), nil
}

// ParseObjdump extracts instruction and header lines from objdump -d text.
//
// Instruction lines have the shape "  ADDR:\tBYTE PAIRS \tMNEMONIC"; the tab
// between the byte column and the mnemonic also separates them from the
// byte-only continuation lines of long instructions, which carry no
// mnemonic and are skipped. Labels, blank lines, and anything else that
// does not fit is dropped, not reported: the collaborator's output format is
// not a contract this tool can enforce. Lines that look like instructions
// but fail to parse are counted and reported once as a warning.
func ParseObjdump(r io.Reader) []ObjdumpLine {
	var lines []ObjdumpLine
	dropped := 0

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()

		if strings.Contains(line, "Disassembly of section") || strings.Contains(line, "file format") {
			lines = append(lines, ObjdumpLine{Comment: strings.TrimSpace(line)})
			continue
		}

		addrPart, rest, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		addr, err := strconv.ParseUint(strings.TrimSpace(addrPart), 16, 64)
		if err != nil {
			// Not an instruction line (label, garbage); no warning.
			continue
		}

		fields := strings.Split(rest, "\t")
		if len(fields) < 3 {
			// Byte-only continuation of the previous instruction.
			continue
		}
		mnemonic := strings.TrimSpace(strings.Join(fields[2:], "\t"))
		if mnemonic == "" {
			continue
		}

		raw, err := hex.DecodeString(removeWhitespace(fields[1]))
		if err != nil || len(raw) == 0 {
			dropped++
			continue
		}

		lines = append(lines, ObjdumpLine{Addr: addr, Bytes: raw, Mnemonic: mnemonic})
	}
	if err := sc.Err(); err != nil {
		slog.Warn("objdump output truncated", "error", err)
	}
	if dropped > 0 {
		slog.Warn("dropped malformed objdump lines", "count", dropped)
	}
	return lines
}

func removeWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, s)
}
