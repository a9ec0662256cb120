// Package main provides the entry point for the printable-binary tool. It
// handles command-line arguments and configuration loading, builds the
// symbol table, and runs the requested encode, decode, or annotation
// operation over the whole input buffer.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/isseis/go-printable-binary/internal/codec"
	"github.com/isseis/go-printable-binary/internal/config"
	"github.com/isseis/go-printable-binary/internal/disasm"
	"github.com/isseis/go-printable-binary/internal/logging"
	"github.com/isseis/go-printable-binary/internal/pipeline"
	"github.com/isseis/go-printable-binary/internal/terminal"
)

var (
	decodeMode  = flag.Bool("decode", false, "decode mode (default is encode mode)")
	passthrough = flag.Bool("passthrough", false, "pass input to stdout unchanged, send encoded text to stderr")
	formatSpec  = flag.String("format", "", "group encoded output, e.g. 8x10 (8 characters per group, 10 groups per line); \"default\" uses the configured grouping")
	asmMode     = flag.Bool("asm", false, "annotate machine instructions using the built-in disassembler (works on any data)")
	smartAsm    = flag.Bool("smart-asm", false, "format-aware instruction annotation driven by objdump (requires a file)")
	archName    = flag.String("arch", "", "architecture for -asm: x64, x32, arm64, arm")
	configPath  = flag.String("config", "", "path to TOML config file with tool defaults")
	logLevel    = flag.String("log-level", "", "log level (debug, info, warn, error)")
	quiet       = flag.Bool("quiet", false, "only log errors")
	noColor     = flag.Bool("no-color", false, "disable colored diagnostics")
)

func usage() {
	w := flag.CommandLine.Output()
	fmt.Fprintf(w, "printable-binary - encode binary data as printable UTF-8 and decode it back\n\n")
	fmt.Fprintf(w, "Usage: %s [options] [file]\n\n", os.Args[0])
	fmt.Fprintf(w, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(w, `
If no file is specified, input is read from stdin. Output is written to
stdout, unless -passthrough is used.

With -passthrough the original bytes pass unchanged to stdout and the
encoded representation goes to stderr, so the tool can sit in a pipeline
and monitor a binary stream.

Examples:
  %[1]s binary_file            # encode binary to printable UTF-8
  %[1]s -decode encoded_file   # decode printable UTF-8 to binary
  %[1]s -format 4x10 file      # encode with grouped output
  %[1]s -asm executable        # annotated disassembly of raw bytes
  %[1]s -smart-asm binary      # format-aware disassembly via objdump
  %[1]s -passthrough file | t  # monitor a binary stream
`, os.Args[0])
}

func main() {
	runID := logging.GenerateRunID()

	if err := run(runID); err != nil {
		if preExecErr, ok := err.(*logging.PreExecutionError); ok {
			logging.HandlePreExecutionError(preExecErr)
		} else {
			logging.HandlePreExecutionError(&logging.PreExecutionError{
				Type:    logging.ErrorTypeInvalidUsage,
				Message: err.Error(),
				RunID:   runID,
			})
		}
		os.Exit(1)
	}
}

func run(runID string) error {
	flag.Usage = usage
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration before logging so the configured level can apply.
	// Config failures are reported through the pre-execution path, which
	// does not need a configured logger.
	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.NewLoader().Load(*configPath)
		if err != nil {
			return &logging.PreExecutionError{
				Type:      logging.ErrorTypeConfigParsing,
				Message:   "failed to load config",
				Component: "config",
				RunID:     runID,
				Err:       err,
			}
		}
		cfg = loaded
	}

	detector := terminal.NewDetector(terminal.DetectorOptions{DisableColor: *noColor})

	level := cfg.Log.Level
	if *logLevel != "" {
		level = *logLevel
	}
	if *quiet {
		level = "error"
	}
	if err := logging.Setup(logging.SetupOptions{
		Level:       level,
		Interactive: detector.UseColor(),
		RunID:       runID,
	}); err != nil {
		return &logging.PreExecutionError{
			Type:      logging.ErrorTypeLogSetup,
			Message:   "failed to set up logger",
			Component: "logging",
			RunID:     runID,
			Err:       err,
		}
	}

	if *asmMode && *smartAsm {
		return &logging.PreExecutionError{
			Type:      logging.ErrorTypeInvalidUsage,
			Message:   "cannot use both -asm and -smart-asm",
			Component: "cli",
			RunID:     runID,
		}
	}

	inputFile := flag.Arg(0)
	if inputFile == "" && detector.IsInputTerminal() {
		// Waiting on an interactive terminal for binary input helps nobody.
		usage()
		return nil
	}

	table, err := codec.NewSymbolTable()
	if err != nil {
		return &logging.PreExecutionError{
			Type:      logging.ErrorTypeTableBuild,
			Message:   "symbol table failed its integrity checks",
			Component: "codec",
			RunID:     runID,
			Err:       err,
		}
	}

	opts, err := pipelineOptions(cfg, runID)
	if err != nil {
		return err
	}
	p := pipeline.New(table, opts...)

	input, err := pipeline.ReadSource(inputFile)
	if err != nil {
		return &logging.PreExecutionError{
			Type:      logging.ErrorTypeFileAccess,
			Message:   "failed to read input",
			Component: "input",
			RunID:     runID,
			Err:       err,
		}
	}

	if *decodeMode {
		if *passthrough {
			slog.Warn("-passthrough is ignored in decode mode")
		}
		return p.Decode(input, os.Stdout)
	}

	if *smartAsm {
		return runSmartAsm(ctx, p, input, inputFile, runID)
	}
	if *asmMode {
		arch, err := resolveArch(cfg, runID)
		if err != nil {
			return err
		}
		out, err := listingWriter(input)
		if err != nil {
			return err
		}
		return p.AnnotateNative(input, arch, out)
	}

	return p.Encode(input, os.Stdout, os.Stderr)
}

// pipelineOptions translates flags and config into pipeline options.
func pipelineOptions(cfg *config.Config, runID string) ([]pipeline.Option, error) {
	var opts []pipeline.Option
	if *passthrough {
		opts = append(opts, pipeline.WithPassthrough())
	}

	switch *formatSpec {
	case "":
	case "default":
		opts = append(opts, pipeline.WithFormat(cfg.FormatSpec()))
	default:
		spec, err := codec.ParseFormatSpec(*formatSpec)
		if err != nil {
			return nil, &logging.PreExecutionError{
				Type:      logging.ErrorTypeInvalidUsage,
				Message:   "invalid -format value",
				Component: "cli",
				RunID:     runID,
				Err:       err,
			}
		}
		opts = append(opts, pipeline.WithFormat(spec))
	}
	return opts, nil
}

// resolveArch picks the -asm architecture: flag first, then config.
func resolveArch(cfg *config.Config, runID string) (disasm.Arch, error) {
	name := cfg.Asm.Arch
	if *archName != "" {
		name = *archName
	}
	arch, err := disasm.ParseArch(name)
	if err != nil {
		return "", &logging.PreExecutionError{
			Type:      logging.ErrorTypeInvalidUsage,
			Message:   "invalid -arch value",
			Component: "cli",
			RunID:     runID,
			Err:       err,
		}
	}
	return arch, nil
}

// runSmartAsm drives the objdump-based, format-aware annotation mode. It
// needs a real file (objdump reads it directly) and objdump on PATH; both
// are hard requirements of this mode, not degradations.
func runSmartAsm(ctx context.Context, p *pipeline.Pipeline, input []byte, inputFile, runID string) error {
	if inputFile == "" || inputFile == "-" {
		return &logging.PreExecutionError{
			Type:      logging.ErrorTypeInvalidUsage,
			Message:   "-smart-asm requires a file input",
			Component: "cli",
			RunID:     runID,
		}
	}

	runner, err := disasm.NewObjdumpRunner()
	if err != nil {
		return &logging.PreExecutionError{
			Type:      logging.ErrorTypeToolMissing,
			Message:   "-smart-asm requires objdump",
			Component: "disasm",
			RunID:     runID,
			Err:       err,
		}
	}

	out, err := listingWriter(input)
	if err != nil {
		return err
	}
	return p.AnnotateObjdump(ctx, runner, inputFile, out)
}

// listingWriter returns where an annotated listing belongs: stdout normally,
// stderr in passthrough mode after the raw bytes have gone to stdout.
func listingWriter(input []byte) (*os.File, error) {
	if !*passthrough {
		return os.Stdout, nil
	}
	if _, err := os.Stdout.Write(input); err != nil {
		return nil, fmt.Errorf("failed to write passthrough output: %w", err)
	}
	return os.Stderr, nil
}
