package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bvisness/wasm-read/internal/config"
	"github.com/bvisness/wasm-read/internal/render"
	"github.com/bvisness/wasm-read/utils"
	"github.com/bvisness/wasm-read/wasmread"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

func main() {
	var rootCmd *cobra.Command
	rootCmd = &cobra.Command{
		Use:   "wasm-read <file>",
		Short: "Print the types, imports, functions and exports of a wasm module.",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) < 1 {
				rootCmd.Usage()
				os.Exit(1)
			}
			filename := args[0]

			cfg, err := config.Load(utils.Must1(cmd.Flags().GetString("config")), cmd.Flags())
			if err != nil {
				exitWithError("%v", err)
			}
			if utils.Must1(cmd.Flags().GetBool("verbose")) {
				cfg.LogLevel = "debug"
			}
			log := newLogger(cfg.LogLevel)
			defer log.Sync()

			format, err := render.ParseFormat(cfg.Format)
			if err != nil {
				exitWithError("%v", err)
			}

			var wasm []byte
			if filename == "-" {
				wasm, err = io.ReadAll(os.Stdin)
				if err != nil {
					exitWithError("could not read stdin: %v", err)
				}
			} else {
				wasm, err = os.ReadFile(filename)
				if err != nil {
					if err, ok := err.(*os.PathError); ok {
						exitWithError("could not open file %s: %v", err.Path, err.Err)
					}
					exitWithError("%v", err)
				}
			}
			log.Debug("read module", zap.String("file", filename), zap.Int("bytes", len(wasm)))

			m, err := wasmread.Decode(wasm,
				wasmread.WithLogger(log),
				wasmread.WithStrictUTF8(cfg.StrictUTF8),
				wasmread.WithMaxSize(cfg.MaxSize),
			)
			if err != nil {
				exitWithError("%v", err)
			}

			if err := writeOutput(cfg, render.FromModule(m), format); err != nil {
				exitWithError("%v", err)
			}
		},
	}
	rootCmd.Flags().StringP("out", "o", "-", "The file to write output to. Defaults to stdout.")
	rootCmd.Flags().StringP("format", "f", "json", "Output format: json or yaml.")
	rootCmd.Flags().String("indent", "auto", "Indent output: auto (when writing to a terminal), always or never.")
	rootCmd.Flags().Bool("strict-utf8", false, "Fail on malformed UTF-8 in names instead of substituting U+FFFD.")
	rootCmd.Flags().Int("max-size", 0, "Reject modules larger than this many bytes. 0 means no limit.")
	rootCmd.Flags().String("log-level", "info", "Log level: debug, info, warn or error.")
	rootCmd.Flags().String("config", "", "Path to a config file.")
	rootCmd.Flags().BoolP("verbose", "v", false, "Log each section as it is decoded.")
	utils.Must(rootCmd.Execute())
}

// writeOutput writes doc to cfg.Out. An output file is always closed before
// writeOutput returns.
func writeOutput(cfg *config.Config, doc render.Document, format render.Format) error {
	if cfg.Out == "-" {
		indent := cfg.Indent == "always"
		if cfg.Indent == "auto" {
			indent = term.IsTerminal(int(os.Stdout.Fd()))
		}
		if err := render.Write(os.Stdout, doc, format, indent); err != nil {
			return fmt.Errorf("could not write output: %w", err)
		}
		return nil
	}

	f, err := os.Create(cfg.Out)
	if err != nil {
		if err, ok := err.(*os.PathError); ok {
			return fmt.Errorf("could not open output file %s: %v", err.Path, err.Err)
		}
		return err
	}
	werr := render.Write(f, doc, format, cfg.Indent == "always")
	cerr := f.Close()
	if werr != nil {
		return fmt.Errorf("could not write output: %w", werr)
	}
	if cerr != nil {
		return fmt.Errorf("could not close output file %s: %w", cfg.Out, cerr)
	}
	return nil
}

func newLogger(level string) *zap.Logger {
	var log *zap.Logger
	var err error
	if level == "debug" {
		log, err = zap.NewDevelopment()
	} else {
		zcfg := zap.NewProductionConfig()
		if lvl, perr := zap.ParseAtomicLevel(utils.Or(level, "info")); perr == nil {
			zcfg.Level = lvl
		}
		log, err = zcfg.Build()
	}
	if err != nil {
		return zap.NewNop()
	}
	return log
}

func exitWithError(msg string, args ...any) {
	msg = fmt.Sprintf(msg, args...)
	fmt.Fprintf(os.Stderr, "ERROR: %s\n", msg)
	os.Exit(1)
}
