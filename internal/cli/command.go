package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewCommand builds the asciicheck command tree. A check stores its exit
// code in *code; other commands leave it alone.
func NewCommand(stdin io.Reader, stdout, stderr io.Writer, code *int) *cobra.Command {
	cfg := DefaultConfig()
	var color string

	root := &cobra.Command{
		Use:   "asciicheck [flags] [path...]",
		Short: "Report whether files contain only ASCII bytes",
		Long: `asciicheck scans each input for the first byte above 0x7F.

With no paths, or a single "-", standard input is checked. Files ending in
.lz4 are decompressed on the fly.

Exit status is 0 if every input is ASCII, 1 if any input is not,
and 2 if an input could not be checked.

Other commands, given as the first argument:
  backends   list the scanning backends
  bench      measure the throughput of every backend`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := ParseColorMode(color)
			if err != nil {
				return err
			}
			cfg.Color = mode
			cfg.Paths = args
			if err := cfg.Validate(); err != nil {
				return err
			}
			*code = Run(cmd.Context(), cfg, stdin, stdout, stderr)
			return nil
		},
	}

	f := root.Flags()
	f.BoolVarP(&cfg.Recursive, "recursive", "r", false, "descend into directories")
	f.BoolVar(&cfg.Hidden, "hidden", false, "include hidden files and directories")
	f.BoolVar(&cfg.NoIgnore, "no-ignore", false, "do not honour .gitignore files")
	f.IntVarP(&cfg.Workers, "workers", "j", 0, "number of parallel workers (0 = 2 per CPU)")
	f.BoolVar(&cfg.JSONOutput, "json", false, "write JSON Lines instead of text")
	f.StringVar(&color, "color", ColorAuto.String(), "colorize output: auto, always or never")
	f.StringVar(&cfg.Backend, "backend", "", "scan with the named backend (see 'asciicheck backends')")
	f.IntVar(&cfg.BlockSize, "block-size", cfg.BlockSize, "read size for streamed input")
	f.Int64Var(&cfg.MmapThreshold, "mmap-threshold", cfg.MmapThreshold, "map files at least this large instead of reading them")
	f.BoolVarP(&cfg.Quiet, "quiet", "q", false, "print nothing, only set the exit status")
	f.BoolVarP(&cfg.FilesOnly, "files-with-non-ascii", "l", false, "print only the names of non-ASCII inputs")
	f.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")
	f.BoolVarP(&cfg.Verbose, "verbose", "v", false, "shorthand for --log-level=debug")

	root.AddCommand(newBackendsCommand(stdout), newBenchCommand(stdout))
	return root
}

func newBackendsCommand(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "List the available scanning backends",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return WriteBackendsTable(stdout)
		},
	}
}

func newBenchCommand(stdout io.Writer) *cobra.Command {
	opts := DefaultBenchOptions()

	cmd := &cobra.Command{
		Use:   "bench [file]",
		Short: "Measure the throughput of every backend",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Path = args[0]
			}
			rows, err := Bench(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return WriteBenchTable(stdout, rows)
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.Size, "size", opts.Size, "bytes of generated input")
	f.IntVar(&opts.Iterations, "iterations", opts.Iterations, "passes per measurement")
	f.IntVar(&opts.BlockSize, "block-size", opts.BlockSize, "read size for the stream measurement")
	return cmd
}

// Execute runs asciicheck with args (without the program name) and returns
// the exit code. Subcommands are recognised only as the first argument;
// anywhere else "bench" or "backends" is a path. Checks get the config
// file's arguments in front of args.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	code := ExitASCII
	root := NewCommand(stdin, stdout, stderr, &code)

	if len(args) == 0 || !isSubcommand(root, args[0]) {
		cfgArgs, err := LoadConfigArgs()
		if err != nil {
			fmt.Fprintf(stderr, "asciicheck: %v\n", err)
			return ExitError
		}
		args = append(cfgArgs, args...)
		// cobra would otherwise route the first non-flag argument
		root.RemoveCommand(root.Commands()...)
	}
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "asciicheck: %v\n", err)
		if errors.Is(err, ErrUnknownBackend) {
			fmt.Fprintln(stderr, "run 'asciicheck backends' to list them")
		}
		return ExitError
	}
	return code
}

func isSubcommand(root *cobra.Command, name string) bool {
	if name == "help" {
		return true
	}
	for _, c := range root.Commands() {
		if c.Name() == name || c.HasAlias(name) {
			return true
		}
	}
	return false
}
