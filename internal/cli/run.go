package cli

import (
	"context"
	"io"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/mhr3/asciicheck/internal/input"
	"github.com/mhr3/asciicheck/internal/output"
	"github.com/mhr3/asciicheck/internal/scheduler"
	"github.com/mhr3/asciicheck/internal/walker"
)

// Exit codes.
const (
	ExitASCII    = 0 // every input is ASCII
	ExitNonASCII = 1 // at least one input holds a non-ASCII byte
	ExitError    = 2 // an input could not be checked
)

// Run checks the inputs named by cfg and writes the report to stdout. stdin
// is read when cfg names no paths. cfg must have passed Validate.
func Run(ctx context.Context, cfg Config, stdin io.Reader, stdout, stderr io.Writer) int {
	logger := log.NewWithOptions(stderr, log.Options{
		Level:  cfg.level(),
		Prefix: "asciicheck",
	})

	b := cfg.backend()
	logger.Debug("backend", "name", b.Name(), "width", b.Width(), "strategy", b.Strategy(), "accelerated", b.Accelerated())

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	ow := output.NewOrderedWriter(stdout, newFormatter(cfg, stdout))

	var walkErrs atomic.Int64
	var walkDone chan struct{}
	var results <-chan output.Result
	if cfg.stdin() {
		results = checkStdin(runCtx, cfg, stdin)
	} else {
		fileCh, errCh := walker.Walk(runCtx, cfg.Paths, walker.WalkOptions{
			Recursive: cfg.Recursive,
			NoIgnore:  cfg.NoIgnore,
			Hidden:    cfg.Hidden,
		})

		walkDone = make(chan struct{})
		go func() {
			defer close(walkDone)
			for err := range errCh {
				walkErrs.Add(1)
				logger.Warn("walk error", "err", err)
			}
		}()

		reader := input.NewLZ4Reader(input.NewAdaptiveReader(cfg.MmapThreshold))
		sched := scheduler.New(cfg.Workers, b, reader, cfg.BlockSize)
		results = sched.Run(runCtx, fileCh)
	}

	sum, err := ow.WriteOrdered(results, func(r output.Result) {
		switch {
		case r.Err != nil:
			logger.Warn("check failed", "path", r.Name(), "err", r.Err)
		case r.Index >= 0:
			logger.Debug("non-ascii", "path", r.Name(), "offset", r.Index)
			if cfg.Quiet {
				// the exit status is settled
				cancel()
			}
		default:
			logger.Debug("ascii", "path", r.Name(), "size", r.Size)
		}
	})
	if walkDone != nil {
		<-walkDone
	}
	if err != nil {
		logger.Error("write failed", "err", err)
		return ExitError
	}
	logger.Debug("done", "files", sum.Files, "non_ascii", sum.NonASCII, "errors", sum.Errors)

	switch {
	case cfg.Quiet && sum.NonASCII > 0:
		return ExitNonASCII
	case ctx.Err() != nil:
		logger.Error("interrupted", "err", ctx.Err())
		return ExitError
	case sum.Errors > 0 || walkErrs.Load() > 0:
		return ExitError
	case sum.NonASCII > 0:
		return ExitNonASCII
	}
	return ExitASCII
}

// checkStdin delivers the stdin result, or nothing once ctx is done. A read
// blocked on a terminal or a stalled pipe is abandoned, not interrupted.
func checkStdin(ctx context.Context, cfg Config, stdin io.Reader) <-chan output.Result {
	done := make(chan output.Result, 1)
	go func() {
		r := scheduler.New(1, cfg.backend(), input.NewStdinReader(stdin), cfg.BlockSize).Check("")
		r.Seq = 1
		done <- r
	}()

	ch := make(chan output.Result, 1)
	go func() {
		defer close(ch)
		select {
		case r := <-done:
			ch <- r
		case <-ctx.Done():
		}
	}()
	return ch
}

func newFormatter(cfg Config, stdout io.Writer) output.Formatter {
	switch {
	case cfg.Quiet:
		return nil
	case cfg.JSONOutput:
		return output.NewJSONFormatter()
	}

	useColor := false
	switch cfg.Color {
	case ColorAlways:
		useColor = true
	case ColorNever:
		useColor = false
	case ColorAuto:
		useColor = output.StdoutIsTerminal()
	}

	styles := output.NoStyles()
	if useColor {
		styles = output.NewStyles(output.ColorRenderer(stdout))
	}
	return output.NewTextFormatter(styles, cfg.FilesOnly)
}
