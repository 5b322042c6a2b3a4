package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	segascii "github.com/segmentio/asm/ascii"

	"github.com/mhr3/asciicheck/ascii"
)

// BenchOptions configures the bench subcommand.
type BenchOptions struct {
	// Path, when set, is benchmarked instead of generated input.
	Path       string
	Size       int
	Iterations int
	BlockSize  int
}

// DefaultBenchOptions returns the bench defaults: 1 MiB of ASCII, 200 passes.
func DefaultBenchOptions() BenchOptions {
	return BenchOptions{
		Size:       1 << 20,
		Iterations: 200,
		BlockSize:  ascii.DefaultBlockSize,
	}
}

// BenchRow is one line of the bench report. Throughputs are in bytes per second.
type BenchRow struct {
	Name        string
	Width       int
	Strategy    string
	Accelerated bool
	Valid       float64
	Index       float64
	Stream      float64
}

// Bench measures every backend over the same input, followed by a reference
// row for github.com/segmentio/asm/ascii. Generated input is pure ASCII so
// every pass scans the full buffer.
func Bench(ctx context.Context, opts BenchOptions) ([]BenchRow, error) {
	if opts.Iterations <= 0 {
		return nil, fmt.Errorf("invalid iteration count: %d", opts.Iterations)
	}
	if opts.BlockSize <= 0 {
		return nil, fmt.Errorf("invalid block size: %d", opts.BlockSize)
	}

	data, err := benchInput(opts)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, opts.BlockSize)

	var rows []BenchRow
	for _, b := range ascii.Backends() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row := BenchRow{
			Name:        b.Name(),
			Width:       b.Width(),
			Strategy:    b.Strategy().String(),
			Accelerated: b.Accelerated(),
		}
		row.Valid = throughput(len(data), opts.Iterations, func() { b.Valid(data) })
		row.Index = throughput(len(data), opts.Iterations, func() { b.IndexNonASCII(data) })
		row.Stream = throughput(len(data), opts.Iterations, func() {
			_, _ = b.IndexReader(bytes.NewReader(data), buf)
		})
		rows = append(rows, row)
	}

	rows = append(rows, BenchRow{
		Name:        "segmentio",
		Strategy:    "reference",
		Accelerated: true,
		Valid:       throughput(len(data), opts.Iterations, func() { segascii.Valid(data) }),
	})
	return rows, nil
}

func benchInput(opts BenchOptions) ([]byte, error) {
	if opts.Path != "" {
		data, err := os.ReadFile(opts.Path)
		if err != nil {
			return nil, fmt.Errorf("read bench input: %w", err)
		}
		return data, nil
	}
	if opts.Size <= 0 {
		return nil, fmt.Errorf("invalid bench size: %d", opts.Size)
	}
	data := make([]byte, opts.Size)
	for i := range data {
		data[i] = byte(' ' + i%95)
	}
	return data, nil
}

func throughput(size, iterations int, fn func()) float64 {
	start := time.Now()
	for i := 0; i < iterations; i++ {
		fn()
	}
	elapsed := time.Since(start)
	if elapsed <= 0 {
		return 0
	}
	return float64(size) * float64(iterations) / elapsed.Seconds()
}

// WriteBenchTable renders rows as a table.
func WriteBenchTable(w io.Writer, rows []BenchRow) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("BACKEND", "WIDTH", "STRATEGY", "SIMD", "VALID", "INDEX", "STREAM")
	for _, r := range rows {
		width := "-"
		if r.Width > 0 {
			width = strconv.Itoa(r.Width)
		}
		t.Row(r.Name, width, r.Strategy, yesNo(r.Accelerated),
			formatRate(r.Valid), formatRate(r.Index), formatRate(r.Stream))
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// WriteBackendsTable lists the registered backends, marking the default.
func WriteBackendsTable(w io.Writer) error {
	def := ascii.Default()
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("BACKEND", "WIDTH", "STRATEGY", "SIMD", "DEFAULT")
	for _, b := range ascii.Backends() {
		mark := ""
		if b == def {
			mark = "*"
		}
		t.Row(b.Name(), strconv.Itoa(b.Width()), b.Strategy().String(), yesNo(b.Accelerated()), mark)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func formatRate(bps float64) string {
	if bps <= 0 {
		return "-"
	}
	switch {
	case bps >= 1e9:
		return strconv.FormatFloat(bps/1e9, 'f', 2, 64) + " GB/s"
	case bps >= 1e6:
		return strconv.FormatFloat(bps/1e6, 'f', 2, 64) + " MB/s"
	}
	return strconv.FormatFloat(bps/1e3, 'f', 2, 64) + " kB/s"
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
