package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhr3/asciicheck/ascii"
)

func TestBench(t *testing.T) {
	rows, err := Bench(context.Background(), BenchOptions{Size: 4096, Iterations: 3, BlockSize: 1000})
	require.NoError(t, err)
	require.Len(t, rows, len(ascii.Backends())+1)

	for i, b := range ascii.Backends() {
		assert.Equal(t, b.Name(), rows[i].Name)
		assert.Equal(t, b.Width(), rows[i].Width)
		assert.Positive(t, rows[i].Valid)
	}
	ref := rows[len(rows)-1]
	assert.Equal(t, "segmentio", ref.Name)
	assert.Zero(t, ref.Index)

	var out bytes.Buffer
	require.NoError(t, WriteBenchTable(&out, rows))
	assert.Contains(t, out.String(), "segmentio")
	assert.Contains(t, out.String(), "STREAM")
}

func TestBenchFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("abc"), 1000), 0o644))

	rows, err := Bench(context.Background(), BenchOptions{Path: path, Iterations: 1, BlockSize: 512})
	require.NoError(t, err)
	assert.NotEmpty(t, rows)

	_, err = Bench(context.Background(), BenchOptions{Path: path + ".missing", Iterations: 1, BlockSize: 512})
	assert.Error(t, err)
}

func TestBenchInvalid(t *testing.T) {
	_, err := Bench(context.Background(), BenchOptions{Size: 10, Iterations: 0, BlockSize: 1})
	assert.Error(t, err)
	_, err = Bench(context.Background(), BenchOptions{Size: 0, Iterations: 1, BlockSize: 1})
	assert.Error(t, err)
	_, err = Bench(context.Background(), BenchOptions{Size: 10, Iterations: 1, BlockSize: 0})
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Bench(ctx, DefaultBenchOptions())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBenchInputIsASCII(t *testing.T) {
	data, err := benchInput(BenchOptions{Size: 1000})
	require.NoError(t, err)
	assert.True(t, ascii.Valid(data))
}

func TestExecuteBench(t *testing.T) {
	t.Setenv(ConfigPathEnv, filepath.Join(t.TempDir(), "none"))

	var stdout, stderr bytes.Buffer
	code := Execute(context.Background(), []string{"bench", "--size", "1024", "--iterations", "1"}, strings.NewReader(""), &stdout, &stderr)
	assert.Equal(t, ExitASCII, code, stderr.String())
	assert.Contains(t, stdout.String(), "scalar")
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "-", formatRate(0))
	assert.Equal(t, "1.50 GB/s", formatRate(1.5e9))
	assert.Equal(t, "2.00 MB/s", formatRate(2e6))
	assert.Equal(t, "3.00 kB/s", formatRate(3e3))
}
