package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhr3/asciicheck/ascii"
)

func TestParseColorMode(t *testing.T) {
	for _, m := range []ColorMode{ColorAuto, ColorAlways, ColorNever} {
		got, err := ParseColorMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := ParseColorMode("sometimes")
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"negative workers", func(c *Config) { c.Workers = -1 }, true},
		{"zero block size", func(c *Config) { c.BlockSize = 0 }, true},
		{"negative mmap threshold", func(c *Config) { c.MmapThreshold = -1 }, true},
		{"quiet and files-only", func(c *Config) { c.Quiet, c.FilesOnly = true, true }, true},
		{"quiet and json", func(c *Config) { c.Quiet, c.JSONOutput = true, true }, true},
		{"known backend", func(c *Config) { c.Backend = "scalar" }, false},
		{"unknown backend", func(c *Config) { c.Backend = "neon" }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"debug log level", func(c *Config) { c.LogLevel = "debug" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	cfg := DefaultConfig()
	cfg.Backend = "neon"
	assert.ErrorIs(t, cfg.Validate(), ErrUnknownBackend)
}

func TestConfigBackend(t *testing.T) {
	cfg := DefaultConfig()
	assert.Same(t, ascii.Default(), cfg.backend())

	cfg.Backend = "scalar"
	assert.Equal(t, "scalar", cfg.backend().Name())
}

func TestConfigStdin(t *testing.T) {
	assert.True(t, (&Config{}).stdin())
	assert.True(t, (&Config{Paths: []string{"-"}}).stdin())
	assert.False(t, (&Config{Paths: []string{"a"}}).stdin())
	assert.False(t, (&Config{Paths: []string{"-", "a"}}).stdin())
}

func TestLoadConfigArgs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte("# defaults\n--hidden\n\n  --workers=3  \n"), 0o644))
	t.Setenv(ConfigPathEnv, path)

	args, err := LoadConfigArgs()
	require.NoError(t, err)
	assert.Equal(t, []string{"--hidden", "--workers=3"}, args)

	t.Setenv(ConfigPathEnv, filepath.Join(t.TempDir(), "missing"))
	args, err = LoadConfigArgs()
	require.NoError(t, err)
	assert.Nil(t, args)
}

func TestLoadConfigArgsUnreadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	// longer than bufio.Scanner's default token limit
	require.NoError(t, os.WriteFile(path, []byte("--"+strings.Repeat("x", 70<<10)+"\n"), 0o644))
	t.Setenv(ConfigPathEnv, path)

	_, err := LoadConfigArgs()
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)

	var stdout, stderr bytes.Buffer
	code := Execute(context.Background(), []string{"-"}, strings.NewReader(""), &stdout, &stderr)
	assert.Equal(t, ExitError, code)
	assert.Contains(t, stderr.String(), "config")

	// a directory cannot be read as a config file either
	t.Setenv(ConfigPathEnv, t.TempDir())
	_, err = LoadConfigArgs()
	assert.Error(t, err)
}

type fixture struct {
	dir   string
	clean string
	dirty string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	t.Setenv(ConfigPathEnv, filepath.Join(t.TempDir(), "none"))

	dir := t.TempDir()
	f := fixture{
		dir:   dir,
		clean: filepath.Join(dir, "a.txt"),
		dirty: filepath.Join(dir, "b.txt"),
	}
	require.NoError(t, os.WriteFile(f.clean, []byte("plain ascii\n"), 0o644))
	require.NoError(t, os.WriteFile(f.dirty, []byte("caf\xc3\xa9\n"), 0o644))
	return f
}

func execute(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := Execute(context.Background(), append([]string{"--color=never"}, args...), strings.NewReader(""), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestExecuteFiles(t *testing.T) {
	f := newFixture(t)

	code, out, _ := execute(f.clean)
	assert.Equal(t, ExitASCII, code)
	assert.Equal(t, f.clean+": ascii\n", out)

	code, out, _ = execute(f.clean, f.dirty)
	assert.Equal(t, ExitNonASCII, code)
	assert.Equal(t, f.clean+": ascii\n"+f.dirty+": non-ascii at offset 3\n", out)
}

func TestExecuteEveryBackend(t *testing.T) {
	f := newFixture(t)
	for _, b := range ascii.Backends() {
		code, out, _ := execute("--backend", b.Name(), f.dirty)
		assert.Equal(t, ExitNonASCII, code, b.Name())
		assert.Contains(t, out, "offset 3", b.Name())
	}
}

func TestExecuteErrors(t *testing.T) {
	f := newFixture(t)

	code, out, errOut := execute(filepath.Join(f.dir, "missing.txt"))
	assert.Equal(t, ExitError, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "walk error")

	code, _, errOut = execute(f.dir)
	assert.Equal(t, ExitError, code, "directories need -r")
	assert.Contains(t, errOut, "is a directory")

	code, _, errOut = execute("--backend", "nope", f.clean)
	assert.Equal(t, ExitError, code)
	assert.Contains(t, errOut, "unknown backend")

	code, _, _ = execute("--block-size", "0", f.clean)
	assert.Equal(t, ExitError, code)

	code, _, _ = execute("--no-such-flag", f.clean)
	assert.Equal(t, ExitError, code)
}

func TestExecuteRecursive(t *testing.T) {
	f := newFixture(t)
	sub := filepath.Join(f.dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "c.txt"), []byte("ok"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(f.dir, ".hidden"), []byte("\xff"), 0o644))

	code, out, _ := execute("-r", "-j", "2", f.dir)
	assert.Equal(t, ExitNonASCII, code)
	assert.Equal(t, []string{
		f.clean + ": ascii",
		f.dirty + ": non-ascii at offset 3",
		filepath.Join(sub, "c.txt") + ": ascii",
	}, strings.Split(strings.TrimSpace(out), "\n"))

	_, out, _ = execute("-r", "--hidden", f.dir)
	assert.Contains(t, out, ".hidden: non-ascii at offset 0")
}

func TestExecuteQuiet(t *testing.T) {
	f := newFixture(t)

	code, out, _ := execute("-q", f.clean, f.dirty)
	assert.Equal(t, ExitNonASCII, code)
	assert.Empty(t, out)

	code, out, _ = execute("-q", f.clean)
	assert.Equal(t, ExitASCII, code)
	assert.Empty(t, out)
}

func TestExecuteFilesOnly(t *testing.T) {
	f := newFixture(t)

	code, out, _ := execute("-l", f.clean, f.dirty)
	assert.Equal(t, ExitNonASCII, code)
	assert.Equal(t, f.dirty+"\n", out)
}

func TestExecuteJSON(t *testing.T) {
	f := newFixture(t)

	code, out, _ := execute("--json", f.clean, f.dirty)
	assert.Equal(t, ExitNonASCII, code)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)

	var first, second map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, f.clean, first["file"])
	assert.Equal(t, true, first["ascii"])
	assert.Equal(t, f.dirty, second["file"])
	assert.EqualValues(t, 3, second["offset"])
}

func TestExecuteLZ4(t *testing.T) {
	f := newFixture(t)
	path := filepath.Join(f.dir, "data.txt.lz4")

	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	_, err := zw.Write([]byte(strings.Repeat("x", 5000) + "\xe2\x84\xa2"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	code, out, _ := execute("--block-size", "1000", path)
	assert.Equal(t, ExitNonASCII, code)
	assert.Equal(t, path+": non-ascii at offset 5000\n", out)
}

func TestExecuteConfigFile(t *testing.T) {
	f := newFixture(t)
	cfgPath := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(cfgPath, []byte("--json\n"), 0o644))
	t.Setenv(ConfigPathEnv, cfgPath)

	code, out, _ := execute(f.clean)
	assert.Equal(t, ExitASCII, code)
	assert.True(t, strings.HasPrefix(out, `{"type":"result"`), out)

	// subcommands do not take the check flags
	var stdout, stderr bytes.Buffer
	code = Execute(context.Background(), []string{"backends"}, strings.NewReader(""), &stdout, &stderr)
	assert.Equal(t, ExitASCII, code, stderr.String())
}

func TestExecuteBackends(t *testing.T) {
	t.Setenv(ConfigPathEnv, filepath.Join(t.TempDir(), "none"))

	var stdout, stderr bytes.Buffer
	code := Execute(context.Background(), []string{"backends"}, strings.NewReader(""), &stdout, &stderr)
	assert.Equal(t, ExitASCII, code)
	for _, b := range ascii.Backends() {
		assert.Contains(t, stdout.String(), b.Name())
	}
	assert.Contains(t, stdout.String(), "*")
}

func TestExecuteHelp(t *testing.T) {
	t.Setenv(ConfigPathEnv, filepath.Join(t.TempDir(), "none"))

	var stdout, stderr bytes.Buffer
	code := Execute(context.Background(), []string{"--help"}, strings.NewReader(""), &stdout, &stderr)
	assert.Equal(t, ExitASCII, code)
	assert.Contains(t, stdout.String(), "asciicheck")
}

func TestRunInterrupted(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := DefaultConfig()
	cfg.Color = ColorNever
	cfg.Paths = []string{f.clean}
	require.NoError(t, cfg.Validate())

	var stdout, stderr bytes.Buffer
	assert.Equal(t, ExitError, Run(ctx, cfg, strings.NewReader(""), &stdout, &stderr))
}

func TestExecuteStdin(t *testing.T) {
	t.Setenv(ConfigPathEnv, filepath.Join(t.TempDir(), "none"))

	for _, args := range [][]string{{"--color=never"}, {"--color=never", "-"}} {
		var stdout, stderr bytes.Buffer
		code := Execute(context.Background(), args, strings.NewReader("abc\xff"), &stdout, &stderr)
		assert.Equal(t, ExitNonASCII, code, stderr.String())
		assert.Equal(t, "(standard input): non-ascii at offset 3\n", stdout.String())
	}
}

// stalledReader never returns until released, like an idle terminal.
type stalledReader struct{ release chan struct{} }

func (r stalledReader) Read([]byte) (int, error) {
	<-r.release
	return 0, io.EOF
}

func TestRunStdinCancelled(t *testing.T) {
	stdin := stalledReader{release: make(chan struct{})}
	t.Cleanup(func() { close(stdin.release) })

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	cfg := DefaultConfig()
	cfg.Color = ColorNever
	require.NoError(t, cfg.Validate())

	var stdout, stderr bytes.Buffer
	assert.Equal(t, ExitError, Run(ctx, cfg, stdin, &stdout, &stderr))
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "interrupted")
}

func TestExecutePathNamedLikeSubcommand(t *testing.T) {
	f := newFixture(t)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(f.dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	require.NoError(t, os.WriteFile("bench", []byte("\xff"), 0o644))
	require.NoError(t, os.WriteFile("backends", []byte("fine"), 0o644))

	code, out, _ := execute("bench", "backends")
	assert.Equal(t, ExitNonASCII, code)
	assert.Equal(t, "bench: non-ascii at offset 0\nbackends: ascii\n", out)

	var stdout, stderr bytes.Buffer
	code = Execute(context.Background(), []string{"-q", "bench"}, strings.NewReader(""), &stdout, &stderr)
	assert.Equal(t, ExitNonASCII, code, stderr.String())
	assert.Empty(t, stdout.String())
}
