package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ConfigPathEnv overrides the default config file location.
const ConfigPathEnv = "ASCIICHECK_CONFIG_PATH"

// configPath is $ASCIICHECK_CONFIG_PATH, else ~/.asciicheck, else "".
func configPath() string {
	if p := os.Getenv(ConfigPathEnv); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".asciicheck")
}

// LoadConfigArgs returns the flags stored in the config file, one per line.
// Blank lines and lines starting with # are skipped. A missing file yields
// no arguments and no error.
func LoadConfigArgs() ([]string, error) {
	path := configPath()
	if path == "" {
		return nil, nil
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	defer f.Close()

	var args []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" && line[0] != '#' {
			args = append(args, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return args, nil
}
