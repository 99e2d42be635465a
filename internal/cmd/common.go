package cmd

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// readSource reads a named file, or stdin when the name is "-".
func readSource(cmd *cobra.Command, fileName string) ([]byte, error) {
	if fileName == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		return data, errors.Wrap(err, "failed to read from stdin")
	}

	f, err := os.Open(expandHome(fileName))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file %q", fileName)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	return data, errors.Wrapf(err, "failed to read from file %q", fileName)
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// safeMode resolves the --unsafe flag against the configuration.
func safeMode(unsafe bool) bool {
	return cfg.Safe && !unsafe
}
