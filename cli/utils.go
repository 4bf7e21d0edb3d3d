package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/nasa-ammos/vector-convert/logging"
)

// samePath returns true if abs(path1) and abs(path2) are the same.
func samePath(path1, path2 string) (bool, error) {
	abs1, err := filepath.Abs(path1)
	if err != nil {
		return false, err
	}
	abs2, err := filepath.Abs(path2)
	if err != nil {
		return false, err
	}
	return abs1 == abs2, nil
}

// checkNotInput fails if output would overwrite one of inputs.
func checkNotInput(output string, inputs ...string) error {
	for _, input := range inputs {
		same, err := samePath(output, input)
		if err != nil {
			return err
		}
		if same {
			return errors.Errorf("output %q would overwrite an input file", output)
		}
	}
	return nil
}

// printf prints a message with a newline at the end.
func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}

// newLogger returns a logger writing to the app's error writer at INFO, or DEBUG with --debug.
func newLogger(c *cli.Context) logging.Logger {
	logger := logging.NewLogger(c.App.Name, c.App.ErrWriter)
	if c.Bool(debugFlag) {
		logger.SetLevel(logging.DEBUG)
	}
	return logger
}
