package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/chris-regnier/moodctl/internal/editor"
	"github.com/chris-regnier/moodctl/internal/reflection"
	"github.com/chris-regnier/moodctl/internal/storage"
	"github.com/fatih/color"
)

// Process exit codes.
const (
	ExitUser    = 1
	ExitStorage = 2
	ExitEditor  = 3
)

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, editor.ErrEditor):
		return ExitEditor
	case errors.Is(err, storage.ErrStorage), errors.Is(err, reflection.ErrTransport):
		return ExitStorage
	}
	// not found, conflicts, validation and usage errors
	return ExitUser
}

// ReportError writes err to w, as {"error": ...} when --json is set.
func ReportError(w io.Writer, err error) {
	if jsonOutput {
		b, merr := json.Marshal(map[string]string{"error": err.Error()})
		if merr == nil {
			fmt.Fprintln(w, string(b))
			return
		}
	}
	red := color.New(color.FgRed, color.Bold)
	red.Fprint(w, "Error:")
	fmt.Fprintln(w, "", err)
}

// userErr marks a bad flag or argument.
func userErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", storage.ErrValidation, fmt.Sprintf(format, args...))
}
