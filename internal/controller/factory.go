package controller

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// Output formats.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatRustc = "rustc"
)

// Options selects and configures a UI.
type Options struct {
	Format      string
	Interactive bool
	Color       bool
	Quiet       bool
}

// NewUI creates a UI for the requested format. Interactive text output on a
// terminal gets the Bubble Tea browser; everything else is written to the
// command's output stream.
func NewUI(cmd *cobra.Command, opts Options) UI {
	switch opts.Format {
	case FormatJSON:
		return NewJSONUI(cmd.OutOrStdout())
	case FormatRustc:
		return NewRustcUI(cmd.OutOrStdout())
	}

	if opts.Interactive {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd, opts.Color, opts.Quiet)
}

// IsTTY checks if the given writer is a terminal (TTY).
// Returns false if the output is redirected to a file or pipe.
func IsTTY(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}
