// Package controller provides output adapters for reporting descriptor generation.
package controller

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "mklinkdef.dev/pkg/mklinkdef/internal/model"
)

// UI defines how pipeline progress and results are shown to the user.
type UI interface {
	StepStarted(ctx context.Context, step m.Step, detail string)
	StepCompleted(ctx context.Context, step m.Step, detail string)
	StepSkipped(ctx context.Context, step m.Step, reason string)
	StepFailed(ctx context.Context, step m.Step, err error)
	DisplayHeaders(ctx context.Context, res m.Resolution, headers []m.HeaderFile) error
	DisplayDiff(ctx context.Context, path m.Path, diff string)
}

// NewUI returns the UI for cmd. Styling is enabled on terminals only.
func NewUI(cmd *cobra.Command, useStyles bool) UI {
	return NewSimpleUI(cmd, useStyles)
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}
