package controller

import (
	"bytes"
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "mklinkdef.dev/pkg/mklinkdef/internal/model"
)

var (
	startedStyle   = lipgloss.NewStyle().Faint(true)
	completedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	skippedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	failedStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
)

// SimpleUI implements UI using cobra Command's Println.
type SimpleUI struct {
	cmd       *cobra.Command
	useStyles bool
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command, useStyles bool) *SimpleUI {
	return &SimpleUI{cmd: cmd, useStyles: useStyles}
}

// StepStarted announces a step.
func (s *SimpleUI) StepStarted(ctx context.Context, step m.Step, detail string) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s %s\n", s.label(startedStyle, "["+string(step)+"]"), detail)
}

// StepCompleted reports a finished step.
func (s *SimpleUI) StepCompleted(ctx context.Context, step m.Step, detail string) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s %s\n", s.label(completedStyle, "[ok "+string(step)+"]"), detail)
}

// StepSkipped reports a step that did not apply.
func (s *SimpleUI) StepSkipped(ctx context.Context, step m.Step, reason string) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s %s\n", s.label(skippedStyle, "[skip "+string(step)+"]"), reason)
}

// StepFailed reports the failing step on stderr.
func (s *SimpleUI) StepFailed(_ context.Context, step m.Step, err error) {
	s.cmd.PrintErrf("%s %v\n", s.label(failedStyle, "[failed "+string(step)+"]"), err)
}

// DisplayHeaders prints each header with the lines generated for it.
func (s *SimpleUI) DisplayHeaders(ctx context.Context, res m.Resolution, headers []m.HeaderFile) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("mode: %s\ndescriptor: %s\n", res.Mode, res.Paths.Descriptor)

	if res.Mode == m.Integrated {
		s.printf("host version: %d\n", res.Version)
	}

	s.printf("\n%s", renderHeaderTable(res, headers))

	return nil
}

func renderHeaderTable(res m.Resolution, headers []m.HeaderFile) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Header", "Class", "Link"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	for _, h := range headers {
		table.Append([]string{h.Name, h.QualifiedClassName(), h.LinkLine(res.Mode)})
	}

	table.SetFooter([]string{fmt.Sprintf("Total Headers %d", len(headers)), "", ""})
	table.Render()

	return tableBuffer.String()
}

// DisplayDiff prints a unified diff, or a note when there is none.
func (s *SimpleUI) DisplayDiff(ctx context.Context, path m.Path, diff string) {
	if err := ctx.Err(); err != nil {
		return
	}

	if diff == "" {
		s.printf("%s is up to date\n", path)
		return
	}

	s.printf("%s", diff)
}

func (s *SimpleUI) label(style lipgloss.Style, text string) string {
	if !s.useStyles {
		return text
	}

	return style.Render(text)
}

func (s *SimpleUI) printf(format string, args ...any) {
	s.cmd.Printf(format, args...)
}
