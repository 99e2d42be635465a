package cmd

import (
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type program struct {
	*tea.Program
	out io.Writer
}

// Run refuses to start when the output is a file or a pipe; the editor
// draws in the alternate screen and would only write escape codes there.
func (p *program) Run() error {
	if f, ok := p.out.(*os.File); ok && !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return errors.New("the editor needs a terminal")
	}
	_, err := p.Program.Run()
	return errors.Wrap(err, "failed to run editor")
}

func newProgram(cmd *cobra.Command, model tea.Model) *program {
	out := cmd.OutOrStdout()
	return &program{
		Program: tea.NewProgram(
			model,
			tea.WithOutput(out),
			tea.WithInput(cmd.InOrStdin()),
			tea.WithAltScreen(),
			tea.WithMouseCellMotion(),
		),
		out: out,
	}
}
