package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ionut-t/previewedit/preview"
)

func renderCmd() *cobra.Command {
	var (
		unsafe   bool
		noBreaks bool
		xhtml    bool
	)

	cmd := cobra.Command{
		Use:   "render <file|->",
		Short: "Render a Markdown file to HTML the way the preview pane does",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}

			r := preview.New(preview.WithHardWraps(!noBreaks), preview.WithXHTML(xhtml))
			markup, err := r.Render(string(data), safeMode(unsafe))
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write([]byte(markup))
			return errors.Wrap(err, "failed to write result")
		},
	}

	cmd.Flags().BoolVar(&unsafe, "unsafe", false, "Keep raw HTML in the output.")
	cmd.Flags().BoolVar(&noBreaks, "no-hard-wraps", false, "Do not turn single newlines into <br>.")
	cmd.Flags().BoolVar(&xhtml, "xhtml", false, "Write XHTML style void elements.")

	return &cmd
}
