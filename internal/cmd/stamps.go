package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ionut-t/previewedit/core"
)

func stampsCmd() *cobra.Command {
	cmd := cobra.Command{
		Use:   "stamps",
		Short: "List the stamp tokens offered by the Stamps popover",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, token := range cfg.Stamps {
				snippet := core.StampCommand(token).(core.InsertAtCursor).Snippet
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-10s%q\n", token, snippet); err != nil {
					return err
				}
			}
			return nil
		},
	}
	return &cmd
}
