package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ionut-t/previewedit/internal/config"
	"github.com/ionut-t/previewedit/internal/log"
)

var (
	fConfigPath string
	fLogFile    string
	fVerbose    bool

	// cfg is loaded before any subcommand runs.
	cfg *config.Config
)

func Root() *cobra.Command {
	cmd := cobra.Command{
		Use:           "previewedit",
		Short:         "Edit Markdown with a formatting toolbar and a live HTML preview",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load(fConfigPath)
			if err != nil {
				return err
			}
			cfg = c

			logPath := cfg.Log.Path
			if fLogFile != "" {
				logPath = fLogFile
			}
			verbose := cfg.Log.Verbose || fVerbose
			if logPath == "" && !verbose {
				return nil
			}
			return errors.Wrap(log.Set(logPath, verbose), "failed to set up logging")
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			log.Flush()
		},
	}

	pflags := cmd.PersistentFlags()

	pflags.StringVar(&fConfigPath, "config", "", "Path to a YAML configuration file.")
	pflags.StringVar(&fLogFile, "log-file", "", "Write logs to this file.")
	pflags.BoolVar(&fVerbose, "verbose", false, "Enable debug logging.")

	cmd.AddCommand(editCmd())
	cmd.AddCommand(renderCmd())
	cmd.AddCommand(applyCmd())
	cmd.AddCommand(stampsCmd())

	return &cmd
}
