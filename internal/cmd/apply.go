package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ionut-t/previewedit/core"
	"github.com/ionut-t/previewedit/internal/log"
)

type applyOptions struct {
	start, end int
	entries    []string
	heading    int
	wrap       string
	suffix     string
	insert     string
	stamp      string
	color      string
	size       int
}

func applyCmd() *cobra.Command {
	var opts applyOptions

	cmd := cobra.Command{
		Use:   "apply <file|->",
		Short: "Apply formatting commands to a selection and print the result",
		Long: `Apply formatting commands to a selection and print the result.

The selection is given in rune offsets with --start and --end. Without them
the caret sits at the end of the document. Commands run in this order:
--entry (repeatable), --heading, --wrap, --insert, --stamp, --color.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if !flags.Changed("suffix") {
				opts.suffix = opts.wrap
			}

			surfaceOpts := append(cfg.SurfaceOptions(), core.WithLogger(log.Get().Named("apply")))
			s := core.New(string(data), surfaceOpts...)
			sel := s.Selection()
			if flags.Changed("start") {
				sel = core.Caret(opts.start)
			}
			if flags.Changed("end") {
				sel.End = opts.end
			}
			s.SetSelection(sel)

			if err := runApply(s, opts); err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write([]byte(s.GetContent()))
			return errors.Wrap(err, "failed to write result")
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&opts.start, "start", 0, "Selection start, in runes.")
	flags.IntVar(&opts.end, "end", 0, "Selection end, in runes. Defaults to --start.")
	flags.StringArrayVar(&opts.entries, "entry", nil, "Click a toolbar entry such as Bold or H2.")
	flags.IntVar(&opts.heading, "heading", 0, "Set the heading level of the line holding the selection start.")
	flags.StringVar(&opts.wrap, "wrap", "", "Wrap the selection with this prefix.")
	flags.StringVar(&opts.suffix, "suffix", "", "Suffix for --wrap. Defaults to the prefix.")
	flags.StringVar(&opts.insert, "insert", "", `Insert a snippet at the selection. "\n" becomes a newline.`)
	flags.StringVar(&opts.stamp, "stamp", "", "Insert a stamp token.")
	flags.StringVar(&opts.color, "color", "", "Wrap the selection in a colored span.")
	flags.IntVar(&opts.size, "size", 16, "Font size in pixels for --color.")

	return &cmd
}

func runApply(s *core.Surface, opts applyOptions) error {
	applied := 0

	for _, name := range opts.entries {
		if err := s.Click(name); err != nil {
			return err
		}
		if kind := s.ActivePopover(); kind != core.PopoverNone {
			return errors.Errorf("entry %q opens the %s popover, use --insert, --stamp or --color instead", name, kind)
		}
		applied++
	}

	if opts.heading != 0 {
		s.OnCommand(core.SetHeadingLevel{Level: opts.heading})
		applied++
	}

	if opts.wrap != "" {
		s.OnCommand(core.WrapSelection{Prefix: opts.wrap, Suffix: opts.suffix})
		applied++
	}

	if opts.insert != "" {
		s.OnCommand(core.InsertAtCursor{Snippet: core.ExpandSnippet(opts.insert)})
		applied++
	}

	if opts.stamp != "" {
		if err := s.Click("Stamps"); err != nil {
			return err
		}
		if err := s.SubmitStamp(opts.stamp); err != nil {
			return err
		}
		applied++
	}

	if opts.color != "" {
		if err := s.Click("Font"); err != nil {
			return err
		}
		if err := s.SubmitColor(core.ColorSize{Color: opts.color, Size: opts.size}); err != nil {
			return err
		}
		applied++
	}

	if applied == 0 {
		return errors.New("nothing to apply")
	}
	return nil
}
