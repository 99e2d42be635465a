package cmd

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	previewedit "github.com/ionut-t/previewedit/adapter-bubbletea"
	"github.com/ionut-t/previewedit/internal/config"
	"github.com/ionut-t/previewedit/internal/log"
)

const messageDuration = 3 * time.Second

func editCmd() *cobra.Command {
	var (
		unsafe    bool
		theme     string
		noPreview bool
	)

	cmd := cobra.Command{
		Use:   "edit [file]",
		Short: "Open a Markdown file in the editor",
		Long: `Open a Markdown file in the editor. The file does not need to exist
yet; it is created on the first save.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				path    string
				content []byte
			)
			if len(args) == 1 {
				path = expandHome(args[0])
				data, err := os.ReadFile(path)
				if err != nil && !os.IsNotExist(err) {
					return errors.Wrapf(err, "failed to read file %q", args[0])
				}
				content = data
			}

			c := *cfg
			c.Safe = safeMode(unsafe)
			if theme != "" {
				c.Theme = theme
				if err := c.Validate(); err != nil {
					return err
				}
			}

			m := newEditModel(string(content), path, &c)
			m.editor.HidePreview(noPreview)

			log.Get().Info("starting editor", zap.String("path", path))

			return newProgram(cmd, m).Run()
		},
	}

	cmd.Flags().BoolVar(&unsafe, "unsafe", false, "Render raw HTML in the preview.")
	cmd.Flags().StringVar(&theme, "theme", "", "Syntax highlighting theme.")
	cmd.Flags().BoolVar(&noPreview, "no-preview", false, "Start with the preview pane hidden.")

	return &cmd
}

// editModel hosts the editor and owns the file on disk.
type editModel struct {
	editor previewedit.Model
	path   string
}

func newEditModel(content, path string, c *config.Config) editModel {
	ed := previewedit.New(content, 80, 20,
		previewedit.WithSurfaceOptions(c.SurfaceOptions()...),
		previewedit.WithSyntaxTheme(c.Theme),
		previewedit.WithPalette(c.Palette),
		previewedit.WithSizes(c.Sizes),
		previewedit.WithSnippets(c.Snippets),
		previewedit.WithPath(path),
	)
	ed.SetPlaceholder("Start writing Markdown...")
	ed.Focus()

	return editModel{editor: ed, path: path}
}

func (m editModel) Init() tea.Cmd {
	return m.editor.Init()
}

func (m editModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.editor.SetSize(msg.Width-4, msg.Height-2)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case previewedit.SaveMsg:
		return m, m.save(msg)
	}

	editorModel, cmd := m.editor.Update(msg)
	m.editor = editorModel.(previewedit.Model)

	return m, cmd
}

func (m *editModel) save(msg previewedit.SaveMsg) tea.Cmd {
	if msg.Path != "" {
		m.path = msg.Path
	}
	if m.path == "" {
		return m.editor.DispatchError(errors.New("no file name, pass one to the edit command"), messageDuration)
	}

	if err := os.WriteFile(m.path, []byte(msg.Content), 0o644); err != nil {
		log.Get().Warn("save failed", zap.String("path", m.path), zap.Error(err))
		return m.editor.DispatchError(errors.Wrap(err, "failed to save"), messageDuration)
	}

	m.editor.MarkSaved(msg.Content)
	return m.editor.DispatchMessage(fmt.Sprintf("%d bytes written to %s", len(msg.Content), m.path), messageDuration)
}

func (m editModel) View() string {
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(m.editor.View())
}
