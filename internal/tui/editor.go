package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/quantmind-br/codecollector/internal/config"
)

type editorState int

const (
	editorMenu editorState = iota
	editorForm
	editorConfirm
	editorSaved
	editorError
)

// EditorModel is the bubbletea model behind `codecollector config edit`
type EditorModel struct {
	state       editorState
	values      *ConfigValues
	path        string
	menuIndex   int
	currentForm *huh.Form
	err         error
	width       int
	height      int
	dirty       bool
	saveFunc    func(*config.Config) error
	accessible  bool
}

// EditorOptions configures the editor
type EditorOptions struct {
	Config     *config.Config
	Path       string // shown in the header
	SaveFunc   func(*config.Config) error
	Accessible bool
}

func NewEditorModel(opts EditorOptions) EditorModel {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	return EditorModel{
		state:      editorMenu,
		values:     FromConfig(cfg),
		path:       opts.Path,
		saveFunc:   opts.SaveFunc,
		accessible: opts.Accessible,
	}
}

func (m EditorModel) Init() tea.Cmd {
	return nil
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.state == editorForm && m.currentForm != nil {
			return m.forwardToForm(msg)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case editorMenu:
			return m.updateMenu(msg)
		case editorForm:
			if msg.String() == "esc" {
				m.state = editorMenu
				return m, nil
			}
			return m.forwardToForm(msg)
		case editorConfirm:
			return m.updateConfirm(msg)
		case editorSaved, editorError:
			return m, tea.Quit
		}
	}

	if m.state == editorForm && m.currentForm != nil {
		return m.forwardToForm(msg)
	}

	return m, nil
}

func (m EditorModel) forwardToForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.currentForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.currentForm = f
	}
	if m.currentForm.State == huh.StateCompleted {
		m.dirty = true
		m.state = editorMenu
		return m, nil
	}
	return m, cmd
}

func (m EditorModel) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		if m.dirty {
			m.state = editorConfirm
			return m, nil
		}
		return m, tea.Quit

	case "up", "k":
		if m.menuIndex > 0 {
			m.menuIndex--
		}

	case "down", "j":
		if m.menuIndex < len(Categories) {
			m.menuIndex++
		}

	case "enter":
		if m.menuIndex == len(Categories) {
			return m.handleSave()
		}
		form := GetFormForCategory(Categories[m.menuIndex].ID, m.values)
		if form == nil {
			return m, nil
		}
		if m.accessible {
			form = form.WithTheme(FormTheme(true)).WithAccessible(true)
		}
		m.currentForm = form
		m.state = editorForm
		return m, m.currentForm.Init()

	case "r":
		m.values = FromConfig(config.Default())
		m.dirty = true

	case "s":
		return m.handleSave()
	}

	return m, nil
}

func (m EditorModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		return m.handleSave()
	case "n", "N", "esc":
		return m, tea.Quit
	case "c":
		m.state = editorMenu
	}
	return m, nil
}

func (m EditorModel) handleSave() (tea.Model, tea.Cmd) {
	cfg, err := m.values.ToConfig()
	if err != nil {
		m.state = editorError
		m.err = err
		return m, nil
	}

	if m.saveFunc != nil {
		if err := m.saveFunc(cfg); err != nil {
			m.state = editorError
			m.err = err
			return m, nil
		}
	}

	m.state = editorSaved
	m.dirty = false
	return m, nil
}

func (m EditorModel) View() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("CodeCollector Configuration"))
	if m.path != "" {
		s.WriteString("\n")
		s.WriteString(DescriptionStyle.Render(m.path))
	}
	s.WriteString("\n\n")

	switch m.state {
	case editorMenu:
		s.WriteString(m.renderMenu())
	case editorForm:
		if m.currentForm != nil {
			s.WriteString(m.currentForm.View())
		}
	case editorConfirm:
		s.WriteString(m.renderConfirm())
	case editorSaved:
		s.WriteString(SuccessStyle.Render("Configuration saved."))
		s.WriteString("\n\nPress any key to exit.")
	case editorError:
		s.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		s.WriteString("\n\nPress any key to exit.")
	}

	return s.String()
}

func (m EditorModel) renderMenu() string {
	var s strings.Builder

	for i, cat := range Categories {
		cursor := "  "
		style := UnselectedStyle
		if i == m.menuIndex {
			cursor = "> "
			style = SelectedStyle
		}
		s.WriteString(style.Render(cursor + cat.Name))
		if i == m.menuIndex {
			s.WriteString(DescriptionStyle.Render("  " + cat.Description))
		}
		s.WriteString("\n")
	}

	saveStyle := UnselectedStyle
	saveCursor := "  "
	if m.menuIndex == len(Categories) {
		saveCursor = "> "
		saveStyle = SelectedStyle
	}
	saveText := saveCursor + "Save Configuration"
	if m.dirty {
		saveText += " *"
	}
	s.WriteString("\n")
	s.WriteString(saveStyle.Render(saveText))
	s.WriteString("\n\n")

	s.WriteString(HelpStyle.Render("↑/↓ navigate • enter select • r defaults • s save • q quit"))

	return s.String()
}

func (m EditorModel) renderConfirm() string {
	return confirmStyle.Render("You have unsaved changes.\n\nSave before quitting?\n\n[y] Yes  [n] No  [c] Cancel")
}

// RunEditor runs the configuration editor until the user quits
func RunEditor(opts EditorOptions) error {
	p := tea.NewProgram(NewEditorModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
