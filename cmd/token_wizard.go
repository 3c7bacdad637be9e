package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var errTokenSetupCancelled = errors.New("token setup cancelled")

var (
	wizardTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	wizardMuted = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	wizardError = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type wizardKeys struct {
	Next   key.Binding
	Open   key.Binding
	Back   key.Binding
	Cancel key.Binding
}

var introKeys = wizardKeys{
	Next:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "continue")),
	Open:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open integrations page")),
	Cancel: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q/esc", "cancel")),
}

var inputKeys = wizardKeys{
	Next:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
	Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Cancel: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "cancel")),
}

func (k wizardKeys) help() string {
	var parts []string
	for _, b := range []key.Binding{k.Next, k.Open, k.Back, k.Cancel} {
		if h := b.Help(); h.Key != "" {
			parts = append(parts, h.Key+": "+h.Desc)
		}
	}
	return strings.Join(parts, "    ")
}

// tokenWizardModel asks for a Notion integration token in two screens:
// an intro pointing at the integrations page, then a masked input.
type tokenWizardModel struct {
	entering  bool
	input     textinput.Model
	token     string
	notice    string
	err       error
	cancelled bool
}

func newTokenWizardModel() tokenWizardModel {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "ntn_..."
	input.EchoMode = textinput.EchoPassword
	input.EchoCharacter = '•'
	input.CharLimit = 512
	return tokenWizardModel{input: input}
}

func runTokenSetupWizard() (string, error) {
	final, err := tea.NewProgram(newTokenWizardModel()).Run()
	if err != nil {
		return "", err
	}
	m, ok := final.(tokenWizardModel)
	switch {
	case !ok:
		return "", fmt.Errorf("unexpected wizard model type %T", final)
	case m.cancelled:
		return "", errTokenSetupCancelled
	case m.token == "":
		return "", errors.New("notion API token is required")
	}
	return m.token, nil
}

func (m tokenWizardModel) Init() tea.Cmd {
	return nil
}

func (m tokenWizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.entering {
		return m.updateInput(keyMsg)
	}
	return m.updateIntro(keyMsg)
}

func (m tokenWizardModel) updateIntro(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, introKeys.Cancel):
		m.cancelled = true
		return m, tea.Quit
	case key.Matches(msg, introKeys.Open):
		m.notice, m.err = "", openBrowserURL(integrationsURL)
		if m.err == nil {
			m.notice = "Opened the integrations page in your browser."
		}
	case key.Matches(msg, introKeys.Next):
		m.entering = true
		m.notice, m.err = "", nil
		m.input.Focus()
	}
	return m, nil
}

func (m tokenWizardModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, inputKeys.Cancel):
		m.cancelled = true
		return m, tea.Quit
	case key.Matches(msg, inputKeys.Back):
		m.entering = false
		m.err = nil
		m.input.Blur()
		return m, nil
	case key.Matches(msg, inputKeys.Next):
		token := strings.TrimSpace(m.input.Value())
		if token == "" {
			m.err = errors.New("token cannot be empty")
			return m, nil
		}
		m.token = token
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m tokenWizardModel) View() string {
	lines := []string{wizardTitle.Render("d2wiki Notion Token Setup"), ""}

	if m.entering {
		lines = append(lines,
			"Paste your Notion integration token:",
			m.input.View(),
			"",
			wizardMuted.Render("Expected: ntn_... (legacy secret_... also works)"),
			inputKeys.help(),
		)
	} else {
		lines = append(lines,
			"d2wiki reads the Destiny 2 databases through a Notion internal integration.",
			"Share each database with the integration, then paste its token here.",
			"Open: "+integrationsURL,
			"",
			introKeys.help(),
		)
	}

	if m.notice != "" {
		lines = append(lines, "", wizardMuted.Render(m.notice))
	}
	if m.err != nil {
		lines = append(lines, "", wizardError.Render("Error: "+m.err.Error()))
	}
	return strings.Join(lines, "\n")
}
