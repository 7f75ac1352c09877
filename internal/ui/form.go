// Package ui provides the interactive template creation form.
package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dpshade/pocket-analyst/internal/models"
	"github.com/dpshade/pocket-analyst/internal/renderer"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).MarginBottom(1)
	labelStyle   = lipgloss.NewStyle().Bold(true)
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
)

// Form field indices for the metadata phase.
const (
	nameField = iota
	descriptionField
	tagsField
	versionField
	numInputs
)

// form phases: metadata + body first, then one description prompt per
// placeholder extracted from the body.
const (
	phaseTemplate = iota
	phaseParams
)

// CreateForm collects a new template interactively.
type CreateForm struct {
	inputs     []textinput.Model
	systemArea textarea.Model
	bodyArea   textarea.Model

	phase       int
	focused     int // 0..numInputs-1 inputs, then system area, then body area
	paramNames  []string
	paramInputs []textinput.Model
	paramFocus  int

	submitted bool
	cancelled bool
}

// NewCreateForm creates an empty template creation form.
func NewCreateForm() *CreateForm {
	inputs := make([]textinput.Model, numInputs)

	inputs[nameField] = textinput.New()
	inputs[nameField].Placeholder = "Template Name"
	inputs[nameField].CharLimit = 100
	inputs[nameField].Width = 50
	inputs[nameField].Focus()

	inputs[descriptionField] = textinput.New()
	inputs[descriptionField].Placeholder = "What this template is for"
	inputs[descriptionField].CharLimit = 255
	inputs[descriptionField].Width = 60

	inputs[tagsField] = textinput.New()
	inputs[tagsField].Placeholder = "comma, separated, tags"
	inputs[tagsField].CharLimit = 200
	inputs[tagsField].Width = 60

	inputs[versionField] = textinput.New()
	inputs[versionField].SetValue(models.DefaultVersion)
	inputs[versionField].CharLimit = 20
	inputs[versionField].Width = 20

	system := textarea.New()
	system.Placeholder = "Optional system message for chat models"
	system.SetWidth(80)
	system.SetHeight(4)
	system.ShowLineNumbers = false

	body := textarea.New()
	body.Placeholder = "Template text; use $parameter or ${parameter} for variables"
	body.SetWidth(80)
	body.SetHeight(10)
	body.ShowLineNumbers = false

	return &CreateForm{
		inputs:     inputs,
		systemArea: system,
		bodyArea:   body,
	}
}

// Init implements tea.Model.
func (f *CreateForm) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (f *CreateForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "ctrl+c":
			f.cancelled = true
			return f, tea.Quit
		case "ctrl+s":
			return f.advance()
		case "tab", "shift+tab":
			if f.phase == phaseTemplate {
				f.cycleFocus(key.String() == "tab")
				return f, nil
			}
			f.cycleParamFocus(key.String() == "tab")
			return f, nil
		case "enter":
			// Enter moves between single-line fields; inside a textarea it
			// inserts a newline as usual.
			if f.phase == phaseTemplate && f.focused < numInputs {
				f.cycleFocus(true)
				return f, nil
			}
			if f.phase == phaseParams {
				if f.paramFocus == len(f.paramInputs)-1 {
					return f.advance()
				}
				f.cycleParamFocus(true)
				return f, nil
			}
		}
	}
	return f, f.updateFocused(msg)
}

// advance moves to the parameter phase, or finishes the form.
func (f *CreateForm) advance() (tea.Model, tea.Cmd) {
	if f.phase == phaseTemplate {
		f.paramNames = renderer.ExtractPlaceholders(f.bodyArea.Value())
		if len(f.paramNames) == 0 {
			f.submitted = true
			return f, tea.Quit
		}
		f.paramInputs = make([]textinput.Model, len(f.paramNames))
		for i, name := range f.paramNames {
			input := textinput.New()
			input.Placeholder = "Description for $" + name
			input.CharLimit = 255
			input.Width = 60
			f.paramInputs[i] = input
		}
		f.paramInputs[0].Focus()
		f.phase = phaseParams
		return f, textinput.Blink
	}

	f.submitted = true
	return f, tea.Quit
}

func (f *CreateForm) cycleFocus(forward bool) {
	total := numInputs + 2 // inputs plus the two textareas
	f.blurAll()
	if forward {
		f.focused = (f.focused + 1) % total
	} else {
		f.focused = (f.focused + total - 1) % total
	}
	switch f.focused {
	case numInputs:
		f.systemArea.Focus()
	case numInputs + 1:
		f.bodyArea.Focus()
	default:
		f.inputs[f.focused].Focus()
	}
}

func (f *CreateForm) cycleParamFocus(forward bool) {
	f.paramInputs[f.paramFocus].Blur()
	if forward {
		f.paramFocus = (f.paramFocus + 1) % len(f.paramInputs)
	} else {
		f.paramFocus = (f.paramFocus + len(f.paramInputs) - 1) % len(f.paramInputs)
	}
	f.paramInputs[f.paramFocus].Focus()
}

func (f *CreateForm) blurAll() {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	f.systemArea.Blur()
	f.bodyArea.Blur()
}

func (f *CreateForm) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if f.phase == phaseParams {
		f.paramInputs[f.paramFocus], cmd = f.paramInputs[f.paramFocus].Update(msg)
		return cmd
	}
	switch f.focused {
	case numInputs:
		f.systemArea, cmd = f.systemArea.Update(msg)
	case numInputs + 1:
		f.bodyArea, cmd = f.bodyArea.Update(msg)
	default:
		f.inputs[f.focused], cmd = f.inputs[f.focused].Update(msg)
	}
	return cmd
}

// View implements tea.Model.
func (f *CreateForm) View() string {
	var b strings.Builder

	if f.phase == phaseParams {
		b.WriteString(titleStyle.Render("Parameter Descriptions"))
		b.WriteString("\n")
		for i, name := range f.paramNames {
			label := "$" + name
			if i == f.paramFocus {
				label = focusedStyle.Render(label)
			}
			b.WriteString(labelStyle.Render(label) + "\n")
			b.WriteString(f.paramInputs[i].View() + "\n")
		}
		b.WriteString(helpStyle.Render("tab: next field • ctrl+s: save • esc: cancel"))
		return b.String()
	}

	b.WriteString(titleStyle.Render("Create New Template"))
	b.WriteString("\n")

	labels := []string{"Name", "Description", "Tags", "Version"}
	for i, input := range f.inputs {
		label := labels[i]
		if i == f.focused {
			label = focusedStyle.Render(label)
		}
		b.WriteString(labelStyle.Render(label) + "\n")
		b.WriteString(input.View() + "\n")
	}

	systemLabel := "System Message"
	if f.focused == numInputs {
		systemLabel = focusedStyle.Render(systemLabel)
	}
	b.WriteString(labelStyle.Render(systemLabel) + "\n")
	b.WriteString(f.systemArea.View() + "\n")

	bodyLabel := "Template"
	if f.focused == numInputs+1 {
		bodyLabel = focusedStyle.Render(bodyLabel)
	}
	b.WriteString(labelStyle.Render(bodyLabel) + "\n")
	b.WriteString(f.bodyArea.View() + "\n")

	b.WriteString(helpStyle.Render("tab: next field • ctrl+s: continue • esc: cancel"))
	return b.String()
}

// Cancelled reports whether the user aborted the form.
func (f *CreateForm) Cancelled() bool {
	return f.cancelled || !f.submitted
}

// Template builds the template from the form values. Only valid after the
// form finished without cancellation.
func (f *CreateForm) Template() *models.Template {
	var tags []string
	for _, tag := range strings.Split(f.inputs[tagsField].Value(), ",") {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}

	params := make(map[string]string, len(f.paramNames))
	for i, name := range f.paramNames {
		params[name] = strings.TrimSpace(f.paramInputs[i].Value())
	}

	version := strings.TrimSpace(f.inputs[versionField].Value())
	if version == "" {
		version = models.DefaultVersion
	}

	return &models.Template{
		Name:          strings.TrimSpace(f.inputs[nameField].Value()),
		Description:   strings.TrimSpace(f.inputs[descriptionField].Value()),
		Body:          f.bodyArea.Value(),
		SystemMessage: strings.TrimSpace(f.systemArea.Value()),
		Parameters:    params,
		Tags:          tags,
		Version:       version,
	}
}
