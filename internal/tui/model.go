package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/tturner/formfill/internal/submission"
)

// pollInterval is how often the model reads the controller state.
const pollInterval = 100 * time.Millisecond

// Controller is the part of submission.Controller the TUI drives.
type Controller interface {
	State() submission.State
	Request() submission.Request
	UpdateField(field submission.Field, value string) error
	Submit(ctx context.Context) error
}

type viewMode int

const (
	viewForm viewMode = iota
	viewSubmitting
	viewResult
)

// tickMsg is sent periodically to poll the controller.
type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// Model is the Bubble Tea model for one interactive session.
type Model struct {
	ctx    context.Context
	ctrl   Controller
	styles Styles

	mode   viewMode
	values *formValues
	form   *huh.Form
	bar    progress.Model

	state  submission.State
	req    submission.Request
	status string
	err    error
}

// NewModel builds the form from the controller's pending request. ctx
// bounds the network call of every submission.
func NewModel(ctx context.Context, ctrl Controller) Model {
	values := newFormValues(ctrl.Request())
	return Model{
		ctx:    ctx,
		ctrl:   ctrl,
		styles: DefaultStyles,
		mode:   viewForm,
		values: values,
		form:   buildSubmissionForm(values),
		bar: progress.New(
			progress.WithGradient(string(DefaultTheme.Accent), string(DefaultTheme.Purple)),
			progress.WithWidth(40),
		),
		state: ctrl.State(),
		req:   ctrl.Request(),
	}
}

func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		width := size.Width - 8
		if width > 60 {
			width = 60
		}
		if width > 10 {
			m.bar.Width = width
		}
	}

	switch m.mode {
	case viewForm:
		return m.updateForm(msg)
	case viewSubmitting:
		return m.updateSubmitting(msg)
	default:
		return m.updateResult(msg)
	}
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	formModel, cmd := m.form.Update(msg)
	if f, ok := formModel.(*huh.Form); ok {
		m.form = f
	}
	switch m.form.State {
	case huh.StateCompleted:
		return m.submit()
	case huh.StateAborted:
		return m, tea.Quit
	}
	return m, cmd
}

// submit pushes every form value through the controller and starts the
// submission. A rejected value or request returns to the form.
func (m Model) submit() (tea.Model, tea.Cmd) {
	m.err = nil
	m.status = ""
	for _, fv := range m.values.fields() {
		if err := m.ctrl.UpdateField(fv.field, fv.value); err != nil {
			return m.backToForm(fmt.Errorf("%s: %w", fv.field, err))
		}
	}
	if err := m.ctrl.Submit(m.ctx); err != nil {
		return m.backToForm(err)
	}
	m.req = m.ctrl.Request()
	m.state = m.ctrl.State()
	m.mode = viewSubmitting
	return m, tickCmd()
}

func (m Model) backToForm(err error) (tea.Model, tea.Cmd) {
	m.err = err
	m.mode = viewForm
	m.values = newFormValues(m.ctrl.Request())
	m.form = buildSubmissionForm(m.values)
	return m, m.form.Init()
}

// updateSubmitting ignores every key except quit; inputs stay frozen
// until the response arrives.
func (m Model) updateSubmitting(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}
		return m, nil
	case tickMsg:
		m.state = m.ctrl.State()
		if m.state.Submitting() {
			return m, tickCmd()
		}
		m.mode = viewResult
		return m, nil
	}
	return m, nil
}

func (m Model) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "c":
		if err := writeClipboard(m.state.Message); err != nil {
			m.status = fmt.Sprintf("Copy failed: %v", err)
		} else {
			m.status = "Message copied to clipboard"
		}
		return m, nil
	case "n":
		m.err = nil
		m.status = ""
		m.mode = viewForm
		m.values = newFormValues(m.ctrl.Request())
		m.form = buildSubmissionForm(m.values)
		return m, m.form.Init()
	}
	return m, nil
}

func (m Model) View() string {
	s := m.styles
	var b strings.Builder
	b.WriteString(s.Title.Render("formfill"))
	b.WriteString(s.Dim.Render("Google Form auto-filler"))
	b.WriteString("\n\n")

	switch m.mode {
	case viewForm:
		b.WriteString(m.form.View())
		if m.err != nil {
			b.WriteString("\n")
			b.WriteString(s.Error.Render("⚠ " + m.err.Error()))
		}
	case viewSubmitting:
		b.WriteString(m.progressView())
		b.WriteString("\n\n")
		b.WriteString(keyHint(s, "q", "quit"))
	case viewResult:
		b.WriteString(m.resultView())
		b.WriteString("\n\n")
		b.WriteString(keyHint(s, "c", "copy message", "n", "new submission", "q", "quit"))
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) progressView() string {
	s := m.styles
	lines := []string{
		StatusIcon(m.state.Phase.String(), s) + " " + s.Running.Render("Generating responses..."),
		"",
		m.bar.ViewAs(m.state.Percent() / 100),
		s.Base.Render(fmt.Sprintf("%d/%d responses", m.state.Completed, m.state.Total)),
		"",
		s.Banner.Render(intervalBanner(m.req)),
	}
	return s.Panel.Render(strings.Join(lines, "\n"))
}

func (m Model) resultView() string {
	s := m.styles
	msgStyle := s.Success
	if m.state.IsError() {
		msgStyle = s.Error
	}
	lines := []string{
		StatusIcon(m.state.Phase.String(), s) + " " + s.Bold.Render(fmt.Sprintf("%d/%d responses", m.state.Completed, m.state.Total)),
		m.bar.ViewAs(m.state.Percent() / 100),
		"",
		msgStyle.Render(m.state.Message),
	}
	if m.status != "" {
		lines = append(lines, "", s.Dim.Render(m.status))
	}
	return s.Panel.Render(strings.Join(lines, "\n"))
}

// intervalBanner describes the chosen spacing, omitting zero minutes.
func intervalBanner(req submission.Request) string {
	interval := fmt.Sprintf("%ds", req.IntervalSeconds)
	if req.IntervalMinutes > 0 {
		interval = fmt.Sprintf("%dm %s", req.IntervalMinutes, interval)
	}
	return fmt.Sprintf("Custom interval of %s between submissions", interval)
}
