package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"chat-widget/internal/controller"
	"chat-widget/internal/domain"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	modalWidth    = 48

	// title line, input box (3 lines) and help line
	chromeHeight = 5
)

type modalKind int

const (
	modalNone modalKind = iota
	modalContact
	modalAppointment
)

// submitDoneMsg reports that a form submission returned.
type submitDoneMsg struct{ kind modalKind }

// Handler is the part of the controller the terminal UI drives.
type Handler interface {
	Send(ctx context.Context, text string)
	HandleClick(target any)
	SubmitContact(ctx context.Context)
	SubmitAppointment(ctx context.Context)
}

// draft holds the values huh writes into while a form is open.
type draft struct {
	domain.AppointmentRequest
}

// Model renders the widget and turns key and mouse input into controller
// calls. Controller calls run as commands, never on the event loop.
type Model struct {
	ctx     context.Context
	handler Handler
	w       *Widget

	input    textinput.Model
	viewport viewport.Model
	width    int
	height   int

	active      modalKind
	form        *huh.Form
	draft       *draft
	optsVersion int
	submitting  bool

	// modal box bounds from the last render, for backdrop clicks
	boxX, boxY, boxW, boxH int
}

func NewModel(ctx context.Context, h Handler, w *Widget) *Model {
	ti := textinput.New()
	ti.Placeholder = "Type your message..."
	ti.Prompt = "> "
	ti.Focus()

	m := &Model{
		ctx:      ctx,
		handler:  h,
		w:        w,
		input:    ti,
		viewport: viewport.New(defaultWidth, defaultHeight-chromeHeight),
		width:    defaultWidth,
		height:   defaultHeight,
	}
	m.resize(defaultWidth, defaultHeight)
	return m
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// run executes fn off the event loop and refreshes afterwards.
func (m *Model) run(fn func(ctx context.Context)) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		fn(ctx)
		return refreshMsg{}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, m.sync()
	case refreshMsg:
		return m, m.sync()
	case submitDoneMsg:
		if msg.kind == m.active {
			m.submitting = false
		}
		return m, m.sync()
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.active != modalNone {
			return m, m.updateForm(msg)
		}
		return m, m.updateChat(msg)
	}

	if m.active != modalNone {
		return m, m.updateForm(msg)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateChat(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case controller.KeyEnter:
		// cleared here so keys typed while the request runs stay in the input
		text := strings.TrimSpace(m.input.Value())
		m.input.Reset()
		m.w.input.set("")
		if text == "" {
			return nil
		}
		h := m.handler
		return m.run(func(ctx context.Context) { h.Send(ctx, text) })
	case "esc":
		return tea.Quit
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.w.input.set(m.input.Value())
	return cmd
}

func (m *Model) updateForm(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return m.clickBackdrop()
	}
	if m.submitting || m.form == nil {
		return nil
	}

	fm, cmd := m.form.Update(msg)
	if f, ok := fm.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State != huh.StateCompleted {
		return cmd
	}
	return tea.Batch(cmd, m.submit())
}

// submit copies the form values into the elements and posts the form.
func (m *Model) submit() tea.Cmd {
	m.submitting = true
	h := m.handler
	kind := m.active
	d := m.draft.AppointmentRequest
	ctx := m.ctx

	switch kind {
	case modalContact:
		m.w.contactName.set(d.Name)
		m.w.contactEmail.set(d.Email)
		m.w.contactPhone.set(d.Phone)
		return func() tea.Msg {
			h.SubmitContact(ctx)
			return submitDoneMsg{kind: kind}
		}
	case modalAppointment:
		m.w.apptDate.set(d.Date)
		m.w.apptTime.set(d.Time)
		m.w.apptName.set(d.Name)
		m.w.apptEmail.set(d.Email)
		m.w.apptPhone.set(d.Phone)
		return func() tea.Msg {
			h.SubmitAppointment(ctx)
			return submitDoneMsg{kind: kind}
		}
	}
	m.submitting = false
	return nil
}

func (m *Model) activeOverlay() *overlay {
	switch m.active {
	case modalContact:
		return m.w.contact
	case modalAppointment:
		return m.w.appt
	}
	return nil
}

func (m *Model) activeForm() *form {
	switch m.active {
	case modalContact:
		return m.w.contactForm
	case modalAppointment:
		return m.w.apptForm
	}
	return nil
}

func (m *Model) clickBackdrop() tea.Cmd {
	o := m.activeOverlay()
	if o == nil {
		return nil
	}
	return m.click(o)
}

func (m *Model) click(target any) tea.Cmd {
	h := m.handler
	return m.run(func(context.Context) { h.HandleClick(target) })
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		if m.active == modalNone {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return cmd
		}
		return nil
	}
	if m.active == modalNone {
		return nil
	}
	inside := msg.X >= m.boxX && msg.X < m.boxX+m.boxW && msg.Y >= m.boxY && msg.Y < m.boxY+m.boxH
	if inside {
		return m.click(m.activeForm())
	}
	return m.clickBackdrop()
}

// sync pulls element state into the bubbles components and opens or closes
// forms to match the overlays.
func (m *Model) sync() tea.Cmd {
	if v := m.w.input.Value(); v != m.input.Value() {
		m.input.SetValue(v)
	}

	msgs, scroll := m.w.messages.snapshot()
	m.viewport.SetContent(renderTranscript(msgs, m.viewport.Width))
	if scroll {
		m.viewport.GotoBottom()
	}

	want := modalNone
	switch {
	case m.w.contact.Visible():
		want = modalContact
	case m.w.appt.Visible():
		want = modalAppointment
	}

	_, version := m.w.apptTime.options()
	switch {
	case want == modalNone:
		m.closeForm()
		return nil
	case want != m.active:
		return m.openForm(want)
	case want == modalAppointment && version != m.optsVersion && !m.submitting:
		return m.openForm(want)
	case m.form != nil && m.form.State != huh.StateNormal && !m.submitting:
		// the submission failed and the modal stayed open; offer the form again
		return m.openForm(want)
	}
	return nil
}

func (m *Model) closeForm() {
	if m.active == modalNone {
		return
	}
	m.active = modalNone
	m.form = nil
	m.draft = nil
	m.submitting = false
	m.input.Focus()
}

func (m *Model) openForm(kind modalKind) tea.Cmd {
	var prev *draft
	if m.active == kind {
		prev = m.draft
	}
	m.active = kind
	m.submitting = false
	m.input.Blur()

	switch kind {
	case modalContact:
		m.draft = &draft{}
		if prev != nil {
			m.draft.Name, m.draft.Email, m.draft.Phone = prev.Name, prev.Email, prev.Phone
		} else {
			m.draft.Name = m.w.contactName.Value()
			m.draft.Email = m.w.contactEmail.Value()
			m.draft.Phone = m.w.contactPhone.Value()
		}
		m.form = newContactForm(m.draft)
	case modalAppointment:
		opts, version := m.w.apptTime.options()
		m.optsVersion = version
		m.draft = &draft{}
		if prev != nil {
			m.draft.Name, m.draft.Email, m.draft.Phone = prev.Name, prev.Email, prev.Phone
		} else {
			m.draft.Name = m.w.apptName.Value()
			m.draft.Email = m.w.apptEmail.Value()
			m.draft.Phone = m.w.apptPhone.Value()
		}
		m.draft.Date = m.w.apptDate.Value()
		m.draft.Time = m.w.apptTime.Value()
		m.form = newAppointmentForm(m.draft, opts)
	}
	return m.form.Init()
}

func newContactForm(d *draft) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&d.Name),
			huh.NewInput().Title("Email").Value(&d.Email),
			huh.NewInput().Title("Phone").Value(&d.Phone),
		),
	).WithShowHelp(false).WithWidth(modalWidth)
}

func newAppointmentForm(d *draft, opts []domain.SelectOption) *huh.Form {
	options := make([]huh.Option[string], 0, len(opts))
	for _, o := range opts {
		options = append(options, huh.NewOption(o.Label, o.Value))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Date").Value(&d.Date),
			huh.NewSelect[string]().Title("Time").Options(options...).Value(&d.Time),
			huh.NewInput().Title("Name").Value(&d.Name),
			huh.NewInput().Title("Email").Value(&d.Email),
			huh.NewInput().Title("Phone").Value(&d.Phone),
		),
	).WithShowHelp(false).WithWidth(modalWidth)
}

func (m *Model) resize(width, height int) {
	if width <= 0 {
		width = defaultWidth
	}
	if height <= chromeHeight {
		height = chromeHeight + 1
	}
	m.width, m.height = width, height
	m.viewport.Width = width
	m.viewport.Height = height - chromeHeight
	m.input.Width = width - 6
}

func renderTranscript(msgs []domain.ChatMessage, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	body := messageStyle.Width(width - 2)
	var sb strings.Builder
	for i, msg := range msgs {
		if i > 0 {
			sb.WriteString("\n")
		}
		switch msg.Sender {
		case domain.SenderUser:
			sb.WriteString(userLabelStyle.Render("You"))
		default:
			sb.WriteString(botLabelStyle.Render("Assistant"))
		}
		sb.WriteString("\n")
		sb.WriteString(body.Render(msg.Text))
	}
	return sb.String()
}

func (m *Model) View() string {
	chat := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Chat"),
		m.viewport.View(),
		inputStyle.Width(m.width-2).Render(m.input.View()),
		helpStyle.Render("enter: send  pgup/pgdn: scroll  esc: quit"),
	)
	if m.active == modalNone {
		return chat
	}

	title := "Contact details"
	if m.active == modalAppointment {
		title = "Book an appointment"
	}
	content := ""
	switch {
	case m.submitting || m.activeForm().Busy():
		content = busyStyle.Render("Sending...")
	case m.form != nil:
		content = m.form.View()
	}
	box := modalStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		modalTitleStyle.Render(title),
		"",
		content,
		helpStyle.Render("esc: close"),
	))

	m.boxW, m.boxH = lipgloss.Width(box), lipgloss.Height(box)
	m.boxX = max(0, (m.width-m.boxW)/2)
	m.boxY = max(0, (m.height-m.boxH)/2)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceChars("░"),
		lipgloss.WithWhitespaceForeground(backdropColor),
	)
}
