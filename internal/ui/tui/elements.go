package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"chat-widget/internal/controller"
	"chat-widget/internal/domain"
)

// refreshMsg tells the model that an element changed outside the event loop.
type refreshMsg struct{}

// notifier forwards element changes to the running program.
type notifier struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

func (n *notifier) bind(send func(tea.Msg)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.send = send
}

func (n *notifier) refresh() {
	n.mu.Lock()
	send := n.send
	n.mu.Unlock()
	if send != nil {
		send(refreshMsg{})
	}
}

type field struct {
	n  *notifier
	mu sync.Mutex
	v  string
}

func (f *field) Value() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.v
}

func (f *field) SetValue(v string) {
	f.set(v)
	f.n.refresh()
}

// set updates the value without notifying; used by the model itself.
func (f *field) set(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.v = v
}

type selectField struct {
	field
	opts    []domain.SelectOption
	version int
}

// SetOptions replaces all options and resets the selection to the first one.
func (s *selectField) SetOptions(opts []domain.SelectOption) {
	s.mu.Lock()
	s.opts = append([]domain.SelectOption(nil), opts...)
	s.version++
	s.v = ""
	if len(s.opts) > 0 {
		s.v = s.opts[0].Value
	}
	s.mu.Unlock()
	s.n.refresh()
}

func (s *selectField) options() ([]domain.SelectOption, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.SelectOption(nil), s.opts...), s.version
}

type transcript struct {
	n      *notifier
	mu     sync.Mutex
	msgs   []domain.ChatMessage
	scroll bool
}

func (t *transcript) Append(msg domain.ChatMessage) {
	t.mu.Lock()
	t.msgs = append(t.msgs, msg)
	t.mu.Unlock()
	t.n.refresh()
}

func (t *transcript) ScrollToBottom() {
	t.mu.Lock()
	t.scroll = true
	t.mu.Unlock()
	t.n.refresh()
}

// snapshot returns the messages and consumes a pending scroll request.
func (t *transcript) snapshot() ([]domain.ChatMessage, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	scroll := t.scroll
	t.scroll = false
	return append([]domain.ChatMessage(nil), t.msgs...), scroll
}

type overlay struct {
	n       *notifier
	mu      sync.Mutex
	visible bool
}

func (o *overlay) Show() { o.setVisible(true) }
func (o *overlay) Hide() { o.setVisible(false) }

func (o *overlay) setVisible(v bool) {
	o.mu.Lock()
	o.visible = v
	o.mu.Unlock()
	o.n.refresh()
}

func (o *overlay) Visible() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.visible
}

type form struct {
	n    *notifier
	mu   sync.Mutex
	busy bool
}

func (f *form) SetBusy(b bool) {
	f.mu.Lock()
	f.busy = b
	f.mu.Unlock()
	f.n.refresh()
}

func (f *form) Busy() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.busy
}

// Widget holds the terminal counterparts of the widget's elements.
type Widget struct {
	n *notifier

	input    *field
	messages *transcript

	contact      *overlay
	contactForm  *form
	contactName  *field
	contactEmail *field
	contactPhone *field

	appt      *overlay
	apptForm  *form
	apptDate  *field
	apptTime  *selectField
	apptName  *field
	apptEmail *field
	apptPhone *field
}

func NewWidget() *Widget {
	n := &notifier{}
	return &Widget{
		n:            n,
		input:        &field{n: n},
		messages:     &transcript{n: n},
		contact:      &overlay{n: n},
		contactForm:  &form{n: n},
		contactName:  &field{n: n},
		contactEmail: &field{n: n},
		contactPhone: &field{n: n},
		appt:         &overlay{n: n},
		apptForm:     &form{n: n},
		apptDate:     &field{n: n},
		apptTime:     &selectField{field: field{n: n}},
		apptName:     &field{n: n},
		apptEmail:    &field{n: n},
		apptPhone:    &field{n: n},
	}
}

// Bind routes element change notifications to a running program, usually
// (*tea.Program).Send.
func (w *Widget) Bind(send func(tea.Msg)) {
	w.n.bind(send)
}

// View exposes the elements to the controller.
func (w *Widget) View() controller.View {
	return controller.View{
		UserInput:        w.input,
		Messages:         w.messages,
		ContactModal:     w.contact,
		ContactForm:      w.contactForm,
		ContactName:      w.contactName,
		ContactEmail:     w.contactEmail,
		ContactPhone:     w.contactPhone,
		AppointmentModal: w.appt,
		AppointmentForm:  w.apptForm,
		AppointmentDate:  w.apptDate,
		AppointmentTime:  w.apptTime,
		AppointmentName:  w.apptName,
		AppointmentEmail: w.apptEmail,
		AppointmentPhone: w.apptPhone,
	}
}
