package controller

import (
	"context"
	"sync"

	"chat-widget/internal/domain"
)

// fakeField is an in-memory TextField/Selector.
type fakeField struct {
	mu   sync.Mutex
	val  string
	opts []domain.SelectOption
}

func (f *fakeField) Value() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.val
}

func (f *fakeField) SetValue(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.val = v
}

func (f *fakeField) SetOptions(opts []domain.SelectOption) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opts = append([]domain.SelectOption(nil), opts...)
}

func (f *fakeField) options() []domain.SelectOption {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.opts
}

type fakeTranscript struct {
	mu       sync.Mutex
	msgs     []domain.ChatMessage
	scrolled int
}

func (f *fakeTranscript) Append(msg domain.ChatMessage) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, msg)
}

func (f *fakeTranscript) ScrollToBottom() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scrolled++
}

func (f *fakeTranscript) messages() []domain.ChatMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.ChatMessage(nil), f.msgs...)
}

type fakeOverlay struct {
	mu      sync.Mutex
	visible bool
}

func (f *fakeOverlay) Show() { f.set(true) }
func (f *fakeOverlay) Hide() { f.set(false) }

func (f *fakeOverlay) set(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.visible = v
}

func (f *fakeOverlay) Visible() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.visible
}

type fakeForm struct {
	mu   sync.Mutex
	busy []bool
}

func (f *fakeForm) SetBusy(b bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.busy = append(f.busy, b)
}

// fakeWidget holds every element of a View.
type fakeWidget struct {
	input    *fakeField
	messages *fakeTranscript
	contact  *fakeOverlay
	contactF *fakeForm
	cName    *fakeField
	cEmail   *fakeField
	cPhone   *fakeField
	appt     *fakeOverlay
	apptF    *fakeForm
	aDate    *fakeField
	aTime    *fakeField
	aName    *fakeField
	aEmail   *fakeField
	aPhone   *fakeField
}

func newFakeWidget() *fakeWidget {
	return &fakeWidget{
		input:    &fakeField{},
		messages: &fakeTranscript{},
		contact:  &fakeOverlay{},
		contactF: &fakeForm{},
		cName:    &fakeField{},
		cEmail:   &fakeField{},
		cPhone:   &fakeField{},
		appt:     &fakeOverlay{},
		apptF:    &fakeForm{},
		aDate:    &fakeField{},
		aTime:    &fakeField{},
		aName:    &fakeField{},
		aEmail:   &fakeField{},
		aPhone:   &fakeField{},
	}
}

func (w *fakeWidget) view() View {
	return View{
		UserInput:        w.input,
		Messages:         w.messages,
		ContactModal:     w.contact,
		ContactForm:      w.contactF,
		ContactName:      w.cName,
		ContactEmail:     w.cEmail,
		ContactPhone:     w.cPhone,
		AppointmentModal: w.appt,
		AppointmentForm:  w.apptF,
		AppointmentDate:  w.aDate,
		AppointmentTime:  w.aTime,
		AppointmentName:  w.aName,
		AppointmentEmail: w.aEmail,
		AppointmentPhone: w.aPhone,
	}
}

// stubAPI records calls and returns canned results. chatFn, when set,
// overrides chatReply/chatErr.
type stubAPI struct {
	mu sync.Mutex

	chatCalls []string
	chatReply domain.ChatReply
	chatErr   error
	chatFn    func(ctx context.Context, message string) (domain.ChatReply, error)

	contactIn  []domain.ContactDetails
	contactOut domain.SubmitReply
	contactErr error

	apptIn  []domain.AppointmentRequest
	apptOut domain.SubmitReply
	apptErr error
}

func (s *stubAPI) Chat(ctx context.Context, message string) (domain.ChatReply, error) {
	s.mu.Lock()
	s.chatCalls = append(s.chatCalls, message)
	fn := s.chatFn
	s.mu.Unlock()
	if fn != nil {
		return fn(ctx, message)
	}
	return s.chatReply, s.chatErr
}

func (s *stubAPI) SaveContact(_ context.Context, in domain.ContactDetails) (domain.SubmitReply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contactIn = append(s.contactIn, in)
	return s.contactOut, s.contactErr
}

func (s *stubAPI) BookAppointment(_ context.Context, in domain.AppointmentRequest) (domain.SubmitReply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apptIn = append(s.apptIn, in)
	return s.apptOut, s.apptErr
}

func (s *stubAPI) chatCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.chatCalls)
}
