package controller

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"

	"chat-widget/internal/domain"
	"chat-widget/pkg/logging"
)

// User-facing failure texts, one per request kind.
const (
	MsgChatError        = "Sorry, there was an error processing your request."
	MsgContactError     = "Sorry, there was an error saving your contact information."
	MsgAppointmentError = "Sorry, there was an error booking your appointment."
)

// KeyEnter is the key name that submits the user input.
const KeyEnter = "enter"

type ChatAPI interface {
	Chat(ctx context.Context, message string) (domain.ChatReply, error)
	SaveContact(ctx context.Context, in domain.ContactDetails) (domain.SubmitReply, error)
	BookAppointment(ctx context.Context, in domain.AppointmentRequest) (domain.SubmitReply, error)
}

// Controller drives the chat widget. Its methods are event handlers: they
// never return errors, failures end up in the transcript and the log. All
// methods are safe for concurrent use as long as the bound elements are.
type Controller struct {
	api    ChatAPI
	view   View
	logger *logging.Logger

	// seq identifies the latest chat dispatch; replies to older ones are dropped.
	seq atomic.Uint64
}

func New(api ChatAPI, view View, logger *logging.Logger) (*Controller, error) {
	if api == nil {
		return nil, newError(ErrorInvalidDependency, "chat api must not be nil", nil)
	}
	if err := view.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Controller{api: api, view: view, logger: logger}, nil
}

// Dispatch sends the current input to the chat endpoint. Blank input is
// ignored. The input is cleared and the user message appended before the
// request is issued.
func (c *Controller) Dispatch(ctx context.Context) {
	message := strings.TrimSpace(c.view.UserInput.Value())
	if message == "" {
		return
	}

	c.view.UserInput.SetValue("")
	c.send(ctx, message)
}

// Send dispatches text the caller has already taken out of the input field.
// The input is left untouched. Blank text is ignored.
func (c *Controller) Send(ctx context.Context, text string) {
	if message := strings.TrimSpace(text); message != "" {
		c.send(ctx, message)
	}
}

func (c *Controller) send(ctx context.Context, message string) {
	c.AppendMessage(domain.SenderUser, message)

	token := c.seq.Add(1)
	reply, err := c.api.Chat(ctx, message)
	if latest := c.seq.Load(); latest != token {
		c.logger.Debug("chat reply discarded", "request", token, "latest", latest, "failed", err != nil)
		return
	}
	if err != nil {
		c.logger.Error("chat request failed", "err", err, "status", statusCode(err))
		c.AppendMessage(domain.SenderBot, MsgChatError)
		return
	}

	c.logger.Debug("chat reply applied", "request", token, "kind", reply.Kind.String())
	switch reply.Kind {
	case domain.ReplyContactIntent:
		c.view.ContactModal.Show()
	case domain.ReplySlotOffer:
		c.openAppointment(reply.Offer)
	default:
		c.AppendMessage(domain.SenderBot, reply.Answer)
	}
}

func (c *Controller) openAppointment(offer domain.SlotOffer) {
	c.view.AppointmentTime.SetOptions(domain.TimeOptions(offer.AvailableSlots))
	c.view.AppointmentDate.SetValue(offer.Date)
	c.view.AppointmentModal.Show()
}

// AppendMessage adds an entry to the transcript and scrolls it to the bottom.
func (c *Controller) AppendMessage(sender domain.Sender, text string) {
	c.view.Messages.Append(domain.ChatMessage{Sender: sender, Text: text})
	c.view.Messages.ScrollToBottom()
}

// SubmitContact posts the contact form. The modal is hidden once the
// endpoint answers; on failure it stays open.
func (c *Controller) SubmitContact(ctx context.Context) {
	in := domain.ContactDetails{
		Name:  c.view.ContactName.Value(),
		Email: c.view.ContactEmail.Value(),
		Phone: c.view.ContactPhone.Value(),
	}

	c.view.ContactForm.SetBusy(true)
	reply, err := c.api.SaveContact(ctx, in)
	c.view.ContactForm.SetBusy(false)
	if err != nil {
		c.logger.Error("save contact failed", "err", err, "status", statusCode(err))
		c.AppendMessage(domain.SenderBot, MsgContactError)
		return
	}

	c.logger.Info("contact submitted", "status", reply.Status)
	c.view.ContactModal.Hide()
	c.AppendMessage(domain.SenderBot, reply.Message)
}

// SubmitAppointment posts the appointment form. The modal is hidden once the
// endpoint answers; on failure it stays open.
func (c *Controller) SubmitAppointment(ctx context.Context) {
	in := domain.AppointmentRequest{
		Date:  c.view.AppointmentDate.Value(),
		Time:  c.view.AppointmentTime.Value(),
		Name:  c.view.AppointmentName.Value(),
		Email: c.view.AppointmentEmail.Value(),
		Phone: c.view.AppointmentPhone.Value(),
	}

	c.view.AppointmentForm.SetBusy(true)
	reply, err := c.api.BookAppointment(ctx, in)
	c.view.AppointmentForm.SetBusy(false)
	if err != nil {
		c.logger.Error("book appointment failed", "err", err, "status", statusCode(err))
		c.AppendMessage(domain.SenderBot, MsgAppointmentError)
		return
	}

	c.logger.Info("appointment submitted", "status", reply.Status, "date", in.Date, "time", in.Time)
	c.view.AppointmentModal.Hide()
	c.AppendMessage(domain.SenderBot, reply.Message)
}

// HandleClick hides a modal when the click landed on its overlay itself.
// Clicks on modal content, or anywhere else, do nothing.
func (c *Controller) HandleClick(target any) {
	if target == nil {
		return
	}
	if target == any(c.view.ContactModal) {
		c.view.ContactModal.Hide()
	}
	if target == any(c.view.AppointmentModal) {
		c.view.AppointmentModal.Hide()
	}
}

// HandleKey runs Dispatch when Enter is pressed on the input.
func (c *Controller) HandleKey(ctx context.Context, key string) {
	if key == KeyEnter {
		c.Dispatch(ctx)
	}
}

// ContactState reports whether the contact modal is open.
func (c *Controller) ContactState() domain.ModalState {
	return modalState(c.view.ContactModal)
}

// AppointmentState reports whether the appointment modal is open.
func (c *Controller) AppointmentState() domain.ModalState {
	return modalState(c.view.AppointmentModal)
}

func modalState(o Overlay) domain.ModalState {
	if o.Visible() {
		return domain.ModalOpen
	}
	return domain.ModalClosed
}

type httpStatusCoder interface {
	HTTPStatusCode() int
}

func statusCode(err error) int {
	var statusErr httpStatusCoder
	if !errors.As(err, &statusErr) {
		return 0
	}
	return statusErr.HTTPStatusCode()
}
