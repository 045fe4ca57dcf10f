package controller

import "chat-widget/internal/domain"

// TextField is a single-value input element.
type TextField interface {
	Value() string
	SetValue(v string)
}

// Selector is a single-choice input whose options can be replaced.
type Selector interface {
	TextField
	SetOptions(opts []domain.SelectOption)
}

// Transcript is the append-only message log.
type Transcript interface {
	Append(msg domain.ChatMessage)
	ScrollToBottom()
}

// Overlay is the backdrop of a modal. Its visibility is the modal state.
type Overlay interface {
	Show()
	Hide()
	Visible() bool
}

// Form is the submittable content of a modal.
type Form interface {
	SetBusy(busy bool)
}

// View binds every element the controller drives. Field comments name the
// element identifiers of the widget markup.
type View struct {
	UserInput TextField  // user-input
	Messages  Transcript // chat-messages

	ContactModal Overlay   // contact-modal
	ContactForm  Form      // contact-form
	ContactName  TextField // contact-name
	ContactEmail TextField // contact-email
	ContactPhone TextField // contact-phone

	AppointmentModal Overlay   // appointment-modal
	AppointmentForm  Form      // appointment-form
	AppointmentDate  TextField // appointment-date
	AppointmentTime  Selector  // appointment-time
	AppointmentName  TextField // appointment-name
	AppointmentEmail TextField // appointment-email
	AppointmentPhone TextField // appointment-phone
}

// validate fails on the first unbound element.
func (v View) validate() error {
	anchors := []struct {
		id    string
		bound bool
	}{
		{"user-input", v.UserInput != nil},
		{"chat-messages", v.Messages != nil},
		{"contact-modal", v.ContactModal != nil},
		{"contact-form", v.ContactForm != nil},
		{"contact-name", v.ContactName != nil},
		{"contact-email", v.ContactEmail != nil},
		{"contact-phone", v.ContactPhone != nil},
		{"appointment-modal", v.AppointmentModal != nil},
		{"appointment-form", v.AppointmentForm != nil},
		{"appointment-date", v.AppointmentDate != nil},
		{"appointment-time", v.AppointmentTime != nil},
		{"appointment-name", v.AppointmentName != nil},
		{"appointment-email", v.AppointmentEmail != nil},
		{"appointment-phone", v.AppointmentPhone != nil},
	}
	for _, a := range anchors {
		if !a.bound {
			return newError(ErrorMissingElement, a.id, nil)
		}
	}
	return nil
}
