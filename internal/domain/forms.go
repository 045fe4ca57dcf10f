package domain

// ContactDetails is the payload of the contact form.
type ContactDetails struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// AppointmentRequest is the payload of the appointment form.
type AppointmentRequest struct {
	Date  string `json:"date"`
	Time  string `json:"time"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// SelectOption is one entry of a selection control.
type SelectOption struct {
	Value string
	Label string
}

// TimePlaceholder is the leading, empty option of the appointment time selector.
var TimePlaceholder = SelectOption{Value: "", Label: "Select Time"}

// TimeOptions returns the placeholder followed by one option per slot, in
// slot order, labelled and valued with the slot itself.
func TimeOptions(slots []string) []SelectOption {
	opts := make([]SelectOption, 0, len(slots)+1)
	opts = append(opts, TimePlaceholder)
	for _, s := range slots {
		opts = append(opts, SelectOption{Value: s, Label: s})
	}
	return opts
}

// ModalState is the visibility of one modal.
type ModalState int

const (
	ModalClosed ModalState = iota
	ModalOpen
)

func (s ModalState) String() string {
	if s == ModalOpen {
		return "open"
	}
	return "closed"
}
