package domain

// IntentContactCollection is the chat intent that asks the widget to collect
// contact details.
const IntentContactCollection = "contact_collection"

// ReplyKind tags the variant carried by a ChatReply.
type ReplyKind int

const (
	ReplyAnswer ReplyKind = iota + 1
	ReplyContactIntent
	ReplySlotOffer
)

func (k ReplyKind) String() string {
	switch k {
	case ReplyAnswer:
		return "answer"
	case ReplyContactIntent:
		return "contact_intent"
	case ReplySlotOffer:
		return "slot_offer"
	default:
		return "unknown"
	}
}

// SlotOffer is a set of bookable times for one date.
type SlotOffer struct {
	Date           string
	AvailableSlots []string
}

// ChatReply is the decoded reply of the chat endpoint. Exactly one of the
// variants is meaningful, selected by Kind.
type ChatReply struct {
	Kind   ReplyKind
	Answer string
	Offer  SlotOffer
}

// AnswerReply builds a plain text reply.
func AnswerReply(text string) ChatReply {
	return ChatReply{Kind: ReplyAnswer, Answer: text}
}

// ContactIntentReply builds a reply asking for contact details.
func ContactIntentReply() ChatReply {
	return ChatReply{Kind: ReplyContactIntent}
}

// SlotOfferReply builds a reply offering appointment slots.
func SlotOfferReply(date string, slots []string) ChatReply {
	return ChatReply{Kind: ReplySlotOffer, Offer: SlotOffer{Date: date, AvailableSlots: slots}}
}

// SubmitReply is the reply of the contact and appointment endpoints.
type SubmitReply struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
