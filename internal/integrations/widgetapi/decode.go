package widgetapi

import (
	"encoding/json"
	"fmt"
	"strings"

	"chat-widget/internal/domain"
)

const statusError = "error"

// DecodeError reports a reply whose shape matches none of the expected
// variants.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return "widgetapi: malformed reply: " + e.Reason
	}
	return fmt.Sprintf("widgetapi: malformed reply: %s: %v", e.Reason, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// chatReplyWire mirrors every field the chat endpoint may send.
type chatReplyWire struct {
	Status         string   `json:"status"`
	Intent         *string  `json:"intent"`
	AvailableSlots []string `json:"available_slots"`
	Date           *string  `json:"date"`
	Answer         *string  `json:"answer"`
	Message        *string  `json:"message"`
}

// DecodeChatReply validates a chat endpoint payload. Variants are checked in
// order: contact intent, slot offer, answer. An error-status reply carrying a
// message is surfaced as an answer so the user sees the server's explanation.
func DecodeChatReply(raw []byte) (domain.ChatReply, error) {
	var w chatReplyWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return domain.ChatReply{}, &DecodeError{Reason: "invalid JSON", Err: err}
	}

	if w.Intent != nil && *w.Intent == domain.IntentContactCollection {
		return domain.ContactIntentReply(), nil
	}
	if len(w.AvailableSlots) > 0 {
		if w.Date == nil || strings.TrimSpace(*w.Date) == "" {
			return domain.ChatReply{}, &DecodeError{Reason: "slot offer without date"}
		}
		slots := make([]string, len(w.AvailableSlots))
		copy(slots, w.AvailableSlots)
		return domain.SlotOfferReply(*w.Date, slots), nil
	}
	if w.Answer != nil {
		return domain.AnswerReply(*w.Answer), nil
	}
	if w.Status == statusError && w.Message != nil {
		return domain.AnswerReply(*w.Message), nil
	}
	return domain.ChatReply{}, &DecodeError{Reason: "no answer, intent or slot offer"}
}

// DecodeSubmitReply validates a contact or appointment endpoint payload.
func DecodeSubmitReply(raw []byte) (domain.SubmitReply, error) {
	var w struct {
		Status  string  `json:"status"`
		Message *string `json:"message"`
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return domain.SubmitReply{}, &DecodeError{Reason: "invalid JSON", Err: err}
	}
	if w.Message == nil {
		return domain.SubmitReply{}, &DecodeError{Reason: "missing message"}
	}
	return domain.SubmitReply{Status: w.Status, Message: *w.Message}, nil
}
