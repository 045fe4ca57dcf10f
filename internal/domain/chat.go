package domain

// Sender identifies who authored a transcript entry.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// ChatMessage is a single transcript entry. It lives only as long as the
// widget session and is never persisted.
type ChatMessage struct {
	Sender Sender `json:"sender"`
	Text   string `json:"text"`
}
