package models

const (
	NegotiationActive    = "active"
	NegotiationCompleted = "completed"

	SpeakerOne = "user1"
	SpeakerTwo = "user2"
)

// Message is one turn of a negotiation. The service has been seen to send
// the body as either "message" or "text". Timestamp is kept as sent since
// its format is not stable.
type Message struct {
	Speaker   string `json:"speaker"`
	Message   string `json:"message,omitempty"`
	Text      string `json:"text,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

func (m Message) Body() string {
	if m.Message != "" {
		return m.Message
	}
	return m.Text
}

type Verdict struct {
	Summary    string `json:"summary"`
	Compromise string `json:"compromise"`
}

type Negotiation struct {
	ID       string    `json:"negotiation_id"`
	Status   string    `json:"status"`
	Messages []Message `json:"messages"`
	Verdict  *Verdict  `json:"verdict,omitempty"`
}

func (n *Negotiation) Completed() bool {
	return n != nil && n.Status == NegotiationCompleted
}

// HasVerdict is the condition that ends verdict polling.
func (n *Negotiation) HasVerdict() bool {
	return n.Completed() && n.Verdict != nil
}

// NextSpeaker alternates between the two parties, starting with user1.
func (n *Negotiation) NextSpeaker() string {
	if n == nil || len(n.Messages) == 0 {
		return SpeakerOne
	}
	if n.Messages[len(n.Messages)-1].Speaker == SpeakerOne {
		return SpeakerTwo
	}
	return SpeakerOne
}

// Topic is the first message, cut to 50 characters.
func (n *Negotiation) Topic() string {
	if n == nil || len(n.Messages) == 0 {
		return "No messages"
	}
	first := []rune(n.Messages[0].Body())
	if len(first) > 50 {
		return string(first[:50]) + "..."
	}
	return string(first)
}

type NegotiateRequest struct {
	NegotiationID string `json:"negotiation_id,omitempty"`
	Speaker       string `json:"speaker"`
	Message       string `json:"message"`
}

type NegotiateResponse struct {
	NegotiationID string   `json:"negotiation_id"`
	Status        string   `json:"status"`
	Verdict       *Verdict `json:"verdict,omitempty"`
}
