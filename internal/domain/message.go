package domain

import (
	"sort"
	"time"
)

type MessageID string

type Sender string

const (
	SenderUser  Sender = "user"
	SenderAgent Sender = "agent"
)

const (
	// WelcomeMessageID identifies the greeting every session starts with.
	WelcomeMessageID MessageID = "welcome"

	InitialAgentName = "TriageAgent"
	SystemAgentName  = "System"
	ErrorAgentMarker = "Error"

	WelcomeText = "Hello! Thanks for reaching out to support. How can we help you today?"
)

type Message struct {
	ID        MessageID
	Sender    Sender
	Text      string
	AgentName string
	Timestamp time.Time
}

func (s Sender) Valid() bool {
	switch s {
	case SenderUser, SenderAgent:
		return true
	default:
		return false
	}
}

func NewWelcomeMessage(at time.Time) Message {
	return Message{
		ID:        WelcomeMessageID,
		Sender:    SenderAgent,
		Text:      WelcomeText,
		AgentName: InitialAgentName,
		Timestamp: at,
	}
}

// NewSystemMessage builds an agent-side notice authored by the system, used
// to surface transport failures inside the conversation.
func NewSystemMessage(id MessageID, text string, at time.Time) Message {
	return Message{
		ID:        id,
		Sender:    SenderAgent,
		Text:      text,
		AgentName: SystemAgentName,
		Timestamp: at,
	}
}

// SortMessages orders messages by timestamp with the welcome message pinned
// first. Equal timestamps keep their relative order.
func SortMessages(messages []Message) {
	sort.SliceStable(messages, func(i, j int) bool {
		if messages[j].ID == WelcomeMessageID {
			return false
		}
		if messages[i].ID == WelcomeMessageID {
			return true
		}
		return messages[i].Timestamp.Before(messages[j].Timestamp)
	})
}

// MergeMessages appends the incoming messages whose id is not already known
// and returns the chronologically sorted result. Existing messages precede
// incoming ones sharing a timestamp. Neither input is modified.
func MergeMessages(existing []Message, incoming []Message) []Message {
	merged := make([]Message, 0, len(existing)+len(incoming))
	seen := make(map[MessageID]struct{}, len(existing)+len(incoming))

	for _, message := range existing {
		if _, ok := seen[message.ID]; ok {
			continue
		}
		seen[message.ID] = struct{}{}
		merged = append(merged, message)
	}

	for _, message := range incoming {
		if _, ok := seen[message.ID]; ok {
			continue
		}
		seen[message.ID] = struct{}{}
		merged = append(merged, message)
	}

	SortMessages(merged)

	return merged
}
