package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var epoch = time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)

func ids(messages []Message) []MessageID {
	out := make([]MessageID, 0, len(messages))
	for _, message := range messages {
		out = append(out, message.ID)
	}
	return out
}

func agentMessage(id string, at time.Time) Message {
	return Message{ID: MessageID(id), Sender: SenderAgent, Text: id, Timestamp: at}
}

func TestMergeMessages(t *testing.T) {
	t.Parallel()

	welcome := NewWelcomeMessage(epoch)

	tests := []struct {
		name     string
		existing []Message
		incoming []Message
		want     []MessageID
	}{
		{
			name:     "appends new in timestamp order",
			existing: []Message{welcome},
			incoming: []Message{agentMessage("m2", epoch.Add(2*time.Second)), agentMessage("m1", epoch.Add(time.Second))},
			want:     []MessageID{WelcomeMessageID, "m1", "m2"},
		},
		{
			name:     "skips known ids",
			existing: []Message{welcome, agentMessage("m1", epoch.Add(time.Second))},
			incoming: []Message{agentMessage("m1", epoch.Add(time.Hour)), agentMessage("m2", epoch.Add(2*time.Second))},
			want:     []MessageID{WelcomeMessageID, "m1", "m2"},
		},
		{
			name:     "deduplicates within a batch",
			existing: []Message{welcome},
			incoming: []Message{agentMessage("m1", epoch.Add(time.Second)), agentMessage("m1", epoch.Add(time.Second))},
			want:     []MessageID{WelcomeMessageID, "m1"},
		},
		{
			name:     "ties keep existing before incoming",
			existing: []Message{welcome, agentMessage("local", epoch.Add(time.Second))},
			incoming: []Message{agentMessage("remote", epoch.Add(time.Second))},
			want:     []MessageID{WelcomeMessageID, "local", "remote"},
		},
		{
			name:     "welcome stays first when server clock lags",
			existing: []Message{welcome},
			incoming: []Message{agentMessage("early", epoch.Add(-time.Hour))},
			want:     []MessageID{WelcomeMessageID, "early"},
		},
		{
			name:     "empty batch is a no-op",
			existing: []Message{welcome},
			want:     []MessageID{WelcomeMessageID},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			before := append([]Message(nil), tt.existing...)
			merged := MergeMessages(tt.existing, tt.incoming)

			assert.Equal(t, tt.want, ids(merged))
			assert.Equal(t, before, tt.existing)
			assert.Equal(t, merged, MergeMessages(merged, tt.incoming))
		})
	}
}

func TestNewSystemMessage(t *testing.T) {
	t.Parallel()

	message := NewSystemMessage("e1", "delivery failed", epoch)

	assert.Equal(t, SenderAgent, message.Sender)
	assert.Equal(t, SystemAgentName, message.AgentName)
	assert.Equal(t, "delivery failed", message.Text)
}

func TestSenderValid(t *testing.T) {
	t.Parallel()

	assert.True(t, SenderUser.Valid())
	assert.True(t, SenderAgent.Valid())
	assert.False(t, Sender("bot").Valid())
}
