package application

import (
	"strings"
	"time"

	"github.com/bnema/support-chat-cli/internal/domain"
	"github.com/bnema/support-chat-cli/internal/ports"
)

const (
	remoteSenderUser     = "user"
	metadataAgentNameKey = "agent_name"
)

// AgentNameSource picks the display name for an agent-authored message from
// the message itself or the ticket assignment.
type AgentNameSource func(remote ports.RemoteMessage, assignedAgent string) string

func AgentNameFromMetadata(remote ports.RemoteMessage, _ string) string {
	return strings.TrimSpace(remote.Metadata[metadataAgentNameKey])
}

func AgentNameFromAssignment(_ ports.RemoteMessage, assignedAgent string) string {
	return strings.TrimSpace(assignedAgent)
}

// AgentNameFromMetadataOrAssignment prefers per-message metadata.
func AgentNameFromMetadataOrAssignment(remote ports.RemoteMessage, assignedAgent string) string {
	if name := AgentNameFromMetadata(remote, assignedAgent); name != "" {
		return name
	}
	return AgentNameFromAssignment(remote, assignedAgent)
}

type Reconciler struct {
	AgentName AgentNameSource
	Clock     ports.Clock
}

func NewReconciler(agentName AgentNameSource, clock ports.Clock) Reconciler {
	if agentName == nil {
		agentName = AgentNameFromMetadataOrAssignment
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return Reconciler{AgentName: agentName, Clock: clock}
}

// AgentMessages converts the agent-authored part of a backend batch into
// domain messages. fallbackAgent names messages no source could attribute.
func (r Reconciler) AgentMessages(remote []ports.RemoteMessage, assignedAgent string, fallbackAgent string) []domain.Message {
	fetchedAt := r.now()
	messages := make([]domain.Message, 0, len(remote))

	for _, item := range remote {
		if strings.EqualFold(item.SenderType, remoteSenderUser) || strings.TrimSpace(item.ID) == "" {
			continue
		}

		name := r.agentName(item, assignedAgent)
		if name == "" {
			name = fallbackAgent
		}

		messages = append(messages, domain.Message{
			ID:        domain.MessageID(item.ID),
			Sender:    domain.SenderAgent,
			Text:      item.Content,
			AgentName: name,
			Timestamp: parseServerTimestamp(item.Timestamp, fetchedAt),
		})
	}

	return messages
}

// Merge reconciles a backend batch against existing history.
func (r Reconciler) Merge(existing []domain.Message, remote []ports.RemoteMessage, assignedAgent string, fallbackAgent string) []domain.Message {
	return domain.MergeMessages(existing, r.AgentMessages(remote, assignedAgent, fallbackAgent))
}

func (r Reconciler) agentName(remote ports.RemoteMessage, assignedAgent string) string {
	if r.AgentName == nil {
		return AgentNameFromMetadataOrAssignment(remote, assignedAgent)
	}
	return r.AgentName(remote, assignedAgent)
}

func (r Reconciler) now() time.Time {
	if r.Clock == nil {
		return time.Now().UTC()
	}
	return r.Clock.Now()
}

var serverTimestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// parseServerTimestamp accepts RFC 3339 and zone-less ISO-8601 (read as UTC).
// Unparseable values fall back so the message is still kept.
func parseServerTimestamp(raw string, fallback time.Time) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}

	for _, layout := range serverTimestampLayouts {
		if parsed, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return parsed.UTC()
		}
	}

	return fallback
}
