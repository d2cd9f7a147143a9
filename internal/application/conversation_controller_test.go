package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bnema/support-chat-cli/internal/domain"
	"github.com/bnema/support-chat-cli/internal/ports"
	"github.com/bnema/support-chat-cli/internal/ports/mocks"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticIdentity string

func (s staticIdentity) GetOrCreateGuestID(context.Context) string {
	return string(s)
}

func newTestController(t *testing.T, store *SessionStore, api ports.SupportAPI) *ConversationController {
	t.Helper()

	clock := newStepClock()
	return NewConversationController(store, api, staticIdentity("guest_1"), ConversationOptions{
		PollDelay:  0,
		PollLimit:  10,
		Reconciler: NewReconciler(nil, clock),
		Clock:      clock,
		IDs:        newSequenceIDs("m-local-"),
		Log:        zerolog.Nop(),
	})
}

func messageIDs(messages []domain.Message) []domain.MessageID {
	ids := make([]domain.MessageID, 0, len(messages))
	for _, message := range messages {
		ids = append(ids, message.ID)
	}
	return ids
}

func TestSendMessageCreatesTicketAndPollsReply(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t, &memoryRepository{})
	api := mocks.NewMockSupportAPI(t)
	controller := newTestController(t, store, api)

	api.EXPECT().CreateTicket(mockAnyContext(), ports.CreateTicketRequest{
		Content:  "Hello",
		UserID:   "guest_1",
		Metadata: ports.TicketMetadata{ClientUserID: "guest_1", ChatClientID: "c1"},
	}).Return(ports.CreateTicketResult{TicketID: "T1", AssignedAgent: "TriageAgent"}, nil).Once()
	api.EXPECT().ListMessages(mockAnyContext(), domain.TicketID("T1"), 10).Return([]ports.RemoteMessage{
		{ID: "r-user", SenderType: "user", Content: "Hello", Timestamp: "2026-02-14T11:00:01Z"},
		{ID: "m1", SenderType: "agent", Content: "Hi, how can I help?", Timestamp: "2026-02-14T11:00:30Z"},
	}, nil).Once()
	api.EXPECT().GetTicket(mockAnyContext(), domain.TicketID("T1")).Return(ports.TicketAssignment{AssignedAgent: "TriageAgent"}, nil).Once()

	require.NoError(t, controller.SendMessage(ctx, "c1", "  Hello  "))

	session, ok := store.Session("c1")
	require.True(t, ok)
	assert.Equal(t, domain.TicketID("T1"), session.TicketID)
	assert.Equal(t, "Hello", session.Title)
	assert.Equal(t, "TriageAgent", session.CurrentAgent)
	assert.False(t, session.IsLoading)
	assert.Equal(t, StateIdle, controller.State("c1"))

	require.Len(t, session.Messages, 3)
	assert.Equal(t, domain.WelcomeMessageID, session.Messages[0].ID)
	assert.Equal(t, domain.SenderUser, session.Messages[1].Sender)
	assert.Equal(t, "Hello", session.Messages[1].Text)
	assert.Equal(t, domain.MessageID("m1"), session.Messages[2].ID)
	assert.Equal(t, "TriageAgent", session.Messages[2].AgentName)
	assert.Equal(t, time.Date(2026, 2, 14, 11, 0, 30, 0, time.UTC), session.Messages[2].Timestamp)
}

func TestSendMessageAppendsToExistingTicket(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t, &memoryRepository{})
	require.NoError(t, store.UpdateSession(ctx, "c1", domain.SessionPatch{
		TicketID: domain.Ptr(domain.TicketID("T1")),
		Title:    domain.Ptr("Original question"),
	}))
	api := mocks.NewMockSupportAPI(t)
	controller := newTestController(t, store, api)

	api.EXPECT().AppendMessage(mockAnyContext(), ports.AppendMessageRequest{
		TicketID: "T1",
		SenderID: "guest_1",
		Content:  "Any update?",
		Metadata: ports.TicketMetadata{ClientUserID: "guest_1", ChatClientID: "c1"},
	}).Return(nil).Once()
	api.EXPECT().ListMessages(mockAnyContext(), domain.TicketID("T1"), 10).Return(nil, nil).Once()
	api.EXPECT().GetTicket(mockAnyContext(), domain.TicketID("T1")).Return(ports.TicketAssignment{AssignedAgent: "BillingAgent"}, nil).Once()

	require.NoError(t, controller.SendMessage(ctx, "c1", "Any update?"))

	session, _ := store.Session("c1")
	assert.Equal(t, "Original question", session.Title)
	assert.Equal(t, "BillingAgent", session.CurrentAgent)
	assert.Len(t, session.Messages, 2)
}

func TestSendMessageRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t, &memoryRepository{})
	controller := newTestController(t, store, mocks.NewMockSupportAPI(t))
	before := store.Snapshot()

	require.ErrorIs(t, controller.SendMessage(ctx, "c1", "   \n\t"), domain.ErrEmptyMessage)
	require.ErrorIs(t, controller.SendMessage(ctx, "missing", "Hello"), domain.ErrSessionNotFound)
	assert.Equal(t, before, store.Snapshot())
}

func TestSendMessageRejectsSecondSendWhileSending(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t, &memoryRepository{})
	api := mocks.NewMockSupportAPI(t)
	controller := newTestController(t, store, api)

	started := make(chan struct{})
	release := make(chan struct{})
	api.EXPECT().CreateTicket(mockAnyContext(), mockAnyContext()).
		RunAndReturn(func(context.Context, ports.CreateTicketRequest) (ports.CreateTicketResult, error) {
			close(started)
			<-release
			return ports.CreateTicketResult{TicketID: "T1"}, nil
		}).Once()
	api.EXPECT().ListMessages(mockAnyContext(), domain.TicketID("T1"), 10).Return(nil, nil).Once()
	api.EXPECT().GetTicket(mockAnyContext(), domain.TicketID("T1")).Return(ports.TicketAssignment{}, nil).Once()

	done := make(chan error, 1)
	go func() {
		done <- controller.SendMessage(ctx, "c1", "Hello")
	}()
	<-started

	assert.Equal(t, StateSending, controller.State("c1"))
	inFlight, _ := store.Session("c1")
	assert.True(t, inFlight.IsLoading)

	require.ErrorIs(t, controller.SendMessage(ctx, "c1", "Hello again"), domain.ErrSessionBusy)

	close(release)
	require.NoError(t, <-done)

	session, _ := store.Session("c1")
	assert.Len(t, session.Messages, 2)
	assert.Equal(t, domain.TicketID("T1"), session.TicketID)
	assert.Equal(t, domain.InitialAgentName, session.CurrentAgent)
	assert.Equal(t, StateIdle, controller.State("c1"))
}

func TestSendMessageReportsTransportFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t, &memoryRepository{})
	api := mocks.NewMockSupportAPI(t)
	controller := newTestController(t, store, api)

	transportErr := &domain.TransportError{Op: "create ticket", StatusCode: 503}
	api.EXPECT().CreateTicket(mockAnyContext(), mockAnyContext()).Return(ports.CreateTicketResult{}, transportErr).Once()

	err := controller.SendMessage(ctx, "c1", "Hello")

	var gotTransport *domain.TransportError
	require.ErrorAs(t, err, &gotTransport)
	assert.Equal(t, 503, gotTransport.StatusCode)

	session, _ := store.Session("c1")
	assert.Empty(t, session.TicketID)
	assert.Equal(t, domain.DefaultSessionTitle, session.Title)
	assert.Equal(t, domain.ErrorAgentMarker, session.CurrentAgent)
	assert.False(t, session.IsLoading)
	require.Len(t, session.Messages, 3)
	assert.Equal(t, "Hello", session.Messages[1].Text)
	assert.Equal(t, domain.SenderUser, session.Messages[1].Sender)
	assert.Equal(t, domain.SystemAgentName, session.Messages[2].AgentName)
	assert.Equal(t, StateIdle, controller.State("c1"))
}

func TestSendMessageTreatsMissingTicketIDAsFailure(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, &memoryRepository{})
	api := mocks.NewMockSupportAPI(t)
	controller := newTestController(t, store, api)

	api.EXPECT().CreateTicket(mockAnyContext(), mockAnyContext()).Return(ports.CreateTicketResult{AssignedAgent: "TriageAgent"}, nil).Once()

	err := controller.SendMessage(context.Background(), "c1", "Hello")

	var transportErr *domain.TransportError
	require.ErrorAs(t, err, &transportErr)
	session, _ := store.Session("c1")
	assert.Empty(t, session.TicketID)
	assert.Equal(t, domain.ErrorAgentMarker, session.CurrentAgent)
}

func TestSendMessageDerivesTruncatedTitle(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, &memoryRepository{})
	api := mocks.NewMockSupportAPI(t)
	controller := newTestController(t, store, api)
	text := strings.Repeat("a", 40)

	api.EXPECT().CreateTicket(mockAnyContext(), mockAnyContext()).Return(ports.CreateTicketResult{TicketID: "T1"}, nil).Once()
	api.EXPECT().ListMessages(mockAnyContext(), domain.TicketID("T1"), 10).Return(nil, nil).Once()
	api.EXPECT().GetTicket(mockAnyContext(), domain.TicketID("T1")).Return(ports.TicketAssignment{}, nil).Once()

	require.NoError(t, controller.SendMessage(context.Background(), "c1", text))

	session, _ := store.Session("c1")
	assert.Equal(t, strings.Repeat("a", 30)+"...", session.Title)
}

func TestSendMessageDoesNotResurrectDeletedSession(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t, &memoryRepository{})
	store.CreateSession(ctx)
	api := mocks.NewMockSupportAPI(t)
	controller := newTestController(t, store, api)

	api.EXPECT().CreateTicket(mockAnyContext(), mockAnyContext()).
		RunAndReturn(func(context.Context, ports.CreateTicketRequest) (ports.CreateTicketResult, error) {
			require.NoError(t, store.DeleteSession(ctx, "c1"))
			return ports.CreateTicketResult{TicketID: "T1"}, nil
		}).Once()

	require.NoError(t, controller.SendMessage(ctx, "c1", "Hello"))

	snapshot := store.Snapshot()
	assert.NotContains(t, snapshot.Sessions, domain.ClientID("c1"))
	assert.Equal(t, []domain.ClientID{"c2"}, snapshot.Order)
}

func TestPollForReplyMergesIdempotently(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t, &memoryRepository{})
	require.NoError(t, store.UpdateSession(ctx, "c1", domain.SessionPatch{TicketID: domain.Ptr(domain.TicketID("T1"))}))
	api := mocks.NewMockSupportAPI(t)
	controller := newTestController(t, store, api)

	m1 := ports.RemoteMessage{ID: "m1", SenderType: "agent", Content: "one", Timestamp: "2026-02-14T11:01:00Z"}
	m2 := ports.RemoteMessage{ID: "m2", SenderType: "agent", Content: "two", Timestamp: "2026-02-14T11:02:00Z"}
	m3 := ports.RemoteMessage{ID: "m3", SenderType: "agent", Content: "three", Timestamp: "2026-02-14T11:03:00", Metadata: map[string]string{"agent_name": "BillingAgent"}}

	api.EXPECT().ListMessages(mockAnyContext(), domain.TicketID("T1"), 10).Return([]ports.RemoteMessage{m1, m2}, nil).Once()
	api.EXPECT().ListMessages(mockAnyContext(), domain.TicketID("T1"), 10).Return([]ports.RemoteMessage{m2, m3}, nil).Once()
	api.EXPECT().GetTicket(mockAnyContext(), domain.TicketID("T1")).Return(ports.TicketAssignment{AssignedAgent: "TriageAgent"}, nil).Twice()

	require.NoError(t, controller.PollForReply(ctx, "c1", "T1"))
	require.NoError(t, controller.PollForReply(ctx, "c1", "T1"))

	session, _ := store.Session("c1")
	assert.Equal(t, []domain.MessageID{domain.WelcomeMessageID, "m1", "m2", "m3"}, messageIDs(session.Messages))
	assert.Equal(t, "TriageAgent", session.Messages[1].AgentName)
	assert.Equal(t, "BillingAgent", session.Messages[3].AgentName)
}

func TestPollForReplyReportsFailureWithoutMarkingAgent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t, &memoryRepository{})
	require.NoError(t, store.UpdateSession(ctx, "c1", domain.SessionPatch{TicketID: domain.Ptr(domain.TicketID("T1"))}))
	api := mocks.NewMockSupportAPI(t)
	controller := newTestController(t, store, api)

	listErr := &domain.TransportError{Op: "list messages", Err: errors.New("connection refused")}
	api.EXPECT().ListMessages(mockAnyContext(), domain.TicketID("T1"), 10).Return(nil, listErr).Once()
	api.EXPECT().GetTicket(mockAnyContext(), domain.TicketID("T1")).Return(ports.TicketAssignment{}, nil).Once()

	err := controller.PollForReply(ctx, "c1", "T1")
	require.ErrorIs(t, err, listErr)

	session, _ := store.Session("c1")
	assert.Equal(t, domain.InitialAgentName, session.CurrentAgent)
	require.Len(t, session.Messages, 2)
	assert.Equal(t, domain.SystemAgentName, session.Messages[1].AgentName)
}

func TestPollForReplyStopsOnCancelledContext(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, &memoryRepository{})
	controller := newTestController(t, store, mocks.NewMockSupportAPI(t))
	controller.pollDelay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, controller.PollForReply(ctx, "c1", "T1"), context.Canceled)
}
