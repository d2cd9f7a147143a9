package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bnema/support-chat-cli/internal/domain"
	"github.com/bnema/support-chat-cli/internal/ports"
	"github.com/rs/zerolog"
)

const (
	DefaultPollDelay = 2 * time.Second
	DefaultPollLimit = 10

	sendFailureText = "Sorry, your message could not be delivered to support. Please try again."
	pollFailureText = "Sorry, we could not check for new replies. Please try again shortly."
)

type ConversationState string

const (
	StateIdle          ConversationState = "idle"
	StateSending       ConversationState = "sending"
	StateAwaitingReply ConversationState = "awaiting_reply"
)

// GuestIdentity supplies the sender identity for outgoing messages.
type GuestIdentity interface {
	GetOrCreateGuestID(ctx context.Context) string
}

type ConversationOptions struct {
	PollDelay  time.Duration
	PollLimit  int
	Reconciler Reconciler
	Clock      ports.Clock
	IDs        ports.IDGenerator
	Log        zerolog.Logger
}

// ConversationController drives the send and poll cycle for each session.
type ConversationController struct {
	store      *SessionStore
	api        ports.SupportAPI
	identity   GuestIdentity
	reconciler Reconciler
	clock      ports.Clock
	ids        ports.IDGenerator
	log        zerolog.Logger
	pollDelay  time.Duration
	pollLimit  int
	sleep      func(ctx context.Context, d time.Duration) error

	mu       sync.Mutex
	sending  map[domain.ClientID]bool
	awaiting map[domain.ClientID]int
}

func NewConversationController(store *SessionStore, api ports.SupportAPI, identity GuestIdentity, opts ConversationOptions) *ConversationController {
	if opts.Clock == nil {
		opts.Clock = ports.SystemClock{}
	}
	if opts.IDs == nil {
		opts.IDs = ports.UUIDGenerator{}
	}
	if opts.PollDelay < 0 {
		opts.PollDelay = DefaultPollDelay
	}
	if opts.PollLimit <= 0 {
		opts.PollLimit = DefaultPollLimit
	}
	if opts.Reconciler.AgentName == nil {
		opts.Reconciler = NewReconciler(opts.Reconciler.AgentName, opts.Clock)
	}

	return &ConversationController{
		store:      store,
		api:        api,
		identity:   identity,
		reconciler: opts.Reconciler,
		clock:      opts.Clock,
		ids:        opts.IDs,
		log:        opts.Log,
		pollDelay:  opts.PollDelay,
		pollLimit:  opts.PollLimit,
		sleep:      sleepContext,
		sending:    map[domain.ClientID]bool{},
		awaiting:   map[domain.ClientID]int{},
	}
}

func (c *ConversationController) State(id domain.ClientID) ConversationState {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.stateLocked(id)
}

// SendMessage submits text on the session, creating its ticket on first use,
// then polls once for a reply. The user message is kept even when delivery
// fails. Blank text and a send already in flight are rejected without any
// state change.
func (c *ConversationController) SendMessage(ctx context.Context, id domain.ClientID, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.ErrEmptyMessage
	}
	if _, ok := c.store.Session(id); !ok {
		return domain.ErrSessionNotFound
	}
	if !c.beginSend(ctx, id) {
		return domain.ErrSessionBusy
	}

	userMessage := domain.Message{
		ID:        domain.MessageID(c.ids.NewID()),
		Sender:    domain.SenderUser,
		Text:      text,
		Timestamp: c.clock.Now(),
	}
	if err := c.store.AppendMessage(ctx, id, userMessage); err != nil {
		c.endSend(ctx, id, false)
		return fmt.Errorf("append user message: %w", err)
	}

	ticketID, err := c.submit(ctx, id, text)
	if err != nil {
		c.log.Warn().Err(err).Str("client_id", string(id)).Msg("send message failed")
		c.reportFailure(ctx, id, sendFailureText, true)
		c.endSend(ctx, id, false)
		return fmt.Errorf("send message: %w", err)
	}

	c.endSend(ctx, id, true)
	defer c.endAwait(ctx, id)

	if ticketID == "" {
		return nil
	}

	return c.PollForReply(ctx, id, ticketID)
}

// PollForReply waits out the quiescence delay, then pulls recent ticket
// messages and the current assignment into the session.
func (c *ConversationController) PollForReply(ctx context.Context, id domain.ClientID, ticketID domain.TicketID) error {
	if err := c.sleep(ctx, c.pollDelay); err != nil {
		return err
	}

	remote, listErr := c.api.ListMessages(ctx, ticketID, c.pollLimit)
	assignment, ticketErr := c.api.GetTicket(ctx, ticketID)

	session, ok := c.store.Session(id)
	if !ok {
		return nil
	}

	if listErr == nil {
		incoming := c.reconciler.AgentMessages(remote, assignment.AssignedAgent, session.CurrentAgent)
		added, err := c.store.MergeMessages(ctx, id, incoming)
		if err != nil {
			return fmt.Errorf("merge replies: %w", err)
		}
		c.log.Debug().Str("client_id", string(id)).Int("fetched", len(remote)).Int("added", added).Msg("poll merged replies")
	}

	if ticketErr == nil && assignment.AssignedAgent != "" {
		if err := c.store.UpdateSession(ctx, id, domain.SessionPatch{CurrentAgent: domain.Ptr(assignment.AssignedAgent)}); err != nil {
			return fmt.Errorf("update current agent: %w", err)
		}
	}

	if err := errors.Join(listErr, ticketErr); err != nil {
		c.log.Warn().Err(err).Str("client_id", string(id)).Str("ticket_id", string(ticketID)).Msg("poll for reply failed")
		c.reportFailure(ctx, id, pollFailureText, false)
		return fmt.Errorf("poll for reply: %w", err)
	}

	return nil
}

// submit creates the ticket or appends to it and returns the ticket id the
// session ends up with.
func (c *ConversationController) submit(ctx context.Context, id domain.ClientID, text string) (domain.TicketID, error) {
	session, ok := c.store.Session(id)
	if !ok {
		return "", nil
	}

	guestID := c.identity.GetOrCreateGuestID(ctx)
	metadata := ports.TicketMetadata{ClientUserID: guestID, ChatClientID: id}

	if session.HasTicket() {
		err := c.api.AppendMessage(ctx, ports.AppendMessageRequest{
			TicketID: session.TicketID,
			SenderID: guestID,
			Content:  text,
			Metadata: metadata,
		})
		if err != nil {
			return "", err
		}
		return session.TicketID, nil
	}

	created, err := c.api.CreateTicket(ctx, ports.CreateTicketRequest{
		Content:  text,
		UserID:   guestID,
		Metadata: metadata,
	})
	if err != nil {
		return "", err
	}
	if created.TicketID == "" {
		return "", &domain.TransportError{Op: "create ticket", Err: errors.New("response missing ticket id")}
	}

	patch := domain.SessionPatch{
		TicketID: domain.Ptr(created.TicketID),
		Title:    domain.Ptr(domain.DeriveTitle(text)),
	}
	if created.AssignedAgent != "" {
		patch.CurrentAgent = domain.Ptr(created.AssignedAgent)
	}
	if err := c.store.UpdateSession(ctx, id, patch); err != nil && !errors.Is(err, domain.ErrTicketAlreadyAssigned) {
		return "", fmt.Errorf("record ticket: %w", err)
	}

	current, ok := c.store.Session(id)
	if !ok {
		return "", nil
	}
	return current.TicketID, nil
}

func (c *ConversationController) reportFailure(ctx context.Context, id domain.ClientID, text string, markAgent bool) {
	notice := domain.NewSystemMessage(domain.MessageID(c.ids.NewID()), text, c.clock.Now())
	if err := c.store.AppendMessage(ctx, id, notice); err != nil {
		c.log.Warn().Err(err).Msg("append failure notice failed")
	}
	if !markAgent {
		return
	}
	if err := c.store.UpdateSession(ctx, id, domain.SessionPatch{CurrentAgent: domain.Ptr(domain.ErrorAgentMarker)}); err != nil {
		c.log.Warn().Err(err).Msg("mark session agent as failed")
	}
}

func (c *ConversationController) beginSend(ctx context.Context, id domain.ClientID) bool {
	c.mu.Lock()
	if c.sending[id] {
		c.mu.Unlock()
		return false
	}
	c.sending[id] = true
	c.mu.Unlock()

	c.syncLoading(ctx, id)
	return true
}

func (c *ConversationController) endSend(ctx context.Context, id domain.ClientID, awaitReply bool) {
	c.mu.Lock()
	delete(c.sending, id)
	if awaitReply {
		c.awaiting[id]++
	}
	c.mu.Unlock()

	c.syncLoading(ctx, id)
}

func (c *ConversationController) endAwait(ctx context.Context, id domain.ClientID) {
	c.mu.Lock()
	if c.awaiting[id] <= 1 {
		delete(c.awaiting, id)
	} else {
		c.awaiting[id]--
	}
	c.mu.Unlock()

	c.syncLoading(ctx, id)
}

// syncLoading mirrors the conversation state into the session's loading flag.
func (c *ConversationController) syncLoading(ctx context.Context, id domain.ClientID) {
	loading := c.State(id) != StateIdle
	session, ok := c.store.Session(id)
	if !ok || session.IsLoading == loading {
		return
	}
	if err := c.store.UpdateSession(ctx, id, domain.SessionPatch{IsLoading: domain.Ptr(loading)}); err != nil {
		c.log.Warn().Err(err).Msg("update loading flag")
	}
}

func (c *ConversationController) stateLocked(id domain.ClientID) ConversationState {
	switch {
	case c.sending[id]:
		return StateSending
	case c.awaiting[id] > 0:
		return StateAwaitingReply
	default:
		return StateIdle
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
