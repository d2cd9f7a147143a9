package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/support-chat-cli/internal/domain"
	"github.com/bnema/support-chat-cli/internal/ports"
	"github.com/rs/zerolog"
)

const DefaultLinkStatusTTL = 5 * time.Second

var ErrUnsupportedChannel = errors.New("unsupported contact channel")

type LinkingOptions struct {
	StatusTTL time.Duration
	// AfterFunc schedules the status reset; time.AfterFunc when nil.
	AfterFunc func(d time.Duration, f func())
	Log       zerolog.Logger
}

// LinkingCoordinator attaches a contact channel to a session's ticket. Its
// status text is display-only and never touches the conversation.
type LinkingCoordinator struct {
	store     *SessionStore
	linker    ports.ContactLinker
	prompter  ports.ContactPrompter
	statusTTL time.Duration
	afterFunc func(d time.Duration, f func())
	log       zerolog.Logger
}

func NewLinkingCoordinator(store *SessionStore, linker ports.ContactLinker, prompter ports.ContactPrompter, opts LinkingOptions) *LinkingCoordinator {
	if opts.StatusTTL <= 0 {
		opts.StatusTTL = DefaultLinkStatusTTL
	}
	if opts.AfterFunc == nil {
		opts.AfterFunc = func(d time.Duration, f func()) { time.AfterFunc(d, f) }
	}

	return &LinkingCoordinator{
		store:     store,
		linker:    linker,
		prompter:  prompter,
		statusTTL: opts.StatusTTL,
		afterFunc: opts.AfterFunc,
		log:       opts.Log,
	}
}

// LinkTicket asks the user for a channel identifier and links it to the
// session's ticket. A pending backend is reported through the status text,
// not as an error. An empty identifier cancels without any change.
func (l *LinkingCoordinator) LinkTicket(ctx context.Context, id domain.ClientID, channel ports.ChannelType) error {
	if !channel.Valid() {
		return fmt.Errorf("%w: %q", ErrUnsupportedChannel, channel)
	}

	session, ok := l.store.Session(id)
	if !ok {
		return domain.ErrSessionNotFound
	}
	if !session.HasTicket() {
		return domain.ErrNoTicket
	}
	if session.IsLinking {
		return domain.ErrLinkInProgress
	}

	identifier, err := l.prompter.PromptIdentifier(ctx, channel)
	if err != nil {
		return fmt.Errorf("prompt %s identifier: %w", channel, err)
	}
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil
	}

	claim := domain.SessionPatch{
		IsLinking:  domain.Ptr(true),
		LinkStatus: domain.Ptr(fmt.Sprintf("Linking %s to ticket %s...", channel, session.TicketID)),
	}
	err = l.store.UpdateSessionWhen(ctx, id, func(current domain.ChatSession) bool {
		return current.HasTicket() && !current.IsLinking
	}, claim)
	if errors.Is(err, errConditionNotMet) {
		return domain.ErrLinkInProgress
	}
	if err != nil {
		return fmt.Errorf("mark session linking: %w", err)
	}

	linkErr := l.linker.LinkContact(ctx, session.TicketID, channel, identifier)

	var status string
	switch {
	case linkErr == nil:
		status = fmt.Sprintf("Your %s is now linked to ticket %s.", channel, session.TicketID)
	case errors.Is(linkErr, domain.ErrLinkingUnavailable):
		status = fmt.Sprintf("Linking %s is pending; we will connect it once available.", channel)
	default:
		l.log.Warn().Err(linkErr).Str("client_id", string(id)).Str("channel", string(channel)).Msg("link contact failed")
		status = fmt.Sprintf("Could not link your %s. Please try again later.", channel)
	}

	if err := l.store.UpdateSession(ctx, id, domain.SessionPatch{
		IsLinking:  domain.Ptr(false),
		LinkStatus: domain.Ptr(status),
	}); err != nil {
		return fmt.Errorf("record link status: %w", err)
	}

	l.afterFunc(l.statusTTL, func() {
		l.clearStatus(id, status)
	})

	if linkErr != nil && !errors.Is(linkErr, domain.ErrLinkingUnavailable) {
		return fmt.Errorf("link %s: %w", channel, linkErr)
	}

	return nil
}

// clearStatus drops the terminal status unless a newer link replaced it.
func (l *LinkingCoordinator) clearStatus(id domain.ClientID, status string) {
	err := l.store.UpdateSessionWhen(context.Background(), id, func(current domain.ChatSession) bool {
		return !current.IsLinking && current.LinkStatus == status
	}, domain.SessionPatch{LinkStatus: domain.Ptr("")})
	if err != nil && !errors.Is(err, errConditionNotMet) {
		l.log.Warn().Err(err).Msg("clear link status")
	}
}
