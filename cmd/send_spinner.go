package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/bnema/support-chat-cli/internal/application"
	"github.com/bnema/support-chat-cli/internal/domain"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type chatWorkDoneMsg struct {
	err error
}

type chatWorkLabelMsg string

type chatWorkSpinnerModel struct {
	spinner spinner.Model
	label   string
	work    tea.Cmd
	err     error
	done    bool
}

func newChatWorkSpinnerModel(label string, work tea.Cmd) chatWorkSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return chatWorkSpinnerModel{
		spinner: s,
		label:   label,
		work:    work,
	}
}

func (m chatWorkSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.work)
}

func (m chatWorkSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case chatWorkLabelMsg:
		m.label = string(msg)
		return m, nil
	case chatWorkDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m chatWorkSpinnerModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
}

// runChatSpinner runs work behind a spinner whose label follows the
// conversation state of session id.
func runChatSpinner(ctx context.Context, output io.Writer, app *app, id domain.ClientID, label string, work func(context.Context) error) error {
	workCmd := func() tea.Msg {
		return chatWorkDoneMsg{err: work(ctx)}
	}

	p := tea.NewProgram(
		newChatWorkSpinnerModel(label, workCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	unsubscribe := app.store.Subscribe(func(snapshot domain.SessionCollection) {
		session, ok := snapshot.Sessions[id]
		if !ok {
			return
		}
		if next := spinnerLabel(app.controller.State(id), session, label); next != "" {
			p.Send(chatWorkLabelMsg(next))
		}
	})
	defer unsubscribe()

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(chatWorkSpinnerModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.err
}

func spinnerLabel(state application.ConversationState, session domain.ChatSession, fallback string) string {
	switch state {
	case application.StateSending:
		return "Sending message..."
	case application.StateAwaitingReply:
		return fmt.Sprintf("Waiting for %s to reply...", session.CurrentAgent)
	default:
		return fallback
	}
}
