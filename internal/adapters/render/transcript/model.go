package transcript

import (
	"errors"
	"io"

	"github.com/bnema/support-chat-cli/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

type model struct {
	collection domain.SessionCollection
	opts       RenderOptions
	styles     styles
	output     string
}

func newModel(collection domain.SessionCollection, opts RenderOptions) model {
	return model{
		collection: collection,
		opts:       opts,
		styles:     newStyles(),
	}
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		switch m.opts.Mode {
		case ModeSessions:
			m.output = renderSessions(m.collection, m.opts, m.styles)
		default:
			m.output = renderTranscript(m.collection, m.opts, m.styles)
		}
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

// Render draws either the session list or the active session transcript.
func Render(collection domain.SessionCollection, opts RenderOptions) (string, error) {
	p := tea.NewProgram(
		newModel(collection, opts),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}
