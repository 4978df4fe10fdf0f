// ABOUTME: Bubble Tea model that polls one council session until deliberation finishes
// ABOUTME: Sequential polls on the shared connection; q or Ctrl+C quits early

package watch

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/m0nk111/CouncilOfDicks/internal/council"
)

// DefaultInterval is the delay between session polls.
const DefaultInterval = 2 * time.Second

// SessionGetter is the one call watch mode needs from the client.
type SessionGetter interface {
	GetSession(ctx context.Context, sessionID string) (*council.Session, error)
}

type sessionMsg struct{ session *council.Session }
type pollErrMsg struct{ err error }
type tickMsg struct{}

var (
	watchTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	phaseDoneStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	phaseWaitStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// phases in server order, for progress display.
var phases = []council.SessionStatus{
	council.StatusGatheringResponses,
	council.StatusCommitmentPhase,
	council.StatusRevealPhase,
	council.StatusConsensusReached,
}

// Model watches a single session. Each poll is one synchronous call; the
// next poll is scheduled only after the previous reply arrives, so the
// shared connection never sees concurrent requests.
type Model struct {
	client    SessionGetter
	sessionID string
	interval  time.Duration

	session *council.Session
	err     error
}

// New creates a watch model for the given session.
func New(client SessionGetter, sessionID string, interval time.Duration) Model {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return Model{client: client, sessionID: sessionID, interval: interval}
}

// Init starts the first poll immediately.
func (m Model) Init() tea.Cmd {
	return m.poll()
}

// Update advances the model on poll results, ticks, and key presses.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
		return m, nil

	case sessionMsg:
		m.session = msg.session
		m.err = nil
		if m.session.Status.Terminal() {
			return m, tea.Quit
		}
		return m, m.tick()

	case pollErrMsg:
		m.err = msg.err
		// Transport failures leave the connection unusable; stop watching.
		return m, tea.Quit

	case tickMsg:
		return m, m.poll()
	}
	return m, nil
}

// View renders the deliberation progress.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(watchTitleStyle.Render("Watching session "+m.sessionID) + "\n\n")

	if m.err != nil {
		b.WriteString(errStyle.Render("error: "+m.err.Error()) + "\n")
		return b.String()
	}
	if m.session == nil {
		b.WriteString(phaseWaitStyle.Render("polling...") + "\n")
		return b.String()
	}

	if m.session.Status == council.StatusFailed {
		b.WriteString(errStyle.Render("deliberation failed") + "\n")
		return b.String()
	}

	current := 0
	for i, phase := range phases {
		if phase == m.session.Status {
			current = i
		}
	}
	for i, phase := range phases {
		mark, style := "…", phaseWaitStyle
		switch {
		case i < current || m.session.Status == council.StatusConsensusReached:
			mark, style = "✓", phaseDoneStyle
		case i == current:
			mark = "►"
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", style.Render(mark), phase))
	}

	b.WriteString(fmt.Sprintf("\n  responses: %d\n", len(m.session.Responses)))
	if m.session.Consensus != nil {
		b.WriteString("\n" + phaseDoneStyle.Render("consensus:") + " " + *m.session.Consensus + "\n")
	}
	return b.String()
}

// Session returns the last session snapshot, for printing after the program
// exits.
func (m Model) Session() *council.Session {
	return m.session
}

// Err returns the poll failure that stopped the watch, if any.
func (m Model) Err() error {
	return m.err
}

func (m Model) poll() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		session, err := m.client.GetSession(ctx, m.sessionID)
		if err != nil {
			return pollErrMsg{err: err}
		}
		return sessionMsg{session: session}
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// Run drives the watch model to completion on the given terminal.
func Run(client SessionGetter, sessionID string, interval time.Duration) (*council.Session, error) {
	program := tea.NewProgram(New(client, sessionID, interval))
	final, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("watch ui: %w", err)
	}
	m := final.(Model)
	if m.err != nil {
		return m.session, m.err
	}
	return m.session, nil
}
