package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/flowlines/flowlines/pkg/observability"
)

// Messages sent into the trace progress model.
type (
	lineAcceptedMsg struct{ points int }
	seedRejectedMsg struct{}
	traceDoneMsg    struct{ err error }
	frameTickMsg    time.Time
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// traceModel is the bubbletea model showing live seeding progress:
// accepted streamline and point counts plus rejected candidate seeds.
type traceModel struct {
	field    string
	lines    int
	points   int
	rejected int
	frame    int
	err      error
}

func newTraceModel(field string) traceModel {
	return traceModel{field: field}
}

func frameTick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return frameTickMsg(t)
	})
}

func (m traceModel) Init() tea.Cmd {
	return frameTick()
}

func (m traceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case lineAcceptedMsg:
		m.lines++
		m.points += msg.points
		return m, nil
	case seedRejectedMsg:
		m.rejected++
		return m, nil
	case traceDoneMsg:
		m.err = msg.err
		return m, tea.Quit
	case frameTickMsg:
		m.frame++
		return m, frameTick()
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.err = context.Canceled
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m traceModel) View() string {
	if m.err != nil {
		return ""
	}
	frame := spinnerFrames[m.frame%len(spinnerFrames)]
	status := fmt.Sprintf("tracing %s · %d streamlines · %d points", m.field, m.lines, m.points)
	if m.rejected > 0 {
		status += fmt.Sprintf(" · %d seeds rejected", m.rejected)
	}
	return styleIconSpinner.Render(frame) + " " + StyleDim.Render(status) + "\n"
}

// teaSeedingHooks forwards seeding events from the tracer into a running
// bubbletea program. Sends are safe from the tracing goroutine.
type teaSeedingHooks struct {
	observability.NoopSeedingHooks
	prog *tea.Program
}

func (h *teaSeedingHooks) OnLineAccepted(ctx context.Context, pointCount int) {
	h.prog.Send(lineAcceptedMsg{points: pointCount})
}

func (h *teaSeedingHooks) OnSeedRejected(ctx context.Context) {
	h.prog.Send(seedRejectedMsg{})
}
