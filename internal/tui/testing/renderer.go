// Package testing provides test utilities for TUI components.
package testing

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// maxSettleSteps bounds Settle against commands that keep producing work.
const maxSettleSteps = 200

// TestRenderer drives a Bubble Tea model without a terminal and records
// what happened.
type TestRenderer struct {
	// Output contains the last rendered view
	Output string

	// Messages contains all messages sent to the model
	Messages []tea.Msg

	// UpdateCount tracks how many times Update was called
	UpdateCount int
}

// NewTestRenderer creates a new test renderer.
func NewTestRenderer() *TestRenderer {
	return &TestRenderer{}
}

// Render renders a model and captures its output.
func (r *TestRenderer) Render(model tea.Model) string {
	r.Output = model.View()
	return r.Output
}

// Update sends a message to the model and captures the rendered result.
func (r *TestRenderer) Update(model tea.Model, msg tea.Msg) (tea.Model, tea.Cmd) {
	r.Messages = append(r.Messages, msg)
	r.UpdateCount++

	next, cmd := model.Update(msg)
	r.Output = next.View()
	return next, cmd
}

// Send delivers msgs in order and settles the commands each one returns.
func (r *TestRenderer) Send(model tea.Model, msgs ...tea.Msg) tea.Model {
	for _, msg := range msgs {
		var cmd tea.Cmd
		model, cmd = r.Update(model, msg)
		model = r.Settle(model, cmd)
	}
	return model
}

// Settle runs cmd, feeds every resulting message back into model and
// repeats with the commands that produces, until nothing is left.
// Animation frames are dropped so the loop terminates.
func (r *TestRenderer) Settle(model tea.Model, cmd tea.Cmd) tea.Model {
	queue := Exec(cmd)
	for steps := 0; len(queue) > 0; steps++ {
		if steps >= maxSettleSteps {
			panic(fmt.Sprintf("model did not settle after %d messages", maxSettleSteps))
		}
		msg := queue[0]
		queue = queue[1:]
		if IsAnimation(msg) {
			continue
		}
		if _, quit := msg.(tea.QuitMsg); quit {
			continue
		}
		var next tea.Cmd
		model, next = r.Update(model, msg)
		queue = append(queue, Exec(next)...)
	}
	return model
}

// StripANSI removes ANSI escape codes from the output for content-only testing.
func (r *TestRenderer) StripANSI() string {
	return StripANSI(r.Output)
}

// Lines returns the output split by newlines.
func (r *TestRenderer) Lines() []string {
	return strings.Split(r.Output, "\n")
}

// Exec runs cmd and every command batched inside it and returns the
// messages they produce, in order.
func Exec(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, Exec(c)...)
		}
		return msgs
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// IsAnimation reports whether msg only drives an animation such as a
// spinner frame or cursor blink.
func IsAnimation(msg tea.Msg) bool {
	switch msg.(type) {
	case spinner.TickMsg, cursor.BlinkMsg:
		return true
	}
	return strings.HasPrefix(fmt.Sprintf("%T", msg), "cursor.")
}
