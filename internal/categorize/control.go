package categorize

// Control is an action button that is disabled while its request runs.
type Control struct {
	label    string
	saved    string
	busy     bool
	disabled bool
}

// NewControl creates an enabled control.
func NewControl(label string) Control {
	return Control{label: label}
}

// Begin disables the control and shows the busy label. It returns false if
// the control is already busy, so a second activation is ignored.
func (c *Control) Begin() bool {
	if c.busy {
		return false
	}
	c.saved = c.label
	c.label = BusyLabel
	c.busy = true
	c.disabled = true
	return true
}

// Restore re-enables the control with the label it had before Begin.
func (c *Control) Restore() {
	if !c.busy {
		return
	}
	c.label = c.saved
	c.busy = false
	c.disabled = false
}

// Button returns the rendered state.
func (c Control) Button() Button {
	return Button{Label: c.label, Enabled: !c.disabled}
}

// IsBusy reports whether a request is in flight.
func (c Control) IsBusy() bool {
	return c.busy
}
