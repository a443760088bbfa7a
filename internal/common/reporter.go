package common

// Reporter logs failures and turns them into user-facing messages.
// Handle is for failures the user has to acknowledge; Log is for failures
// the UI recovers from on its own.
type Reporter struct {
	// Prefix is prepended to alert messages.
	Prefix string
}

// NewReporter returns a reporter with the default alert prefix.
func NewReporter() Reporter {
	return Reporter{Prefix: "An error occurred: "}
}

// Handle logs err under context and returns the alert text to show.
func (r Reporter) Handle(err error, context string) string {
	r.Log(err, context)
	return r.Prefix + UserMessage(err)
}

// Log records err under context without notifying the user.
func (r Reporter) Log(err error, context string) {
	if err == nil {
		return
	}
	LogError(err, "Error in "+context, Fields{"context": context})
}
