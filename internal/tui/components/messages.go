package components

// NoticeDismissedMsg is sent when the user acknowledges a notice.
type NoticeDismissedMsg struct{}

// ConfirmResultMsg carries the answer to a confirmation dialog.
type ConfirmResultMsg struct {
	Confirmed bool
}

// CategoryPickedMsg is sent when a category is chosen in the picker.
type CategoryPickedMsg struct {
	ID int
}

// PickerCanceledMsg is sent when the picker is closed without a choice.
type PickerCanceledMsg struct{}
