package categorize

import "errors"

// ErrPreviewPending is returned when a preview is opened while another one
// is still loading.
var ErrPreviewPending = errors.New("a preview is still loading")

// ModalContext identifies the suggestion whose preview is open.
type ModalContext struct {
	CategoryName string
	Patterns     []string
	Index        int
}

// ModalSlot holds at most one active preview context.
type ModalSlot struct {
	active  *ModalContext
	seq     uint64
	pending bool
}

// Open makes ctx the active context and marks its preview as loading. The
// returned sequence number identifies the load; results carrying another
// number are stale.
func (s *ModalSlot) Open(ctx ModalContext) (uint64, error) {
	if s.pending {
		return 0, ErrPreviewPending
	}
	s.seq++
	s.active = &ctx
	s.pending = true
	return s.seq, nil
}

// Resolve marks the load identified by seq as finished. It returns false if
// the load is stale: another context was opened or the modal was closed.
func (s *ModalSlot) Resolve(seq uint64) bool {
	if s.active == nil || seq != s.seq {
		return false
	}
	s.pending = false
	return true
}

// Close clears the active context.
func (s *ModalSlot) Close() {
	s.active = nil
	s.pending = false
}

// Active returns the active context.
func (s ModalSlot) Active() (ModalContext, bool) {
	if s.active == nil {
		return ModalContext{}, false
	}
	return *s.active, true
}

// IsOpen reports whether a context is active.
func (s ModalSlot) IsOpen() bool {
	return s.active != nil
}

// IsPending reports whether the active preview is loading.
func (s ModalSlot) IsPending() bool {
	return s.pending
}
