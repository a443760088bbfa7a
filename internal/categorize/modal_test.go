package categorize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModalSlot_Lifecycle(t *testing.T) {
	var slot ModalSlot

	_, ok := slot.Active()
	assert.False(t, ok)
	assert.False(t, slot.IsOpen())

	seq, err := slot.Open(ModalContext{Index: 2, CategoryName: "Boodschappen", Patterns: []string{"JUMBO"}})
	require.NoError(t, err)
	assert.True(t, slot.IsOpen())
	assert.True(t, slot.IsPending())

	active, ok := slot.Active()
	require.True(t, ok)
	assert.Equal(t, 2, active.Index)

	assert.True(t, slot.Resolve(seq))
	assert.False(t, slot.IsPending())

	slot.Close()
	assert.False(t, slot.IsOpen())
	assert.False(t, slot.Resolve(seq), "results after close are stale")
}

func TestModalSlot_RejectsOpenWhilePending(t *testing.T) {
	var slot ModalSlot

	_, err := slot.Open(ModalContext{Index: 0})
	require.NoError(t, err)

	_, err = slot.Open(ModalContext{Index: 1})
	assert.ErrorIs(t, err, ErrPreviewPending)

	active, _ := slot.Active()
	assert.Equal(t, 0, active.Index, "pending context is not overwritten")
}

func TestModalSlot_StaleResultAfterReopen(t *testing.T) {
	var slot ModalSlot

	first, err := slot.Open(ModalContext{Index: 0})
	require.NoError(t, err)
	slot.Close()

	second, err := slot.Open(ModalContext{Index: 1})
	require.NoError(t, err)

	assert.False(t, slot.Resolve(first))
	assert.True(t, slot.IsPending())
	assert.True(t, slot.Resolve(second))
}
