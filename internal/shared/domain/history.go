package domain

import (
	"errors"
	"fmt"
)

var (
	ErrHistoryExhausted = errors.New("history exhausted")
	ErrNothingToUndo    = fmt.Errorf("%w: no more commands to undo", ErrHistoryExhausted)
	ErrNothingToRedo    = fmt.Errorf("%w: no more commands to redo", ErrHistoryExhausted)
)

// Snapshotter is a live collection whose contents can be captured and restored.
// Snapshot must return a value copy that later mutations of the collection cannot reach.
type Snapshotter[S any] interface {
	Snapshot() S
	Restore(snapshot S)
}

// History records committed snapshots of a live collection and moves it
// backwards and forwards through them.
type History[S any] struct {
	live      Snapshotter[S]
	snapshots []S
	cursor    int
}

// NewHistory creates a history seeded with the current contents of live.
func NewHistory[S any](live Snapshotter[S]) *History[S] {
	return &History[S]{
		live:      live,
		snapshots: []S{live.Snapshot()},
		cursor:    0,
	}
}

// Commit discards any redoable states and records the live contents as the newest state.
func (h *History[S]) Commit() {
	h.snapshots = append(h.snapshots[:h.cursor+1], h.live.Snapshot())
	h.cursor++
}

// Undo restores the previous committed state.
func (h *History[S]) Undo() error {
	if !h.CanUndo() {
		return ErrNothingToUndo
	}
	h.cursor--
	h.live.Restore(h.snapshots[h.cursor])
	return nil
}

// Redo restores the most recently undone state.
func (h *History[S]) Redo() error {
	if !h.CanRedo() {
		return ErrNothingToRedo
	}
	h.cursor++
	h.live.Restore(h.snapshots[h.cursor])
	return nil
}

// CanUndo reports whether there is a state before the current one.
func (h *History[S]) CanUndo() bool {
	return h.cursor > 0
}

// CanRedo reports whether there is an undone state after the current one.
func (h *History[S]) CanRedo() bool {
	return h.cursor < len(h.snapshots)-1
}

// Revert restores the live contents to the state of the last Commit, Undo or Redo.
func (h *History[S]) Revert() {
	h.live.Restore(h.snapshots[h.cursor])
}

// Len returns the number of recorded states, including the seed.
func (h *History[S]) Len() int {
	return len(h.snapshots)
}

// Reset drops all recorded states and reseeds from the live contents.
func (h *History[S]) Reset() {
	h.snapshots = []S{h.live.Snapshot()}
	h.cursor = 0
}
