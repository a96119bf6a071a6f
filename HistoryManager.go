package main

import (
	"errors"
	"fmt"
	"time"

	deepcopy "github.com/tiendc/go-deepcopy"
)

// DefaultHistoryDepth caps each sheet's undo stack; the oldest snapshot is
// evicted first.
const DefaultHistoryDepth = 100

var NothingToUndoError = errors.New("nothing to undo")

var NothingToRedoError = errors.New("nothing to redo")

// HistorySnapshot is an immutable deep copy of one sheet's mutable state.
// Snapshots share no structure with the live state, so undo never aliases
// live data.
type HistorySnapshot struct {
	Action  string
	TakenAt time.Time
	State   SheetState
}

// HistoryManager keeps the per-sheet undo and redo stacks.
type HistoryManager struct {
	depth int
	undo  []HistorySnapshot
	redo  []HistorySnapshot
}

func NewHistoryManager(depth int) *HistoryManager {
	if depth < 1 {
		depth = DefaultHistoryDepth
	}
	return &HistoryManager{depth: depth}
}

// Record pushes a deep copy of current onto the undo stack, labelled with the
// action about to run, and clears the redo stack.
func (h *HistoryManager) Record(action string, current SheetState) error {
	snapshot, err := cloneState(current)
	if err != nil {
		return fmt.Errorf("record %q: %w", action, err)
	}

	h.undo = append(h.undo, HistorySnapshot{Action: action, TakenAt: time.Now(), State: snapshot})
	if len(h.undo) > h.depth {
		h.undo = h.undo[len(h.undo)-h.depth:]
	}
	h.redo = h.redo[:0]
	return nil
}

// Undo pops the newest snapshot and hands its state back, pushing a copy of
// current onto the redo stack.
func (h *HistoryManager) Undo(current SheetState) (SheetState, error) {
	if len(h.undo) == 0 {
		return SheetState{}, NothingToUndoError
	}

	snapshot := h.undo[len(h.undo)-1]

	preserved, err := cloneState(current)
	if err != nil {
		return SheetState{}, err
	}

	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, HistorySnapshot{Action: snapshot.Action, TakenAt: time.Now(), State: preserved})
	return snapshot.State, nil
}

// Redo is the inverse of Undo.
func (h *HistoryManager) Redo(current SheetState) (SheetState, error) {
	if len(h.redo) == 0 {
		return SheetState{}, NothingToRedoError
	}

	snapshot := h.redo[len(h.redo)-1]

	preserved, err := cloneState(current)
	if err != nil {
		return SheetState{}, err
	}

	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, HistorySnapshot{Action: snapshot.Action, TakenAt: time.Now(), State: preserved})
	return snapshot.State, nil
}

// DiscardLast drops the newest undo snapshot. Used when the operation it was
// taken for fails before changing anything.
func (h *HistoryManager) DiscardLast() {
	if len(h.undo) > 0 {
		h.undo = h.undo[:len(h.undo)-1]
	}
}

func (h *HistoryManager) CanUndo() bool { return len(h.undo) > 0 }
func (h *HistoryManager) CanRedo() bool { return len(h.redo) > 0 }

// UndoActions lists the undo stack labels, newest last. Handy for menus.
func (h *HistoryManager) UndoActions() []string {
	actions := make([]string, len(h.undo))
	for i, s := range h.undo {
		actions[i] = s.Action
	}
	return actions
}

func cloneState(state SheetState) (SheetState, error) {
	copied := newSheetState()
	if err := deepcopy.Copy(&copied, state); err != nil {
		return SheetState{}, err
	}
	return copied, nil
}
