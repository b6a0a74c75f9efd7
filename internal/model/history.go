package model

import "fmt"

type HistoryEntry struct {
	Position    *BoardState `json:"position"`
	Move        *Move       `json:"move"`
	CheckStatus CheckStatus `json:"checkStatus"`
	Captured    *Piece      `json:"captured"`
}

// History is the append-only timeline of a game. The first entry is the
// starting position. The cursor selects the entry being viewed and never
// changes stored positions.
type History struct {
	entries []HistoryEntry
	cursor  int
}

func NewHistory(initial *BoardState) *History {
	return &History{
		entries: []HistoryEntry{{
			Position:    initial.Clone(),
			CheckStatus: ComputeCheckStatus(initial),
		}},
	}
}

// Append records a position reached by move and moves the cursor onto it.
func (h *History) Append(position *BoardState, move Move, status CheckStatus, captured *Piece) {
	var cp *Piece
	if captured != nil {
		c := *captured
		cp = &c
	}
	h.entries = append(h.entries, HistoryEntry{
		Position:    position.Clone(),
		Move:        &move,
		CheckStatus: status,
		Captured:    cp,
	})
	h.cursor = len(h.entries) - 1
}

func (h *History) Len() int {
	return len(h.entries)
}

func (h *History) Cursor() int {
	return h.cursor
}

func (h *History) AtLatest() bool {
	return h.cursor == len(h.entries)-1
}

func (h *History) JumpTo(index int) error {
	if index < 0 || index >= len(h.entries) {
		return fmt.Errorf("%w: %d of %d", ErrHistoryIndex, index, len(h.entries))
	}
	h.cursor = index
	return nil
}

// At returns a copy of entry i.
func (h *History) At(i int) (HistoryEntry, error) {
	if i < 0 || i >= len(h.entries) {
		return HistoryEntry{}, fmt.Errorf("%w: %d of %d", ErrHistoryIndex, i, len(h.entries))
	}
	return h.entries[i].copy(), nil
}

// Current returns a copy of the entry under the cursor.
func (h *History) Current() HistoryEntry {
	return h.entries[h.cursor].copy()
}

// Latest returns a copy of the most recent entry.
func (h *History) Latest() HistoryEntry {
	return h.entries[len(h.entries)-1].copy()
}

// latestPosition is the live tip of the timeline, for read-only use.
func (h *History) latestPosition() *BoardState {
	return h.entries[len(h.entries)-1].Position
}

func (h *History) Entries() []HistoryEntry {
	entries := make([]HistoryEntry, 0, len(h.entries))
	for _, e := range h.entries {
		entries = append(entries, e.copy())
	}
	return entries
}

// Moves returns the moves played so far, oldest first.
func (h *History) Moves() []Move {
	moves := make([]Move, 0, len(h.entries)-1)
	for _, e := range h.entries[1:] {
		moves = append(moves, *e.Move)
	}
	return moves
}

func (e HistoryEntry) copy() HistoryEntry {
	c := e
	c.Position = e.Position.Clone()
	if e.Move != nil {
		m := *e.Move
		c.Move = &m
	}
	if e.Captured != nil {
		p := *e.Captured
		c.Captured = &p
	}
	return c
}
