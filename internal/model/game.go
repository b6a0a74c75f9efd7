package model

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/benbeisheim/chessrules-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
)

// Conn is the part of a websocket connection a game writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]Conn // clientID -> connection
	mu          sync.RWMutex
	sendMu      sync.Mutex // one writer per connection at a time
	lastSent    uint64     // version of the newest state sent, guarded by sendMu
}

type SelectionState string

const (
	AwaitingSelection SelectionState = "awaitingSelection"
	PieceSelected     SelectionState = "pieceSelected"
)

// Game is one session: it owns its history exclusively and serializes every
// read and write through mu.
type Game struct {
	ID          string
	mu          sync.Mutex
	history     *History
	selected    *Position
	legalMoves  []Position
	version     uint64
	connections *GameConnections
}

type GameState struct {
	Board          *BoardState    `json:"boardState"`
	ToMove         Color          `json:"toMove"`
	MoveHistory    []Move         `json:"moveHistory"`
	CapturedPieces CapturedPieces `json:"capturedPieces"`
	CheckStatus    CheckStatus    `json:"checkStatus"`
	Selection      SelectionState `json:"selection"`
	SelectedSquare *Position      `json:"selectedSquare"`
	LegalMoves     []Position     `json:"legalMoves"`
	LastMove       *SimpleMove    `json:"lastMove"`
	HistoryIndex   int            `json:"historyIndex"`
	HistoryLength  int            `json:"historyLength"`
	// Version increases with every broadcast; observers may drop lower ones.
	Version uint64 `json:"version"`
}

// CapturedPieces lists pieces by the color that captured them.
type CapturedPieces struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

func NewGame(id string, start *BoardState) *Game {
	if start == nil {
		start = NewBoard()
	}
	return &Game{
		ID:          id,
		history:     NewHistory(start),
		legalMoves:  []Position{},
		connections: NewGameConnections(),
	}
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.snapshot()
}

func (g *Game) snapshot() GameState {
	current := g.history.Current()
	state := GameState{
		Board:          current.Position,
		ToMove:         current.Position.ToMove,
		MoveHistory:    g.history.Moves(),
		CapturedPieces: CapturedPieces{White: []Piece{}, Black: []Piece{}},
		CheckStatus:    current.CheckStatus,
		Selection:      AwaitingSelection,
		LegalMoves:     append([]Position{}, g.legalMoves...),
		HistoryIndex:   g.history.Cursor(),
		HistoryLength:  g.history.Len(),
		Version:        g.version,
	}
	if g.selected != nil {
		state.Selection = PieceSelected
		state.SelectedSquare = ptr(*g.selected)
	}
	if current.Move != nil {
		state.LastMove = &SimpleMove{From: current.Move.From, To: current.Move.To}
	}
	for i := 1; i <= g.history.Cursor(); i++ {
		e := g.history.entries[i]
		if e.Captured == nil {
			continue
		}
		switch e.Captured.Color.Opponent() {
		case White:
			state.CapturedPieces.White = append(state.CapturedPieces.White, *e.Captured)
		case Black:
			state.CapturedPieces.Black = append(state.CapturedPieces.Black, *e.Captured)
		}
	}
	return state
}

// LegalMoves returns the legal destinations of the piece on p in the latest position.
func (g *Game) LegalMoves(p Position) []Position {
	g.mu.Lock()
	defer g.mu.Unlock()

	return LegalDestinations(g.history.latestPosition(), p)
}

func (g *Game) History() []HistoryEntry {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.history.Entries()
}

// JumpTo moves the view cursor. Moves can only be made again once the
// cursor is back on the latest entry.
func (g *Game) JumpTo(index int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.history.JumpTo(index); err != nil {
		return err
	}
	g.clearSelection()
	g.broadcastLocked()
	return nil
}

// MakeMove plays move for the side to move. The result is nil for
// off-board coordinates and not accepted for an illegal move.
func (g *Game) MakeMove(move WSMove) *MoveResult {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.clearSelection()
	return g.applyLocked(move.From, move.To)
}

// Select drives the click-to-move flow. Clicking a piece of the side to
// move selects it (or replaces the current selection); clicking any other
// square with a piece selected attempts the move and clears the selection.
// A result is returned only when a move was attempted.
func (g *Game) Select(p Position) *MoveResult {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !p.OnBoard() || !g.history.AtLatest() {
		return nil
	}
	current := g.history.latestPosition()
	clicked := current.PieceAt(p)
	ownPiece := clicked != nil && clicked.Color == current.ToMove

	switch {
	case g.selected == nil && ownPiece:
		g.selectSquare(current, p)
		g.broadcastLocked()
		return nil
	case g.selected == nil:
		return nil
	case ownPiece && *g.selected == p:
		g.clearSelection()
		g.broadcastLocked()
		return nil
	case ownPiece:
		g.selectSquare(current, p)
		g.broadcastLocked()
		return nil
	}

	from := *g.selected
	g.clearSelection()
	res := g.applyLocked(from, p)
	if res != nil && !res.Accepted {
		g.broadcastLocked()
	}
	return res
}

func (g *Game) selectSquare(b *BoardState, p Position) {
	g.selected = ptr(p)
	g.legalMoves = LegalDestinations(b, p)
}

func (g *Game) clearSelection() {
	g.selected = nil
	g.legalMoves = []Position{}
}

func (g *Game) applyLocked(from, to Position) *MoveResult {
	if !from.OnBoard() || !to.OnBoard() {
		return nil
	}
	if !g.history.AtLatest() {
		log.Printf("game %s: move %s-%s rejected while viewing entry %d", g.ID, from.Notation(), to.Notation(), g.history.Cursor())
		return rejectMove(g.history.latestPosition())
	}

	res := AttemptMove(g.history.latestPosition(), from, to)
	if res == nil {
		return nil
	}
	if !res.Accepted {
		log.Printf("game %s: illegal move %s-%s", g.ID, from.Notation(), to.Notation())
		return res
	}

	g.history.Append(res.ResultingPosition, *res.Move, res.CheckStatus, res.CapturedPiece)
	log.Printf("game %s: %s played %s", g.ID, res.ResultingPosition.ToMove.Opponent(), res.Move)
	g.broadcastLocked()
	return res
}

func (g *Game) RegisterConnection(clientID string, conn Conn) error {
	connID := fmt.Sprintf("%p", conn)
	log.Printf("game %s: registering connection %s for client %s", g.ID, connID, clientID)

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[clientID]; exists {
		// If we already have a healthy connection, keep it and reject the new one
		g.connections.mu.Unlock()
		_ = conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(
				websocket.CloseNormalClosure,
				"Connection already exists",
			),
		)
		_ = conn.Close()
		return ErrConnectionRefused
	}
	g.connections.connections[clientID] = conn
	g.connections.mu.Unlock()

	// Send initial state...
	g.mu.Lock()
	g.broadcastLocked()
	g.mu.Unlock()
	return nil
}

// UnregisterConnection drops clientID only if conn is still its current connection.
func (g *Game) UnregisterConnection(clientID string, conn Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if current, exists := g.connections.connections[clientID]; exists && current == conn {
		log.Printf("game %s: unregistering connection %p for client %s", g.ID, conn, clientID)
		delete(g.connections.connections, clientID)
	}
}

// SendTo writes v to a single connection, serialized with broadcasts.
func (g *Game) SendTo(conn Conn, v interface{}) error {
	g.connections.sendMu.Lock()
	defer g.connections.sendMu.Unlock()
	return conn.WriteJSON(v)
}

// broadcastLocked snapshots the state under g.mu and sends it from a
// separate goroutine. Callers must hold g.mu. Goroutines may reach the send
// lock in any order, so each snapshot carries a version and one older than
// the last state sent is dropped.
func (g *Game) broadcastLocked() {
	g.version++
	state := g.snapshot()
	go g.broadcastState(state)
}

func (g *Game) broadcastState(state GameState) {
	jsonGameState, err := json.Marshal(state)
	if err != nil {
		log.Println("failed to marshal state to JSON", err)
		return
	}

	g.connections.sendMu.Lock()
	defer g.connections.sendMu.Unlock()
	if state.Version <= g.connections.lastSent {
		return
	}
	g.connections.lastSent = state.Version

	// Get a snapshot of connections under the connections mutex
	g.connections.mu.RLock()
	activeConnections := make(map[string]Conn, len(g.connections.connections))
	for clientID, conn := range g.connections.connections {
		activeConnections[clientID] = conn
	}
	g.connections.mu.RUnlock()

	for clientID, conn := range activeConnections {
		if err := conn.WriteJSON(ws.Message{
			Type:    ws.MessageTypeGameState,
			Payload: json.RawMessage(jsonGameState),
		}); err != nil {
			log.Printf("game %s: failed to send state to client %s: %v", g.ID, clientID, err)
			g.UnregisterConnection(clientID, conn)
		}
	}
}
