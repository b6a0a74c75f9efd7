package model

import (
	"fmt"
)

type PieceType string

func (p PieceType) getPieceNotation() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Pawn:
		return "P"
	}
	return ""
}

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

// forward is the rank direction pawns of this color advance in.
func (c Color) forward() int {
	if c == White {
		return 1
	}
	return -1
}

func (c Color) backRank() int {
	if c == White {
		return 0
	}
	return 7
}

// BoardState is a full position: placement, side to move and the
// bookkeeping needed for castling and en passant.
type BoardState struct {
	Board             [8][8]*Piece `json:"board"`
	ToMove            Color        `json:"toMove"`
	WhiteKingPosition *Position    `json:"whiteKingPosition"`
	BlackKingPosition *Position    `json:"blackKingPosition"`
	LastDoubleMoved   *Position    `json:"lastDoubleMoved"`
}

type Piece struct {
	Type            PieceType `json:"type"`
	Color           Color     `json:"color"`
	Position        Position  `json:"position"`
	HasMoved        bool      `json:"hasMoved"`
	JustDoubleMoved bool      `json:"justDoubleMoved"`
}

// Symbol is the single letter used by the board renderer, upper case for White.
func (p *Piece) Symbol() string {
	s := p.Type.getPieceNotation()
	if p.Color == Black {
		return string(s[0] + ('a' - 'A'))
	}
	return s
}

// Position is a square: X is the file (0 = a-file), Y the rank (0 = White's back rank).
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) OnBoard() bool {
	return p.X >= 0 && p.X < 8 && p.Y >= 0 && p.Y < 8
}

func (p Position) Notation() string {
	if !p.OnBoard() {
		return ""
	}
	return fmt.Sprintf("%c%d", p.X+'a', p.Y+1)
}

func (p Position) String() string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

func (p Position) add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

// ParseSquare converts algebraic notation such as "e4" into a Position.
func ParseSquare(n string) (Position, error) {
	if len(n) != 2 {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidSquare, n)
	}
	p := Position{X: int(n[0]) - 'a', Y: int(n[1]) - '1'}
	if !p.OnBoard() {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidSquare, n)
	}
	return p, nil
}

func ptr(p Position) *Position {
	return &p
}

// NewEmptyBoard returns a board with no pieces and White to move.
func NewEmptyBoard() *BoardState {
	return &BoardState{ToMove: White}
}

// NewBoard returns the standard starting position.
func NewBoard() *BoardState {
	board := NewEmptyBoard()
	backRank := []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for _, c := range []Color{White, Black} {
		pawnRank := c.backRank() + c.forward()
		for x, t := range backRank {
			board.mustPlace(Position{X: x, Y: c.backRank()}, &Piece{Type: t, Color: c})
			board.mustPlace(Position{X: x, Y: pawnRank}, &Piece{Type: Pawn, Color: c})
		}
	}
	return board
}

func (b *BoardState) mustPlace(p Position, piece *Piece) {
	if err := b.Place(p, piece); err != nil {
		panic(err)
	}
}

func (b *BoardState) PieceAt(p Position) *Piece {
	if !p.OnBoard() {
		return nil
	}
	return b.Board[p.Y][p.X]
}

func (b *BoardState) IsOccupied(p Position) bool {
	return b.PieceAt(p) != nil
}

// KingPosition reports where the king of color c stands, if it is on the board.
func (b *BoardState) KingPosition(c Color) (Position, bool) {
	k := b.WhiteKingPosition
	if c == Black {
		k = b.BlackKingPosition
	}
	if k == nil {
		return Position{}, false
	}
	return *k, true
}

func (b *BoardState) setKingPosition(c Color, p *Position) {
	if c == White {
		b.WhiteKingPosition = p
	} else {
		b.BlackKingPosition = p
	}
}

// Place puts piece on an empty square and takes over its bookkeeping.
func (b *BoardState) Place(p Position, piece *Piece) error {
	if !p.OnBoard() {
		return fmt.Errorf("%w: %s", ErrOffBoard, p)
	}
	if b.IsOccupied(p) {
		return fmt.Errorf("%w: %s", ErrSquareOccupied, p.Notation())
	}
	piece.Position = p
	b.Board[p.Y][p.X] = piece
	if piece.Type == King {
		b.setKingPosition(piece.Color, ptr(p))
	}
	if piece.JustDoubleMoved {
		b.LastDoubleMoved = ptr(p)
	}
	return nil
}

// Remove takes the piece off p and returns it, or nil if the square was empty.
func (b *BoardState) Remove(p Position) *Piece {
	piece := b.PieceAt(p)
	if piece == nil {
		return nil
	}
	b.Board[p.Y][p.X] = nil
	if piece.Type == King {
		if k, ok := b.KingPosition(piece.Color); ok && k == p {
			b.setKingPosition(piece.Color, nil)
		}
	}
	if b.LastDoubleMoved != nil && *b.LastDoubleMoved == p {
		b.LastDoubleMoved = nil
	}
	return piece
}

// Relocate moves the piece on from to the empty square to. Captured pieces
// must be removed beforehand; an occupied destination is a sequencing bug.
func (b *BoardState) Relocate(from, to Position) error {
	piece := b.PieceAt(from)
	if piece == nil {
		return fmt.Errorf("%w: %s", ErrNoPiece, from)
	}
	if !to.OnBoard() {
		return fmt.Errorf("%w: %s", ErrOffBoard, to)
	}
	if b.IsOccupied(to) {
		return fmt.Errorf("%w: relocate %s onto occupied %s", ErrInvariantViolation, from.Notation(), to.Notation())
	}

	b.clearDoubleMoved()

	b.Board[from.Y][from.X] = nil
	b.Board[to.Y][to.X] = piece
	piece.Position = to
	piece.HasMoved = true
	if piece.Type == Pawn && abs(to.Y-from.Y) == 2 {
		piece.JustDoubleMoved = true
		b.LastDoubleMoved = ptr(to)
	}
	if piece.Type == King {
		b.setKingPosition(piece.Color, ptr(to))
	}
	return nil
}

func (b *BoardState) clearDoubleMoved() {
	if b.LastDoubleMoved == nil {
		return
	}
	if p := b.PieceAt(*b.LastDoubleMoved); p != nil {
		p.JustDoubleMoved = false
	}
	b.LastDoubleMoved = nil
}

// Clone returns a deep copy that shares no pieces with b.
func (b *BoardState) Clone() *BoardState {
	c := &BoardState{ToMove: b.ToMove}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if p := b.Board[y][x]; p != nil {
				cp := *p
				c.Board[y][x] = &cp
			}
		}
	}
	if b.WhiteKingPosition != nil {
		c.WhiteKingPosition = ptr(*b.WhiteKingPosition)
	}
	if b.BlackKingPosition != nil {
		c.BlackKingPosition = ptr(*b.BlackKingPosition)
	}
	if b.LastDoubleMoved != nil {
		c.LastDoubleMoved = ptr(*b.LastDoubleMoved)
	}
	return c
}

// Pieces returns the pieces of color c in rank-major order.
func (b *BoardState) Pieces(c Color) []*Piece {
	pieces := []*Piece{}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if p := b.Board[y][x]; p != nil && p.Color == c {
				pieces = append(pieces, p)
			}
		}
	}
	return pieces
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
