// Package fen converts between Forsyth-Edwards Notation and board states.
// Castling rights become the hasMoved flags of kings and rooks, and the en
// passant target marks the pawn that just double-moved.
package fen

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/benbeisheim/chessrules-backend/internal/model"
)

const StartingPosition = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var ErrInvalidFEN = errors.New("invalid fen")

var pieceTypes = map[byte]model.PieceType{
	'p': model.Pawn,
	'n': model.Knight,
	'b': model.Bishop,
	'r': model.Rook,
	'q': model.Queen,
	'k': model.King,
}

// Parse builds a board from a FEN string. The move counters are validated
// but not kept.
func Parse(s string) (*model.BoardState, error) {
	segments := strings.Split(s, " ")
	if len(segments) != 6 {
		return nil, fmt.Errorf("%w: incorrect number of segments", ErrInvalidFEN)
	}

	b := model.NewEmptyBoard()
	rows := strings.Split(segments[0], "/")
	if len(rows) != 8 {
		return nil, fmt.Errorf("%w: invalid board configuration", ErrInvalidFEN)
	}
	for i, row := range rows {
		y := 7 - i
		x := 0
		for j := 0; j < len(row); j++ {
			cell := row[j]
			if cell >= '1' && cell <= '8' {
				x += int(cell - '0')
				continue
			}
			lower := cell | 0x20
			t, ok := pieceTypes[lower]
			if !ok || x > 7 {
				return nil, fmt.Errorf("%w: bad cell %q in rank %d", ErrInvalidFEN, cell, y+1)
			}
			c := model.White
			if cell == lower {
				c = model.Black
			}
			// kings and rooks only count as unmoved when a castling right says so
			piece := &model.Piece{Type: t, Color: c, HasMoved: t == model.King || t == model.Rook}
			if t == model.Pawn {
				startRank := 1
				if c == model.Black {
					startRank = 6
				}
				piece.HasMoved = y != startRank
			}
			if err := b.Place(model.Position{X: x, Y: y}, piece); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
			}
			x++
		}
		if x != 8 {
			return nil, fmt.Errorf("%w: rank %d has %d cells", ErrInvalidFEN, y+1, x)
		}
	}
	if _, ok := b.KingPosition(model.White); !ok {
		return nil, fmt.Errorf("%w: missing white king", ErrInvalidFEN)
	}
	if _, ok := b.KingPosition(model.Black); !ok {
		return nil, fmt.Errorf("%w: missing black king", ErrInvalidFEN)
	}

	switch segments[1] {
	case "w":
		b.ToMove = model.White
	case "b":
		b.ToMove = model.Black
	default:
		return nil, fmt.Errorf("%w: invalid side %q", ErrInvalidFEN, segments[1])
	}

	if err := parseCastling(b, segments[2]); err != nil {
		return nil, err
	}
	if err := parseEnPassant(b, segments[3]); err != nil {
		return nil, err
	}

	for _, counter := range segments[4:] {
		if n, err := strconv.Atoi(counter); err != nil || n < 0 {
			return nil, fmt.Errorf("%w: invalid move counter %q", ErrInvalidFEN, counter)
		}
	}
	return b, nil
}

type castleRight struct {
	symbol byte
	color  model.Color
	rookX  int
}

var castleRights = []castleRight{
	{'K', model.White, 7},
	{'Q', model.White, 0},
	{'k', model.Black, 7},
	{'q', model.Black, 0},
}

// parseCastling clears hasMoved on the king and rook of every listed right.
func parseCastling(b *model.BoardState, s string) error {
	if s == "-" {
		return nil
	}
	for i := 0; i < len(s); i++ {
		var right *castleRight
		for j := range castleRights {
			if castleRights[j].symbol == s[i] {
				right = &castleRights[j]
			}
		}
		if right == nil {
			return fmt.Errorf("%w: invalid castling rights %q", ErrInvalidFEN, s)
		}
		kingPos, _ := b.KingPosition(right.color)
		king := b.PieceAt(kingPos)
		rook := b.PieceAt(model.Position{X: right.rookX, Y: kingPos.Y})
		if rook == nil || rook.Type != model.Rook || rook.Color != right.color {
			return fmt.Errorf("%w: castling right %c without rook", ErrInvalidFEN, right.symbol)
		}
		king.HasMoved = false
		rook.HasMoved = false
	}
	return nil
}

func parseEnPassant(b *model.BoardState, s string) error {
	if s == "-" {
		return nil
	}
	target, err := model.ParseSquare(s)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}
	// the pawn that just double-moved belongs to the side not on move
	mover := b.ToMove.Opponent()
	wantRank := 2
	if mover == model.Black {
		wantRank = 5
	}
	if target.Y != wantRank {
		return fmt.Errorf("%w: en passant target %s on the wrong rank", ErrInvalidFEN, s)
	}
	pawnPos := model.Position{X: target.X, Y: target.Y + 1}
	if mover == model.Black {
		pawnPos.Y = target.Y - 1
	}
	pawn := b.PieceAt(pawnPos)
	if pawn == nil || pawn.Type != model.Pawn || pawn.Color != mover {
		return fmt.Errorf("%w: en passant target %s without pawn", ErrInvalidFEN, s)
	}
	b.Remove(pawnPos)
	pawn.JustDoubleMoved = true
	return b.Place(pawnPos, pawn)
}

// Encode writes b as FEN. Castling rights are derived from unmoved kings and
// corner rooks; both move counters are written as "0 1".
func Encode(b *model.BoardState) string {
	var sb strings.Builder
	for y := 7; y >= 0; y-- {
		empty := 0
		for x := 0; x < 8; x++ {
			p := b.PieceAt(model.Position{X: x, Y: y})
			if p == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(p.Symbol())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if y > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if b.ToMove == model.Black {
		sb.WriteByte('b')
	} else {
		sb.WriteByte('w')
	}

	sb.WriteByte(' ')
	rights := ""
	for _, right := range castleRights {
		kingPos, ok := b.KingPosition(right.color)
		if !ok {
			continue
		}
		king := b.PieceAt(kingPos)
		rook := b.PieceAt(model.Position{X: right.rookX, Y: kingPos.Y})
		if !king.HasMoved && rook != nil && rook.Type == model.Rook && rook.Color == right.color && !rook.HasMoved {
			rights += string(right.symbol)
		}
	}
	if rights == "" {
		rights = "-"
	}
	sb.WriteString(rights)

	sb.WriteByte(' ')
	if b.LastDoubleMoved != nil {
		p := *b.LastDoubleMoved
		pawn := b.PieceAt(p)
		target := model.Position{X: p.X, Y: p.Y - 1}
		if pawn != nil && pawn.Color == model.Black {
			target.Y = p.Y + 1
		}
		sb.WriteString(target.Notation())
	} else {
		sb.WriteByte('-')
	}
	sb.WriteString(" 0 1")
	return sb.String()
}
