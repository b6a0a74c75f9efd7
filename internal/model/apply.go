package model

import "fmt"

// moveUndo holds what makeMove overwrote so unmakeMove can restore it exactly.
type moveUndo struct {
	move            Move
	moverHasMoved   bool
	rookHasMoved    bool
	captured        *Piece
	lastDoubleMoved *Position
	toMove          Color
}

// makeMove plays a move that has already been generated for b: the captured
// piece goes first, then the mover and, when castling, the rook.
func (b *BoardState) makeMove(m Move) (moveUndo, error) {
	mover := b.PieceAt(m.From)
	if mover == nil {
		return moveUndo{}, fmt.Errorf("%w: %s", ErrNoPiece, m.From)
	}
	undo := moveUndo{
		move:          m,
		moverHasMoved: mover.HasMoved,
		toMove:        b.ToMove,
	}
	if b.LastDoubleMoved != nil {
		undo.lastDoubleMoved = ptr(*b.LastDoubleMoved)
	}

	if m.Captured != nil {
		undo.captured = b.Remove(*m.Captured)
	}
	if err := b.Relocate(m.From, m.To); err != nil {
		return undo, err
	}
	if m.CastleRookMove != nil {
		rook := b.PieceAt(m.CastleRookMove.From)
		if rook == nil {
			return undo, fmt.Errorf("%w: castle without rook on %s", ErrInvariantViolation, m.CastleRookMove.From.Notation())
		}
		undo.rookHasMoved = rook.HasMoved
		if err := b.Relocate(m.CastleRookMove.From, m.CastleRookMove.To); err != nil {
			return undo, err
		}
	}
	b.ToMove = mover.Color.Opponent()
	return undo, nil
}

// unmakeMove is the structural inverse of makeMove.
func (b *BoardState) unmakeMove(u moveUndo) {
	m := u.move
	if m.CastleRookMove != nil {
		rook := b.Remove(m.CastleRookMove.To)
		rook.HasMoved = u.rookHasMoved
		b.restore(m.CastleRookMove.From, rook)
	}

	mover := b.Remove(m.To)
	mover.HasMoved = u.moverHasMoved
	mover.JustDoubleMoved = false
	b.restore(m.From, mover)

	if u.captured != nil {
		b.restore(*m.Captured, u.captured)
	}

	if b.LastDoubleMoved != nil {
		if p := b.PieceAt(*b.LastDoubleMoved); p != nil {
			p.JustDoubleMoved = false
		}
	}
	b.LastDoubleMoved = u.lastDoubleMoved
	if u.lastDoubleMoved != nil {
		if p := b.PieceAt(*u.lastDoubleMoved); p != nil {
			p.JustDoubleMoved = true
		}
	}
	b.ToMove = u.toMove
}

// restore puts a piece back without touching its flags.
func (b *BoardState) restore(p Position, piece *Piece) {
	piece.Position = p
	b.Board[p.Y][p.X] = piece
	if piece.Type == King {
		b.setKingPosition(piece.Color, ptr(p))
	}
}

// mustApply plays a generated move. Failing here means the generator and the
// applier disagree about the board, which no caller input can cause.
func mustApply(b *BoardState, m Move) moveUndo {
	undo, err := b.makeMove(m)
	if err != nil {
		panic(err)
	}
	return undo
}

type MoveResult struct {
	Accepted          bool        `json:"accepted"`
	ResultingPosition *BoardState `json:"resultingPosition,omitempty"`
	Move              *Move       `json:"move,omitempty"`
	CapturedSquare    *Position   `json:"capturedSquare,omitempty"`
	CapturedPiece     *Piece      `json:"capturedPiece,omitempty"`
	IsCastle          bool        `json:"isCastle"`
	CheckStatus       CheckStatus `json:"checkStatus"`
}

// AttemptMove validates and plays from→to for the side to move. It returns
// nil for malformed input and a result with Accepted=false for an illegal
// move. b itself is never modified; an accepted move is played on a copy.
func AttemptMove(b *BoardState, from, to Position) *MoveResult {
	if b == nil || !from.OnBoard() || !to.OnBoard() {
		return nil
	}
	piece := b.PieceAt(from)
	if piece == nil || piece.Color != b.ToMove {
		return rejectMove(b)
	}

	for _, m := range LegalMoves(b, from) {
		if m.To != to {
			continue
		}
		next := b.Clone()
		var captured *Piece
		if m.Captured != nil {
			cp := *next.PieceAt(*m.Captured)
			captured = &cp
		}
		mustApply(next, m)
		// TODO: promotion piece selection; a pawn on the last rank stays a pawn.
		move := m
		return &MoveResult{
			Accepted:          true,
			ResultingPosition: next,
			Move:              &move,
			CapturedSquare:    m.Captured,
			CapturedPiece:     captured,
			IsCastle:          m.Kind.IsCastle(),
			CheckStatus:       ComputeCheckStatus(next),
		}
	}
	return rejectMove(b)
}

func rejectMove(b *BoardState) *MoveResult {
	return &MoveResult{Accepted: false, CheckStatus: ComputeCheckStatus(b)}
}
