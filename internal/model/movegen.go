package model

var (
	rookDirs   = []Position{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}
	bishopDirs = []Position{{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1}}
	queenDirs  = append(append([]Position{}, rookDirs...), bishopDirs...)
	knightDirs = []Position{{X: 2, Y: 1}, {X: 2, Y: -1}, {X: -2, Y: 1}, {X: -2, Y: -1}, {X: 1, Y: 2}, {X: 1, Y: -2}, {X: -1, Y: 2}, {X: -1, Y: -2}}
	kingDirs   = queenDirs
)

// PseudoLegalMoves lists the moves of the piece on from that follow its
// movement pattern, without regard to leaving its own king in check.
func PseudoLegalMoves(b *BoardState, from Position) []Move {
	piece := b.PieceAt(from)
	if piece == nil {
		return []Move{}
	}
	switch piece.Type {
	case Pawn:
		return getPseudoPawnMoves(b, piece)
	case Knight:
		return getPseudoStepMoves(b, piece, knightDirs)
	case Bishop:
		return getPseudoSlidingMoves(b, piece, bishopDirs)
	case Rook:
		return getPseudoSlidingMoves(b, piece, rookDirs)
	case Queen:
		return getPseudoSlidingMoves(b, piece, queenDirs)
	case King:
		return append(getPseudoStepMoves(b, piece, kingDirs), getCastleMoves(b, piece)...)
	default:
		return []Move{}
	}
}

// targetMove builds a normal or capture move onto to, reporting false when
// to is off the board or holds a piece of the mover's color.
func targetMove(b *BoardState, piece *Piece, to Position) (Move, bool) {
	if !to.OnBoard() {
		return Move{}, false
	}
	target := b.PieceAt(to)
	if target == nil {
		return Move{Kind: MoveNormal, From: piece.Position, To: to}, true
	}
	if target.Color == piece.Color {
		return Move{}, false
	}
	return Move{Kind: MoveCapture, From: piece.Position, To: to, Captured: ptr(to)}, true
}

func getPseudoPawnMoves(b *BoardState, piece *Piece) []Move {
	pawnMoves := []Move{}
	from := piece.Position
	dir := piece.Color.forward()

	// Check move forward 1
	one := Position{X: from.X, Y: from.Y + dir}
	if one.OnBoard() && !b.IsOccupied(one) {
		pawnMoves = append(pawnMoves, Move{Kind: MoveNormal, From: from, To: one})
		// Check move forward 2 if not moved
		two := Position{X: from.X, Y: from.Y + 2*dir}
		if !piece.HasMoved && two.OnBoard() && !b.IsOccupied(two) {
			pawnMoves = append(pawnMoves, Move{Kind: MoveNormal, From: from, To: two})
		}
	}

	// Check captures, then en passant when the diagonal is empty
	for _, dx := range []int{-1, 1} {
		to := Position{X: from.X + dx, Y: from.Y + dir}
		if !to.OnBoard() {
			continue
		}
		if target := b.PieceAt(to); target != nil {
			if target.Color != piece.Color {
				pawnMoves = append(pawnMoves, Move{Kind: MoveCapture, From: from, To: to, Captured: ptr(to)})
			}
			continue
		}
		beside := Position{X: from.X + dx, Y: from.Y}
		if victim := b.PieceAt(beside); victim != nil && victim.Type == Pawn && victim.Color != piece.Color && victim.JustDoubleMoved {
			pawnMoves = append(pawnMoves, Move{Kind: MoveEnPassant, From: from, To: to, Captured: ptr(beside)})
		}
	}
	return pawnMoves
}

func getPseudoStepMoves(b *BoardState, piece *Piece, dirs []Position) []Move {
	stepMoves := []Move{}
	for _, dir := range dirs {
		if m, ok := targetMove(b, piece, piece.Position.add(dir)); ok {
			stepMoves = append(stepMoves, m)
		}
	}
	return stepMoves
}

func getPseudoSlidingMoves(b *BoardState, piece *Piece, dirs []Position) []Move {
	slidingMoves := []Move{}
	for _, dir := range dirs {
		targetPos := piece.Position.add(dir)
		for targetPos.OnBoard() {
			m, ok := targetMove(b, piece, targetPos)
			if ok {
				slidingMoves = append(slidingMoves, m)
			}
			if b.IsOccupied(targetPos) {
				break
			}
			targetPos = targetPos.add(dir)
		}
	}
	return slidingMoves
}

// getCastleMoves checks the cheap conditions first: flags, then empty
// squares, then attack queries.
func getCastleMoves(b *BoardState, king *Piece) []Move {
	castleMoves := []Move{}
	if king.HasMoved {
		return castleMoves
	}
	from := king.Position
	opponent := king.Color.Opponent()
	for _, rookX := range []int{7, 0} {
		rook := b.PieceAt(Position{X: rookX, Y: from.Y})
		if rook == nil || rook.Type != Rook || rook.Color != king.Color || rook.HasMoved {
			continue
		}
		dir := 1
		kind := MoveCastleKingside
		if rookX < from.X {
			dir = -1
			kind = MoveCastleQueenside
		}
		transit := Position{X: from.X + dir, Y: from.Y}
		dest := Position{X: from.X + 2*dir, Y: from.Y}
		if !dest.OnBoard() || abs(rookX-from.X) < 3 {
			continue
		}

		clear := true
		for x := from.X + dir; x != rookX; x += dir {
			if b.IsOccupied(Position{X: x, Y: from.Y}) {
				clear = false
				break
			}
		}
		if !clear {
			continue
		}

		if AttacksSquare(b, from, opponent) || AttacksSquare(b, transit, opponent) || AttacksSquare(b, dest, opponent) {
			continue
		}
		castleMoves = append(castleMoves, Move{
			Kind: kind,
			From: from,
			To:   dest,
			CastleRookMove: &CastleRookMove{
				From: rook.Position,
				To:   transit,
			},
		})
	}
	return castleMoves
}
