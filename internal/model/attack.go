package model

// AttacksSquare reports whether any piece of color by attacks target.
func AttacksSquare(b *BoardState, target Position, by Color) bool {
	return AttackerOf(b, target, by) != nil
}

// AttackerOf returns the square of a piece of color by that attacks target,
// or nil. Each piece type is checked with its own attack pattern; pawns
// attack diagonally only, whatever their pushes look like.
func AttackerOf(b *BoardState, target Position, by Color) *Position {
	if !target.OnBoard() {
		return nil
	}
	if p := slidingAttacker(b, target, by, rookDirs, Rook); p != nil {
		return p
	}
	if p := slidingAttacker(b, target, by, bishopDirs, Bishop); p != nil {
		return p
	}
	if p := stepAttacker(b, target, by, knightDirs, Knight); p != nil {
		return p
	}
	if p := stepAttacker(b, target, by, kingDirs, King); p != nil {
		return p
	}
	// a pawn of color by attacks target from one rank behind it
	behind := -by.forward()
	pawnDirs := []Position{{X: -1, Y: behind}, {X: 1, Y: behind}}
	return stepAttacker(b, target, by, pawnDirs, Pawn)
}

// slidingAttacker walks each ray from target until the first piece and checks
// whether it is a queen or the given slider of color by.
func slidingAttacker(b *BoardState, target Position, by Color, dirs []Position, slider PieceType) *Position {
	for _, dir := range dirs {
		targetPos := target.add(dir)
		for targetPos.OnBoard() {
			if piece := b.PieceAt(targetPos); piece != nil {
				if piece.Color == by && (piece.Type == Queen || piece.Type == slider) {
					return ptr(targetPos)
				}
				break
			}
			targetPos = targetPos.add(dir)
		}
	}
	return nil
}

func stepAttacker(b *BoardState, target Position, by Color, dirs []Position, pieceType PieceType) *Position {
	for _, dir := range dirs {
		targetPos := target.add(dir)
		if piece := b.PieceAt(targetPos); piece != nil && piece.Color == by && piece.Type == pieceType {
			return ptr(targetPos)
		}
	}
	return nil
}

// IsKingInCheck returns the square of a piece giving check to side's king.
// A side without a king on the board is never in check.
func IsKingInCheck(b *BoardState, side Color) (*Position, bool) {
	king, ok := b.KingPosition(side)
	if !ok {
		return nil, false
	}
	attacker := AttackerOf(b, king, side.Opponent())
	return attacker, attacker != nil
}

type CheckStatus struct {
	White         bool      `json:"white"`
	Black         bool      `json:"black"`
	WhiteAttacker *Position `json:"whiteAttacker,omitempty"`
	BlackAttacker *Position `json:"blackAttacker,omitempty"`
}

func ComputeCheckStatus(b *BoardState) CheckStatus {
	var status CheckStatus
	status.WhiteAttacker, status.White = IsKingInCheck(b, White)
	status.BlackAttacker, status.Black = IsKingInCheck(b, Black)
	return status
}

func (s CheckStatus) InCheck(c Color) bool {
	if c == White {
		return s.White
	}
	return s.Black
}
