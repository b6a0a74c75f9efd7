package model

// LegalMoves returns the moves of the piece on from that do not leave its own
// king in check. Candidates are tried on a private copy, so b is never
// touched and repeated calls return the same moves in the same order.
func LegalMoves(b *BoardState, from Position) []Move {
	if b == nil || !from.OnBoard() || !b.IsOccupied(from) {
		return []Move{}
	}
	return filterLegalMoves(b.Clone(), PseudoLegalMoves(b, from))
}

// LegalDestinations returns the destination squares of LegalMoves.
func LegalDestinations(b *BoardState, from Position) []Position {
	destinations := []Position{}
	for _, m := range LegalMoves(b, from) {
		destinations = append(destinations, m.To)
	}
	return destinations
}

// AllLegalMoves returns every legal move of color c.
func AllLegalMoves(b *BoardState, c Color) []Move {
	if b == nil {
		return []Move{}
	}
	scratch := b.Clone()
	legalMoves := []Move{}
	for _, piece := range b.Pieces(c) {
		legalMoves = append(legalMoves, filterLegalMoves(scratch, PseudoLegalMoves(b, piece.Position))...)
	}
	return legalMoves
}

// filterLegalMoves plays each candidate on scratch, keeps it if the mover's
// king is safe afterwards and takes it back. scratch ends up unchanged.
func filterLegalMoves(scratch *BoardState, pseudoMoves []Move) []Move {
	legalMoves := []Move{}
	for _, move := range pseudoMoves {
		mover := scratch.PieceAt(move.From).Color
		undo := mustApply(scratch, move)
		if _, inCheck := IsKingInCheck(scratch, mover); !inCheck {
			legalMoves = append(legalMoves, move)
		}
		scratch.unmakeMove(undo)
	}
	return legalMoves
}
