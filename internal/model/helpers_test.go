package model

import "testing"

func sq(t *testing.T, n string) Position {
	t.Helper()
	p, err := ParseSquare(n)
	if err != nil {
		t.Fatalf("bad square %q: %v", n, err)
	}
	return p
}

// put places a piece on an algebraic square. Kings and rooks stay unmoved,
// pawns count as moved unless they stand on their starting rank.
func put(t *testing.T, b *BoardState, n string, c Color, pt PieceType) *Piece {
	t.Helper()
	p := sq(t, n)
	piece := &Piece{Type: pt, Color: c}
	if pt == Pawn {
		piece.HasMoved = p.Y != c.backRank()+c.forward()
	}
	if err := b.Place(p, piece); err != nil {
		t.Fatalf("place %s on %s: %v", pt, n, err)
	}
	return piece
}

func destinations(moves []Move) map[string]Move {
	m := make(map[string]Move, len(moves))
	for _, mv := range moves {
		m[mv.To.Notation()] = mv
	}
	return m
}

func sameSquares(t *testing.T, got []Position, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("unexpected squares: got=%v want=%v", notations(got), want)
	}
	seen := make(map[string]bool, len(got))
	for _, p := range got {
		seen[p.Notation()] = true
	}
	for _, w := range want {
		if !seen[w] {
			t.Fatalf("unexpected squares: got=%v want=%v", notations(got), want)
		}
	}
}

func notations(ps []Position) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Notation())
	}
	return out
}
