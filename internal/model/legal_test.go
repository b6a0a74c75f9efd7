package model

import (
	"reflect"
	"testing"
)

func legalSquares(t *testing.T, b *BoardState, from string) []Position {
	t.Helper()
	return LegalDestinations(b, sq(t, from))
}

func TestPinnedPieces(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		piece PieceType
		want  []string
	}{
		{name: "rook slides along the pin", piece: Rook, want: []string{"e3", "e4", "e5", "e6", "e7", "e8"}},
		{name: "bishop cannot move", piece: Bishop, want: []string{}},
		{name: "knight cannot move", piece: Knight, want: []string{}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := NewEmptyBoard()
			put(t, b, "e1", White, King)
			put(t, b, "e2", White, tt.piece)
			put(t, b, "e8", Black, Rook)
			put(t, b, "a8", Black, King)
			sameSquares(t, legalSquares(t, b, "e2"), tt.want...)
		})
	}
}

func TestKingCannotStepIntoCheck(t *testing.T) {
	t.Parallel()
	b := NewEmptyBoard()
	put(t, b, "e1", White, King).HasMoved = true
	put(t, b, "d8", Black, Rook)
	put(t, b, "f3", Black, Pawn)
	put(t, b, "h8", Black, King)

	// d-file covered by the rook, e2 and g2 by the pawn
	sameSquares(t, legalSquares(t, b, "e1"), "f1", "f2")
}

func TestEscapingCheck(t *testing.T) {
	t.Parallel()
	b := NewEmptyBoard()
	put(t, b, "e1", White, King).HasMoved = true
	put(t, b, "d1", White, Rook).HasMoved = true
	put(t, b, "a3", White, Pawn)
	put(t, b, "b4", Black, Bishop)
	put(t, b, "h8", Black, King)

	if _, inCheck := IsKingInCheck(b, White); !inCheck {
		t.Fatal("white king not in check")
	}
	// block on d2 or take the checking bishop
	sameSquares(t, legalSquares(t, b, "d1"), "d2")
	sameSquares(t, legalSquares(t, b, "a3"), "b4")
	sameSquares(t, legalSquares(t, b, "e1"), "e2", "f1", "f2")
}

func TestEnPassant(t *testing.T) {
	t.Parallel()
	b := NewEmptyBoard()
	put(t, b, "e1", White, King)
	put(t, b, "e8", Black, King)
	put(t, b, "c5", White, Pawn)
	put(t, b, "d7", Black, Pawn)
	b.ToMove = Black

	res := AttemptMove(b, sq(t, "d7"), sq(t, "d5"))
	if res == nil || !res.Accepted {
		t.Fatalf("double step rejected: %+v", res)
	}
	afterDouble := res.ResultingPosition
	if got := afterDouble.LastDoubleMoved; got == nil || *got != sq(t, "d5") {
		t.Fatalf("unexpected last double move: got=%v want=d5", got)
	}

	moves := destinations(LegalMoves(afterDouble, sq(t, "c5")))
	ep, ok := moves["d6"]
	if !ok {
		t.Fatalf("en passant missing: got=%v", moves)
	}
	if ep.Kind != MoveEnPassant || ep.Captured == nil || *ep.Captured != sq(t, "d5") {
		t.Errorf("unexpected en passant move: %+v", ep)
	}

	res = AttemptMove(afterDouble, sq(t, "c5"), sq(t, "d6"))
	if res == nil || !res.Accepted {
		t.Fatalf("en passant rejected: %+v", res)
	}
	if res.ResultingPosition.IsOccupied(sq(t, "d5")) {
		t.Error("captured pawn still on d5")
	}
	if res.CapturedSquare == nil || *res.CapturedSquare != sq(t, "d5") {
		t.Errorf("unexpected captured square: got=%v want=d5", res.CapturedSquare)
	}
	if res.CapturedPiece == nil || res.CapturedPiece.Type != Pawn || res.CapturedPiece.Color != Black {
		t.Errorf("unexpected captured piece: %+v", res.CapturedPiece)
	}

	t.Run("expires after one move", func(t *testing.T) {
		t.Parallel()
		b := afterDouble
		for _, mv := range [][2]string{{"e1", "e2"}, {"e8", "e7"}} {
			res := AttemptMove(b, sq(t, mv[0]), sq(t, mv[1]))
			if res == nil || !res.Accepted {
				t.Fatalf("move %s-%s rejected", mv[0], mv[1])
			}
			b = res.ResultingPosition
		}
		if _, ok := destinations(LegalMoves(b, sq(t, "c5")))["d6"]; ok {
			t.Error("en passant still available")
		}
	})
}

func TestCastling(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		setup     func(t *testing.T, b *BoardState)
		kingside  bool
		queenside bool
	}{
		{
			name:      "both sides",
			setup:     func(t *testing.T, b *BoardState) {},
			kingside:  true,
			queenside: true,
		},
		{
			name: "transit square attacked",
			setup: func(t *testing.T, b *BoardState) {
				put(t, b, "f8", Black, Rook)
			},
			queenside: true,
		},
		{
			name: "rook passes an attacked square",
			setup: func(t *testing.T, b *BoardState) {
				put(t, b, "b8", Black, Rook)
			},
			kingside:  true,
			queenside: true,
		},
		{
			name: "piece between king and rook",
			setup: func(t *testing.T, b *BoardState) {
				put(t, b, "b1", White, Knight)
			},
			kingside: true,
		},
		{
			name: "king in check",
			setup: func(t *testing.T, b *BoardState) {
				put(t, b, "e7", Black, Rook)
			},
		},
		{
			name: "destination attacked by pawn",
			setup: func(t *testing.T, b *BoardState) {
				put(t, b, "h2", Black, Pawn)
			},
			queenside: true,
		},
		{
			name: "pawn covers both transit squares",
			setup: func(t *testing.T, b *BoardState) {
				put(t, b, "e2", Black, Pawn)
			},
		},
		{
			name: "king has moved",
			setup: func(t *testing.T, b *BoardState) {
				b.PieceAt(Position{X: 4, Y: 0}).HasMoved = true
			},
		},
		{
			name: "rook has moved",
			setup: func(t *testing.T, b *BoardState) {
				b.PieceAt(Position{X: 7, Y: 0}).HasMoved = true
			},
			queenside: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := NewEmptyBoard()
			put(t, b, "e1", White, King)
			put(t, b, "a1", White, Rook)
			put(t, b, "h1", White, Rook)
			put(t, b, "h8", Black, King)
			tt.setup(t, b)

			moves := destinations(LegalMoves(b, sq(t, "e1")))
			g1, kingside := moves["g1"]
			c1, queenside := moves["c1"]
			if kingside != tt.kingside {
				t.Errorf("unexpected kingside castle: got=%t want=%t", kingside, tt.kingside)
			}
			if queenside != tt.queenside {
				t.Errorf("unexpected queenside castle: got=%t want=%t", queenside, tt.queenside)
			}
			if kingside && (g1.Kind != MoveCastleKingside || g1.CastleRookMove.To != sq(t, "f1")) {
				t.Errorf("unexpected kingside move: %+v", g1)
			}
			if queenside && (c1.Kind != MoveCastleQueenside || c1.CastleRookMove.To != sq(t, "d1")) {
				t.Errorf("unexpected queenside move: %+v", c1)
			}
		})
	}
}

func TestLegalMovesDoesNotMutate(t *testing.T) {
	t.Parallel()
	b := NewBoard()
	for _, mv := range [][2]string{{"e2", "e4"}, {"d7", "d5"}, {"e4", "e5"}, {"f7", "f5"}} {
		res := AttemptMove(b, sq(t, mv[0]), sq(t, mv[1]))
		if res == nil || !res.Accepted {
			t.Fatalf("move %s-%s rejected", mv[0], mv[1])
		}
		b = res.ResultingPosition
	}
	before := b.Clone()

	first := AllLegalMoves(b, White)
	second := AllLegalMoves(b, White)
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated calls returned different moves")
	}
	for _, piece := range b.Pieces(White) {
		LegalMoves(b, piece.Position)
	}
	if !reflect.DeepEqual(b, before) {
		t.Error("legal move generation changed the board")
	}
	if _, ok := destinations(LegalMoves(b, sq(t, "e5")))["f6"]; !ok {
		t.Error("en passant on f6 missing")
	}
}

func TestLegalMovesEdgeCases(t *testing.T) {
	t.Parallel()
	b := NewBoard()
	if got := LegalMoves(nil, sq(t, "e2")); len(got) != 0 {
		t.Errorf("unexpected moves for nil board: %v", got)
	}
	if got := LegalMoves(b, Position{X: 8, Y: 0}); got == nil || len(got) != 0 {
		t.Errorf("unexpected moves off the board: %v", got)
	}
	if got := LegalMoves(b, sq(t, "e4")); got == nil || len(got) != 0 {
		t.Errorf("unexpected moves from an empty square: %v", got)
	}
	// the side not on move still has its moves listed
	sameSquares(t, legalSquares(t, b, "e7"), "e6", "e5")
	if got := len(AllLegalMoves(b, White)); got != 20 {
		t.Errorf("unexpected number of opening moves: got=%d want=20", got)
	}
}
