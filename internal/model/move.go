package model

import "fmt"

type MoveKind string

const (
	MoveNormal          MoveKind = "normal"
	MoveCapture         MoveKind = "capture"
	MoveEnPassant       MoveKind = "enPassant"
	MoveCastleKingside  MoveKind = "castleKingside"
	MoveCastleQueenside MoveKind = "castleQueenside"
)

func (k MoveKind) IsCastle() bool {
	return k == MoveCastleKingside || k == MoveCastleQueenside
}

type WSMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

type CastleRookMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

type Move struct {
	Kind           MoveKind        `json:"kind"`
	From           Position        `json:"from"`
	To             Position        `json:"to"`
	Captured       *Position       `json:"captured"`
	CastleRookMove *CastleRookMove `json:"castleRookMove"`
}

func (m Move) String() string {
	switch m.Kind {
	case MoveCastleKingside:
		return "O-O"
	case MoveCastleQueenside:
		return "O-O-O"
	case MoveCapture, MoveEnPassant:
		return fmt.Sprintf("%sx%s", m.From.Notation(), m.To.Notation())
	}
	return fmt.Sprintf("%s-%s", m.From.Notation(), m.To.Notation())
}

type SimpleMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}
