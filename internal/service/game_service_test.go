package service

import (
	"errors"
	"testing"

	"github.com/benbeisheim/chessrules-backend/internal/fen"
	"github.com/benbeisheim/chessrules-backend/internal/model"
)

func TestGameManager(t *testing.T) {
	t.Parallel()
	gm := NewGameManager()
	id := gm.CreateGame(nil)
	other := gm.CreateGame(nil)
	if id == other {
		t.Fatal("duplicate game ids")
	}
	if gm.Count() != 2 {
		t.Errorf("unexpected count: got=%d want=2", gm.Count())
	}
	g, err := gm.GetGame(id)
	if err != nil || g.ID != id {
		t.Fatalf("get game: %v", err)
	}
	if err := gm.DeleteGame(id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := gm.GetGame(id); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("unexpected error: got=%v want=%v", err, ErrGameNotFound)
	}
	if err := gm.DeleteGame(id); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("unexpected error: got=%v want=%v", err, ErrGameNotFound)
	}
}

func TestGameServiceSessionsAreIndependent(t *testing.T) {
	t.Parallel()
	gs := NewGameService(NewGameManager())
	a, err := gs.CreateGame("")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	b, err := gs.CreateGame("")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	res, err := gs.HandleMove(a, model.WSMove{From: model.Position{X: 4, Y: 1}, To: model.Position{X: 4, Y: 3}})
	if err != nil || res == nil || !res.Accepted {
		t.Fatalf("move: res=%+v err=%v", res, err)
	}
	stateA, _ := gs.GetGameState(a)
	stateB, _ := gs.GetGameState(b)
	if stateA.HistoryLength != 2 || stateB.HistoryLength != 1 {
		t.Errorf("unexpected history lengths: a=%d b=%d", stateA.HistoryLength, stateB.HistoryLength)
	}

	history, err := gs.History(a)
	if err != nil || len(history) != 2 {
		t.Fatalf("history: len=%d err=%v", len(history), err)
	}
	if err := gs.JumpTo(a, 0); err != nil {
		t.Fatalf("jump: %v", err)
	}
	if err := gs.JumpTo(a, 5); !errors.Is(err, model.ErrHistoryIndex) {
		t.Errorf("unexpected error: got=%v want=%v", err, model.ErrHistoryIndex)
	}
	moves, err := gs.LegalMoves(b, model.Position{X: 6, Y: 0})
	if err != nil || len(moves) != 2 {
		t.Errorf("legal moves: %v err=%v", moves, err)
	}
	if res, err := gs.HandleSelect(b, model.Position{X: 6, Y: 0}); err != nil || res != nil {
		t.Errorf("select: res=%+v err=%v", res, err)
	}
}

func TestGameServiceFromFEN(t *testing.T) {
	t.Parallel()
	gs := NewGameService(NewGameManager())
	id, err := gs.CreateGame("4k3/8/8/8/8/8/8/4K2R w K - 0 1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	res, err := gs.HandleMove(id, model.WSMove{From: model.Position{X: 4, Y: 0}, To: model.Position{X: 6, Y: 0}})
	if err != nil || res == nil || !res.Accepted || !res.IsCastle {
		t.Fatalf("castle: res=%+v err=%v", res, err)
	}

	if _, err := gs.CreateGame("not a fen"); !errors.Is(err, fen.ErrInvalidFEN) {
		t.Errorf("unexpected error: got=%v want=%v", err, fen.ErrInvalidFEN)
	}
}

func TestGameServiceUnknownGame(t *testing.T) {
	t.Parallel()
	gs := NewGameService(NewGameManager())
	checks := map[string]error{}
	_, checks["state"] = gs.GetGameState("missing")
	_, checks["moves"] = gs.LegalMoves("missing", model.Position{})
	_, checks["move"] = gs.HandleMove("missing", model.WSMove{})
	_, checks["select"] = gs.HandleSelect("missing", model.Position{})
	_, checks["history"] = gs.History("missing")
	checks["jump"] = gs.JumpTo("missing", 0)
	checks["delete"] = gs.DeleteGame("missing")
	checks["register"] = gs.RegisterConnection("missing", "client", nil)
	for name, err := range checks {
		if !errors.Is(err, ErrGameNotFound) {
			t.Errorf("unexpected %s error: got=%v want=%v", name, err, ErrGameNotFound)
		}
	}
}
