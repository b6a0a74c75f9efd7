package service

import (
	"fmt"

	"github.com/benbeisheim/chessrules-backend/internal/fen"
	"github.com/benbeisheim/chessrules-backend/internal/model"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

// CreateGame starts a session from the standard setup, or from startFEN
// when it is not empty.
func (gs *GameService) CreateGame(startFEN string) (string, error) {
	var start *model.BoardState
	if startFEN != "" {
		b, err := fen.Parse(startFEN)
		if err != nil {
			return "", fmt.Errorf("failed to create game: %w", err)
		}
		start = b
	}
	return gs.gameManager.CreateGame(start), nil
}

func (gs *GameService) DeleteGame(gameID string) error {
	return gs.gameManager.DeleteGame(gameID)
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

func (gs *GameService) LegalMoves(gameID string, square model.Position) ([]model.Position, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.LegalMoves(square), nil
}

func (gs *GameService) HandleMove(gameID string, move model.WSMove) (*model.MoveResult, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.MakeMove(move), nil
}

func (gs *GameService) HandleSelect(gameID string, square model.Position) (*model.MoveResult, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.Select(square), nil
}

func (gs *GameService) History(gameID string) ([]model.HistoryEntry, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.History(), nil
}

func (gs *GameService) JumpTo(gameID string, index int) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.JumpTo(index)
}

func (gs *GameService) RegisterConnection(gameID string, clientID string, conn model.Conn) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(clientID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, clientID string, conn model.Conn) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(clientID, conn)
}

// Send writes v to conn without racing the game's broadcasts.
func (gs *GameService) Send(gameID string, conn model.Conn, v interface{}) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.SendTo(conn, v)
}

func (gs *GameService) GameExists(gameID string) bool {
	_, err := gs.gameManager.GetGame(gameID)
	return err == nil
}

// GameCount is the number of live sessions.
func (gs *GameService) GameCount() int {
	return gs.gameManager.Count()
}
