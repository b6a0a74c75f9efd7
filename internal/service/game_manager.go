package service

import (
	"errors"
	"log"
	"sync"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/google/uuid"
)

var ErrGameNotFound = errors.New("game not found")

// GameManager is the registry of sessions. Sessions share no state, so its
// lock only guards the map itself.
type GameManager struct {
	games map[string]*model.Game
	mu    sync.RWMutex
}

func NewGameManager() *GameManager {
	return &GameManager{
		games: make(map[string]*model.Game),
	}
}

// CreateGame registers a new session starting from start (the standard
// setup when nil) and returns its id.
func (gm *GameManager) CreateGame(start *model.BoardState) string {
	gameID := uuid.New().String()
	game := model.NewGame(gameID, start)

	gm.mu.Lock()
	gm.games[gameID] = game
	gm.mu.Unlock()

	log.Printf("created game %s", gameID)
	return gameID
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}

	return game, nil
}

func (gm *GameManager) DeleteGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; !exists {
		return ErrGameNotFound
	}
	delete(gm.games, gameID)
	log.Printf("deleted game %s", gameID)
	return nil
}

func (gm *GameManager) Count() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return len(gm.games)
}
