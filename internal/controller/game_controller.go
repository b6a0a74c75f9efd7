package controller

import (
	"errors"
	"strconv"

	"github.com/benbeisheim/chessrules-backend/internal/fen"
	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

type createGameRequest struct {
	FEN string `json:"fen"`
}

// writeError maps service errors onto HTTP responses.
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, fen.ErrInvalidFEN), errors.Is(err, model.ErrHistoryIndex):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var req createGameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}

	gameID, err := gc.gameService.CreateGame(req.FEN)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Game created",
		"gameId":  gameID,
	})
}

func (gc *GameController) DeleteGame(c *fiber.Ctx) error {
	if err := gc.gameService.DeleteGame(c.Params("gameId")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(gameState)
}

// LegalMoves answers with an empty list for missing, non-numeric or
// off-board coordinates.
func (gc *GameController) LegalMoves(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	legalMoves := []model.Position{}

	x, errX := strconv.Atoi(c.Query("x"))
	y, errY := strconv.Atoi(c.Query("y"))
	if errX == nil && errY == nil {
		moves, err := gc.gameService.LegalMoves(gameID, model.Position{X: x, Y: y})
		if err != nil {
			return writeError(c, err)
		}
		legalMoves = moves
	} else if _, err := gc.gameService.GetGameState(gameID); err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{
		"legalMoves": legalMoves,
	})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	var move model.WSMove
	if err := c.BodyParser(&move); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid move body",
		})
	}

	result, err := gc.gameService.HandleMove(gameID, move)
	if err != nil {
		return writeError(c, err)
	}
	return gc.resultWithState(c, gameID, result)
}

func (gc *GameController) Select(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	var square model.Position
	if err := c.BodyParser(&square); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid square body",
		})
	}

	result, err := gc.gameService.HandleSelect(gameID, square)
	if err != nil {
		return writeError(c, err)
	}
	return gc.resultWithState(c, gameID, result)
}

func (gc *GameController) resultWithState(c *fiber.Ctx, gameID string, result *model.MoveResult) error {
	gameState, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"result": result,
		"state":  gameState,
	})
}

func (gc *GameController) History(c *fiber.Ctx) error {
	entries, err := gc.gameService.History(c.Params("gameId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"history": entries,
	})
}

func (gc *GameController) JumpTo(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "history index must be a number",
		})
	}
	if err := gc.gameService.JumpTo(gameID, index); err != nil {
		return writeError(c, err)
	}

	gameState, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(gameState)
}
