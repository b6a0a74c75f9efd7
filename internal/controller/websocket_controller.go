package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/benbeisheim/chessrules-backend/internal/middleware"
	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/service"
	"github.com/benbeisheim/chessrules-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	// Extract game ID and client ID from context
	gameID := c.Params("gameId")
	clientID, _ := c.Locals(middleware.ClientIDKey).(string)

	if err := wsc.register(gameID, clientID, c); err != nil {
		log.Printf("failed to register connection: %v", err)
		return
	}

	// Start message handling loop
	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Printf("read error: %v", err)
			break
		}

		// Handle different types of WebSocket messages
		if messageType == websocket.TextMessage {
			var msg ws.Message
			if err := json.Unmarshal(message, &msg); err != nil {
				log.Printf("parse error: %v", err)
				wsc.send(gameID, c, ws.MessageTypeError, ws.ErrorPayload{Error: "invalid message"})
				continue
			}

			result, err := wsc.handleMessage(gameID, msg)
			if err != nil {
				log.Printf("handle error: %v", err)
				wsc.send(gameID, c, ws.MessageTypeError, ws.ErrorPayload{Error: err.Error()})
				continue
			}
			if msg.Type == ws.MessageTypeMove || result != nil {
				wsc.send(gameID, c, ws.MessageTypeResult, result)
			}
		}
	}

	// Clean up when connection closes
	wsc.gameService.UnregisterConnection(gameID, clientID, c)
}

// register attaches conn to the game. A refused duplicate has already been
// closed by the game; any other failure is closed here.
func (wsc *WebSocketController) register(gameID, clientID string, conn model.Conn) error {
	err := wsc.gameService.RegisterConnection(gameID, clientID, conn)
	if err != nil && !errors.Is(err, model.ErrConnectionRefused) {
		_ = conn.Close()
	}
	return err
}

// Handle different types of incoming messages. State changes reach every
// observer through the game's broadcast; the returned result goes to the
// sender only.
func (wsc *WebSocketController) handleMessage(gameID string, msg ws.Message) (*model.MoveResult, error) {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.WSMove
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return nil, err
		}
		return wsc.gameService.HandleMove(gameID, move)

	case ws.MessageTypeSelect:
		var square model.Position
		if err := json.Unmarshal(msg.Payload, &square); err != nil {
			return nil, err
		}
		return wsc.gameService.HandleSelect(gameID, square)

	case ws.MessageTypeJumpTo:
		var jump ws.JumpToPayload
		if err := json.Unmarshal(msg.Payload, &jump); err != nil {
			return nil, err
		}
		return nil, wsc.gameService.JumpTo(gameID, jump.Index)

	default:
		return nil, fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

// Helper method to send a typed message to one connection
func (wsc *WebSocketController) send(gameID string, c model.Conn, t ws.MessageType, payload interface{}) {
	msg, err := ws.NewMessage(t, payload)
	if err != nil {
		log.Printf("failed to marshal %s message: %v", t, err)
		return
	}
	if err := wsc.gameService.Send(gameID, c, msg); err != nil {
		log.Printf("failed to send %s message: %v", t, err)
	}
}
