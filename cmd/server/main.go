package main

import (
	"log"

	"github.com/benbeisheim/chessrules-backend/internal/config"
	"github.com/benbeisheim/chessrules-backend/internal/controller"
	"github.com/benbeisheim/chessrules-backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Initialize services
	gameManager := service.NewGameManager()
	gameService := service.NewGameService(gameManager)

	app := controller.NewApp(cfg, gameService)

	log.Printf("listening on %s", cfg.Addr)
	log.Fatal(app.Listen(cfg.Addr))
}
