package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"

	"github.com/benbeisheim/chessrules-backend/internal/fen"
	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/render"
)

const (
	exitOK = iota
	exitErr
)

var (
	startFEN  = flag.String("fen", "", "starting position in FEN, standard setup when empty")
	showMoves = flag.String("moves", "", "square whose legal destinations are highlighted after the last move, e.g. e2")
	noColor   = flag.Bool("nocolor", false, "disable colored output")
)

func main() {
	flag.Parse()
	color.NoColor = color.NoColor || *noColor

	if err := realMain(flag.Args()); err != nil {
		log.Println(err)
		os.Exit(exitErr)
	}
	os.Exit(exitOK)
}

// realMain plays each argument ("e2e4") in order and prints the board after
// every accepted move. An illegal move stops the run.
func realMain(args []string) error {
	b := model.NewBoard()
	if *startFEN != "" {
		parsed, err := fen.Parse(*startFEN)
		if err != nil {
			return err
		}
		b = parsed
	}
	fmt.Println(render.Draw(b, nil))

	first := b.ToMove
	for i, arg := range args {
		from, to, err := parseMove(arg)
		if err != nil {
			return err
		}
		res := model.AttemptMove(b, from, to)
		if res == nil || !res.Accepted {
			return fmt.Errorf("move %d %q rejected", i+1, arg)
		}
		b = res.ResultingPosition

		fmt.Printf("===== [#%d] %s\n", moveNumber(first, i), res.Move)
		fmt.Println(render.Draw(b, nil))
		fmt.Println(fen.Encode(b))
		if res.CheckStatus.White || res.CheckStatus.Black {
			fmt.Printf("check: white=%t black=%t\n", res.CheckStatus.White, res.CheckStatus.Black)
		}
	}

	if *showMoves != "" {
		sq, err := model.ParseSquare(*showMoves)
		if err != nil {
			return err
		}
		fmt.Println(render.Draw(b, model.LegalDestinations(b, sq)))
	}
	return nil
}

// moveNumber is the full-move number of the i-th ply counted from a
// position where first is to move.
func moveNumber(first model.Color, i int) int {
	if first == model.Black {
		i++
	}
	return i/2 + 1
}

var errMoveFormat = errors.New("move must look like e2e4")

func parseMove(s string) (model.Position, model.Position, error) {
	if len(s) != 4 {
		return model.Position{}, model.Position{}, fmt.Errorf("%w: %q", errMoveFormat, s)
	}
	from, err := model.ParseSquare(s[:2])
	if err != nil {
		return model.Position{}, model.Position{}, err
	}
	to, err := model.ParseSquare(s[2:])
	if err != nil {
		return model.Position{}, model.Position{}, err
	}
	return from, to, nil
}
