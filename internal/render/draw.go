package render

import (
	"strings"

	"github.com/fatih/color"

	"github.com/benbeisheim/chessrules-backend/internal/model"
)

var (
	lightSquare = color.New(color.BgHiWhite, color.FgBlack)
	darkSquare  = color.New(color.BgHiBlack, color.FgHiWhite)
	highlight   = color.New(color.BgYellow, color.FgBlack)
	checkSquare = color.New(color.BgRed, color.FgHiWhite)
)

// Draw renders b with rank 8 at the top. Highlighted squares (typically legal
// destinations) are drawn in yellow and a king in check in red. Colors are
// dropped automatically when the output is not a terminal.
func Draw(b *model.BoardState, highlights []model.Position) string {
	marked := make(map[model.Position]bool, len(highlights))
	for _, p := range highlights {
		marked[p] = true
	}
	status := model.ComputeCheckStatus(b)

	var sb strings.Builder
	for y := 7; y >= 0; y-- {
		sb.WriteString(model.Position{X: 0, Y: y}.Notation()[1:])
		sb.WriteByte(' ')
		for x := 0; x < 8; x++ {
			p := model.Position{X: x, Y: y}
			cell := " . "
			piece := b.PieceAt(p)
			if piece != nil {
				cell = " " + piece.Symbol() + " "
			}

			style := lightSquare
			if (x+y)%2 == 0 {
				style = darkSquare
			}
			switch {
			case piece != nil && piece.Type == model.King && status.InCheck(piece.Color):
				style = checkSquare
			case marked[p]:
				style = highlight
			}
			sb.WriteString(style.Sprint(cell))
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   a  b  c  d  e  f  g  h\n")
	return sb.String()
}
