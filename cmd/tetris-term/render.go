package main

import (
	"fmt"

	"github.com/judgegodwins/tetris-duel/game"
	"github.com/nsf/termbox-go"
)

const (
	cellWidth  = 2
	boardLeft  = 1
	boardTop   = 1
	panelLeft  = boardLeft + game.Cols*cellWidth + 4
	rivalLeft  = panelLeft + 24
	ghostColor = termbox.ColorWhite
)

var pieceColors = map[game.PieceType]termbox.Attribute{
	game.I: termbox.ColorCyan,
	game.J: termbox.ColorBlue,
	game.L: termbox.ColorWhite | termbox.AttrBold,
	game.O: termbox.ColorYellow,
	game.S: termbox.ColorGreen,
	game.T: termbox.ColorMagenta,
	game.Z: termbox.ColorRed,
}

type view struct {
	local    game.Snapshot
	opponent *game.Snapshot
	session  string
	rival    string
	room     string
}

func (v *view) draw() error {
	if err := termbox.Clear(termbox.ColorDefault, termbox.ColorDefault); err != nil {
		return err
	}

	drawBoard(boardLeft, boardTop, v.local, true)

	y := boardTop
	drawText(panelLeft, y, "NEXT", termbox.AttrBold)
	if v.local.Next != nil {
		drawPiece(panelLeft, y+1, v.local.Next.Matrix, v.local.Next.Type, false)
	}

	y += 6
	drawText(panelLeft, y, fmt.Sprintf("Score %d", v.local.Score), termbox.ColorDefault)
	drawText(panelLeft, y+1, fmt.Sprintf("Lines %d", v.local.Lines), termbox.ColorDefault)
	drawText(panelLeft, y+2, fmt.Sprintf("Level %d", v.local.Level), termbox.ColorDefault)
	drawText(panelLeft, y+4, statusLine(v.local), termbox.AttrBold)

	y += 7
	if v.room != "" {
		drawText(panelLeft, y, "Room "+v.room, termbox.ColorDefault)
	}
	drawText(panelLeft, y+1, v.session, termbox.ColorDefault)
	drawText(panelLeft, y+2, v.rival, termbox.ColorDefault)

	drawText(boardLeft, boardTop+game.Rows+2,
		"←/→ move  ↑ rotate  ↓ drop  space hard drop  s start  p pause  r reset  c create  j join  q quit",
		termbox.ColorDefault)

	if v.opponent != nil {
		drawText(rivalLeft, boardTop-1, "OPPONENT", termbox.AttrBold)
		drawBoard(rivalLeft, boardTop, *v.opponent, false)
		drawText(rivalLeft, boardTop+game.Rows+1,
			fmt.Sprintf("%d pts  L%d  %s", v.opponent.Score, v.opponent.Level, statusLine(*v.opponent)),
			termbox.ColorDefault)
	}

	return termbox.Flush()
}

func statusLine(s game.Snapshot) string {
	switch {
	case s.GameOver:
		return "GAME OVER"
	case s.Status == game.StatusPaused:
		return "PAUSED"
	case s.Status == game.StatusRunning:
		return "RUNNING"
	default:
		return "press s to start"
	}
}

func drawBoard(left, top int, s game.Snapshot, ghost bool) {
	for x := -1; x <= game.Cols*cellWidth; x++ {
		termbox.SetCell(left+x, top+game.Rows, '─', termbox.ColorDefault, termbox.ColorDefault)
	}
	for y := 0; y < game.Rows; y++ {
		termbox.SetCell(left-1, top+y, '│', termbox.ColorDefault, termbox.ColorDefault)
		termbox.SetCell(left+game.Cols*cellWidth, top+y, '│', termbox.ColorDefault, termbox.ColorDefault)
	}

	for y, row := range s.Grid {
		for x, cell := range row {
			if cell == game.Empty {
				setBlock(left, top, x, y, '·', termbox.ColorDefault, termbox.ColorDefault)
				continue
			}
			setBlock(left, top, x, y, ' ', termbox.ColorDefault, pieceColors[cell])
		}
	}

	if ghost && s.Ghost != nil && !s.GameOver {
		drawPiece(left+s.Ghost.Pos.X*cellWidth, top+s.Ghost.Pos.Y, s.Ghost.Matrix, s.Ghost.Type, true)
	}

	if s.Active != nil {
		drawPiece(left+s.Active.Pos.X*cellWidth, top+s.Active.Pos.Y, s.Active.Matrix, s.Active.Type, false)
	}
}

func drawPiece(left, top int, matrix [][]int, t game.PieceType, ghost bool) {
	for y, row := range matrix {
		for x, v := range row {
			if v == 0 || top+y < boardTop {
				continue
			}
			if ghost {
				setBlock(left, top, x, y, '░', ghostColor, termbox.ColorDefault)
				continue
			}
			setBlock(left, top, x, y, ' ', termbox.ColorDefault, pieceColors[t])
		}
	}
}

func setBlock(left, top, x, y int, ch rune, fg, bg termbox.Attribute) {
	for i := 0; i < cellWidth; i++ {
		termbox.SetCell(left+x*cellWidth+i, top+y, ch, fg, bg)
	}
}

func drawText(x, y int, s string, fg termbox.Attribute) {
	for _, r := range s {
		termbox.SetCell(x, y, r, fg, termbox.ColorDefault)
		x++
	}
}
