package main

import (
	"github.com/judgegodwins/tetris-duel/game"
	"github.com/nsf/termbox-go"
)

type action int

const (
	actionNone action = iota
	actionCommand
	actionCreateRoom
	actionJoinRoom
	actionQuit
)

var keyCommands = map[termbox.Key]game.Command{
	termbox.KeyArrowLeft:  game.CmdMoveLeft,
	termbox.KeyArrowRight: game.CmdMoveRight,
	termbox.KeyArrowDown:  game.CmdSoftDrop,
	termbox.KeyArrowUp:    game.CmdRotate,
	termbox.KeySpace:      game.CmdHardDrop,
}

var runeCommands = map[rune]game.Command{
	'p': game.CmdTogglePause,
	'P': game.CmdTogglePause,
	's': game.CmdStart,
	'S': game.CmdStart,
	'r': game.CmdReset,
	'R': game.CmdReset,
}

// keyAction maps a key event to what the event loop should do with it.
func keyAction(ev termbox.Event) (action, game.Command) {
	if ev.Type != termbox.EventKey {
		return actionNone, ""
	}

	switch ev.Key {
	case termbox.KeyEsc, termbox.KeyCtrlC:
		return actionQuit, ""
	}

	if cmd, ok := keyCommands[ev.Key]; ok && ev.Ch == 0 {
		return actionCommand, cmd
	}

	switch ev.Ch {
	case 'q', 'Q':
		return actionQuit, ""
	case 'c', 'C':
		return actionCreateRoom, ""
	case 'j', 'J':
		return actionJoinRoom, ""
	}

	if cmd, ok := runeCommands[ev.Ch]; ok {
		return actionCommand, cmd
	}

	return actionNone, ""
}

// apply runs cmd against e. Start on a game that is not running begins a
// fresh one, the way the start button does.
func apply(e *game.Engine, cmd game.Command) error {
	if cmd == game.CmdStart && !e.Running() {
		e.Reset()
	}
	return e.Apply(cmd)
}
