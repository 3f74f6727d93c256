package main

import (
	"testing"

	"github.com/judgegodwins/tetris-duel/game"
	"github.com/nsf/termbox-go"
	"github.com/stretchr/testify/require"
)

func TestKeyAction(t *testing.T) {
	cases := []struct {
		name string
		ev   termbox.Event
		act  action
		cmd  game.Command
	}{
		{"left", termbox.Event{Type: termbox.EventKey, Key: termbox.KeyArrowLeft}, actionCommand, game.CmdMoveLeft},
		{"right", termbox.Event{Type: termbox.EventKey, Key: termbox.KeyArrowRight}, actionCommand, game.CmdMoveRight},
		{"down", termbox.Event{Type: termbox.EventKey, Key: termbox.KeyArrowDown}, actionCommand, game.CmdSoftDrop},
		{"up", termbox.Event{Type: termbox.EventKey, Key: termbox.KeyArrowUp}, actionCommand, game.CmdRotate},
		{"space", termbox.Event{Type: termbox.EventKey, Key: termbox.KeySpace}, actionCommand, game.CmdHardDrop},
		{"pause", termbox.Event{Type: termbox.EventKey, Ch: 'p'}, actionCommand, game.CmdTogglePause},
		{"start", termbox.Event{Type: termbox.EventKey, Ch: 'S'}, actionCommand, game.CmdStart},
		{"reset", termbox.Event{Type: termbox.EventKey, Ch: 'r'}, actionCommand, game.CmdReset},
		{"create", termbox.Event{Type: termbox.EventKey, Ch: 'c'}, actionCreateRoom, ""},
		{"join", termbox.Event{Type: termbox.EventKey, Ch: 'j'}, actionJoinRoom, ""},
		{"quit", termbox.Event{Type: termbox.EventKey, Ch: 'q'}, actionQuit, ""},
		{"esc", termbox.Event{Type: termbox.EventKey, Key: termbox.KeyEsc}, actionQuit, ""},
		{"unbound", termbox.Event{Type: termbox.EventKey, Ch: 'x'}, actionNone, ""},
		{"resize", termbox.Event{Type: termbox.EventResize}, actionNone, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			act, cmd := keyAction(tc.ev)
			require.Equal(t, tc.act, act)
			require.Equal(t, tc.cmd, cmd)
		})
	}
}

func TestApplyStart(t *testing.T) {
	var published []game.Snapshot
	e := game.NewEngine(game.WithPublisher(game.PublisherFunc(func(s game.Snapshot) {
		published = append(published, s)
	})))

	require.NoError(t, apply(e, game.CmdStart))
	require.True(t, e.Running())

	e.HardDrop()
	score, board := e.Score(), e.Snapshot().Grid

	// pausing and starting again resumes the same game
	require.NoError(t, apply(e, game.CmdTogglePause))
	require.NoError(t, apply(e, game.CmdStart))
	require.False(t, e.Paused())
	require.Equal(t, score, e.Score())
	require.Equal(t, board, e.Snapshot().Grid)
	require.NotEmpty(t, published)
}
