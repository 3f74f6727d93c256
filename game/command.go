package game

import "fmt"

// Command is one discrete player input.
type Command string

const (
	CmdMoveLeft    Command = "moveLeft"
	CmdMoveRight   Command = "moveRight"
	CmdSoftDrop    Command = "softDrop"
	CmdHardDrop    Command = "hardDrop"
	CmdRotate      Command = "rotate"
	CmdTogglePause Command = "togglePause"
	CmdStart       Command = "start"
	CmdReset       Command = "reset"
)

// Apply runs a single command as one atomic engine transition.
func (e *Engine) Apply(c Command) error {
	switch c {
	case CmdMoveLeft:
		e.MoveLeft()
	case CmdMoveRight:
		e.MoveRight()
	case CmdSoftDrop:
		e.SoftDrop()
	case CmdHardDrop:
		e.HardDrop()
	case CmdRotate:
		e.Rotate()
	case CmdTogglePause:
		e.TogglePause()
	case CmdStart:
		e.Start()
	case CmdReset:
		e.Reset()
	default:
		return fmt.Errorf("unknown command %q", string(c))
	}
	return nil
}
