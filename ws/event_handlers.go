package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/judgegodwins/tetris-duel/game"
	"github.com/judgegodwins/tetris-duel/protocol"
	"github.com/judgegodwins/tetris-duel/util"
)

type roomRequest struct {
	RoomID string `validate:"required,alphanum,max=12"`
}

func validateRoomID(roomID string) error {
	if err := util.Validate.Struct(roomRequest{RoomID: roomID}); err != nil {
		return fmt.Errorf("invalid room code %q", roomID)
	}
	return nil
}

func CreateRoomHandler(ctx context.Context, msg protocol.Message, c *Client) error {
	if err := validateRoomID(msg.RoomID); err != nil {
		return err
	}

	if err := c.CanEnter(msg.RoomID, true); err != nil {
		return fmt.Errorf("room %v: %w", msg.RoomID, err)
	}

	if err := c.manager.registerRoom(ctx, msg.RoomID); err != nil {
		return err
	}

	if err := c.Create(msg.RoomID); err != nil {
		return fmt.Errorf("room %v: %w", msg.RoomID, err)
	}

	// only leave the previous room once the new one is secured
	c.manager.leaveRooms(ctx, c, "opponent left", msg.RoomID)

	c.PushToEgress(protocol.NewStatus("room (%v) created, waiting for an opponent", msg.RoomID))

	return nil
}

func JoinRoomHandler(ctx context.Context, msg protocol.Message, c *Client) error {
	if err := validateRoomID(msg.RoomID); err != nil {
		return err
	}

	exists, err := c.manager.roomExists(ctx, msg.RoomID)
	if err != nil {
		return err
	}

	if !exists {
		return fmt.Errorf("room %v: %w", msg.RoomID, ErrRoomNotFound)
	}

	if err := c.Join(msg.RoomID); err != nil {
		return fmt.Errorf("room %v: %w", msg.RoomID, err)
	}

	c.manager.leaveRooms(ctx, c, "opponent left", msg.RoomID)

	// catch the joiner up with whatever the peer last sent
	states, err := c.manager.peerStates(ctx, msg.RoomID, c.ID)
	if err != nil {
		log.Printf("error reading states of room %v: %v", msg.RoomID, err)
	}

	for _, state := range states {
		c.PushToEgress(protocol.NewOpponent(state))
	}

	c.manager.EmitToRoom(msg.RoomID, protocol.NewStatus("%v joined the room", c.Username), c)

	return nil
}

func StateHandler(ctx context.Context, msg protocol.Message, c *Client) error {
	if !c.InRoom(msg.RoomID) {
		return fmt.Errorf("not in room %q", msg.RoomID)
	}

	if !msg.HasState() {
		return fmt.Errorf("state message without state")
	}

	var snap game.Snapshot

	if err := json.Unmarshal(msg.State, &snap); err != nil {
		return fmt.Errorf("invalid state: %w", err)
	}

	if err := util.Validate.Struct(snap); err != nil {
		return fmt.Errorf("invalid state: %w", err)
	}

	c.manager.EmitToRoom(msg.RoomID, protocol.NewOpponent(msg.State), c)

	if err := c.manager.saveState(ctx, msg.RoomID, c.ID, msg.State); err != nil {
		return err
	}

	return nil
}
