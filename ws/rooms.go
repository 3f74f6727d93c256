package ws

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/judgegodwins/tetris-duel/protocol"
	"github.com/judgegodwins/tetris-duel/util"
	"github.com/samber/lo"
)

var ErrRoomNotFound = errors.New("room not found")

const reserveAttempts = 5

// registerRoom records roomID in redis, keeping any fields it already has.
func (m *Manager) registerRoom(ctx context.Context, roomID string) error {
	roomKey := util.GetRoomKey(roomID)

	if err := m.rdb.HSet(ctx, roomKey, map[string]interface{}{
		util.RoomIDKey:        roomID,
		util.RoomCreatedAtKey: time.Now().UTC().Format(time.RFC3339),
	}).Err(); err != nil {
		return err
	}

	return m.rdb.Expire(ctx, roomKey, m.config.RoomTTL).Err()
}

// ReserveRoom registers a fresh random room code.
func (m *Manager) ReserveRoom(ctx context.Context) (string, error) {
	for i := 0; i < reserveAttempts; i++ {
		roomID := protocol.NewRoomCode()
		roomKey := util.GetRoomKey(roomID)

		ok, err := m.rdb.HSetNX(ctx, roomKey, util.RoomIDKey, roomID).Result()
		if err != nil {
			return "", err
		}

		if !ok {
			continue
		}

		if err := m.registerRoom(ctx, roomID); err != nil {
			return "", err
		}

		return roomID, nil
	}

	return "", errors.New("could not find a free room code")
}

func (m *Manager) roomExists(ctx context.Context, roomID string) (bool, error) {
	n, err := m.rdb.Exists(ctx, util.GetRoomKey(roomID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// RoomInfo reports whether roomID is registered and how many players are
// connected to it.
func (m *Manager) RoomInfo(ctx context.Context, roomID string) (bool, int, error) {
	exists, err := m.roomExists(ctx, roomID)
	if err != nil {
		return false, 0, err
	}

	return exists, len(m.Members(roomID)), nil
}

func (m *Manager) saveState(ctx context.Context, roomID, clientID string, state json.RawMessage) error {
	roomKey := util.GetRoomKey(roomID)

	if err := m.rdb.HSet(ctx, roomKey, util.GetRoomStateField(clientID), []byte(state)).Err(); err != nil {
		return err
	}

	return m.rdb.Expire(ctx, roomKey, m.config.RoomTTL).Err()
}

// peerStates returns the stored snapshots of everyone in roomID but clientID.
func (m *Manager) peerStates(ctx context.Context, roomID, clientID string) ([]json.RawMessage, error) {
	room, err := m.rdb.HGetAll(ctx, util.GetRoomKey(roomID)).Result()
	if err != nil {
		return nil, err
	}

	own := util.GetRoomStateField(clientID)
	states := lo.PickBy(room, func(field string, _ string) bool {
		return strings.HasPrefix(field, util.RoomStatePrefix) && field != own
	})

	return lo.Map(lo.Values(states), func(state string, _ int) json.RawMessage {
		return json.RawMessage(state)
	}), nil
}

func (m *Manager) deleteState(ctx context.Context, roomID, clientID string) error {
	return m.rdb.HDel(ctx, util.GetRoomKey(roomID), util.GetRoomStateField(clientID)).Err()
}

func (m *Manager) deleteRoom(ctx context.Context, roomID string) error {
	return m.rdb.Del(ctx, util.GetRoomKey(roomID)).Err()
}
