package util

import "fmt"

const (
	RoomIDKey        = "id"
	RoomCreatedAtKey = "created_at"
	RoomStatePrefix  = "state:"
	MaxRoomPlayers   = 2
)

func GetRoomKey(room string) string {
	return fmt.Sprintf("room:%v", room)
}

// GetRoomStateField is the hash field holding a client's latest snapshot.
func GetRoomStateField(clientID string) string {
	return RoomStatePrefix + clientID
}
