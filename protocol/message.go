package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/samber/lo"
)

// Message types sent by clients.
const (
	TypeCreate = "create"
	TypeJoin   = "join"
	TypeState  = "state"
)

// Message types sent by the relay.
const (
	TypeRoom     = "room"
	TypeStatus   = "status"
	TypeOpponent = "opponent"
)

// Message is the envelope for every frame exchanged with the relay.
// State carries a game snapshot; a JSON null state on an opponent message
// means the peer left the room.
type Message struct {
	Type    string          `json:"type"`
	RoomID  string          `json:"roomId,omitempty"`
	State   json.RawMessage `json:"state,omitempty"`
	Message string          `json:"message,omitempty"`
}

const RoomCodeLength = 6

var roomCodeCharset = append(append([]rune{}, lo.UpperCaseLettersCharset...), lo.NumbersCharset...)

// NewRoomCode returns a short random alphanumeric room code.
func NewRoomCode() string {
	return lo.RandomString(RoomCodeLength, roomCodeCharset)
}

func NewStatus(format string, args ...any) Message {
	return Message{Type: TypeStatus, Message: fmt.Sprintf(format, args...)}
}

func NewRoom(roomID string) Message {
	return Message{Type: TypeRoom, RoomID: roomID}
}

// NewOpponent wraps a raw snapshot. A nil state encodes as null.
func NewOpponent(state json.RawMessage) Message {
	if len(state) == 0 {
		state = json.RawMessage("null")
	}
	return Message{Type: TypeOpponent, State: state}
}

// NewState marshals v as the state of a client state broadcast.
func NewState(roomID string, v any) (Message, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: TypeState, RoomID: roomID, State: b}, nil
}

// HasState reports whether the message carries a non-null state.
func (m Message) HasState() bool {
	return len(m.State) > 0 && string(m.State) != "null"
}
