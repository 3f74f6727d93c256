package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/judgegodwins/tetris-duel/protocol"
	"github.com/judgegodwins/tetris-duel/util"
	"golang.org/x/exp/slices"
)

var (
	pongWait     = 10 * time.Second
	pingInterval = (pongWait * 9) / 10
	writeWait    = 5 * time.Second
)

const (
	// a snapshot with a full board is a little over 2KB
	maxMessageSize = 16 * 1024
	egressSize     = 32
)

type Client struct {
	ID          string
	UserID      string
	Username    string
	connection  *websocket.Conn
	manager     *Manager
	egress      chan protocol.Message
	JoinedRooms []string
	err         chan error
}

func NewClient(conn *websocket.Conn, manager *Manager) *Client {
	return &Client{
		ID:          uuid.NewString(),
		connection:  conn,
		manager:     manager,
		egress:      make(chan protocol.Message, egressSize),
		JoinedRooms: []string{},
		err:         make(chan error, 2),
	}
}

// Reads incoming messages from the clients websocket connection
func (c *Client) readMessages(ctx context.Context) {
	c.connection.SetReadLimit(maxMessageSize)

	if err := c.connection.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.handleError(err)
		return
	}

	c.connection.SetPongHandler(c.pongHandler)

	for {
		select {
		case <-ctx.Done():
			return
		default:
			_, payload, err := c.connection.ReadMessage()

			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Printf("error reading message: %v", err)
				}
				c.handleError(err)
				return
			}

			var msg protocol.Message

			if err := json.Unmarshal(payload, &msg); err != nil {
				log.Printf("discarding malformed message from client %v: %v", c.ID, err)
				c.PushToEgress(protocol.NewStatus("invalid message: %v", err))
				continue
			}

			if err := c.manager.routeEvent(ctx, msg, c); err != nil {
				log.Printf("error handling %v message from client %v: %v", msg.Type, c.ID, err)
				// handler errors go back to the sender as a status line
				c.PushToEgress(protocol.NewStatus("%v", err))
			}
		}
	}
}

// writes messages pushed to the client's egress channel
func (c *Client) writeMessages(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)

	defer func() {
		ticker.Stop()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case message := <-c.egress:
			data, err := json.Marshal(message)

			if err != nil {
				log.Printf("error marshalling %v message for client %v: %v", message.Type, c.ID, err)
				continue
			}

			c.connection.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.connection.WriteMessage(websocket.TextMessage, data); err != nil {
				c.handleError(err)
				return
			}
		case <-ticker.C:
			c.connection.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.connection.WriteMessage(websocket.PingMessage, []byte("")); err != nil {
				c.handleError(err)
				return
			}
		}
	}
}

// Sets a new read deadline when a pong is received for a ping message.
func (c *Client) pongHandler(pongMsg string) error {
	return c.connection.SetReadDeadline(time.Now().Add(pongWait))
}

// Push error to the client error channel. ServeWS waits on it and tears the
// connection down on the first error from either pump.
func (c *Client) handleError(e error) {
	select {
	case c.err <- e:
	default:
	}
}

// Returns the error channel
func (c *Client) Err() chan error {
	return c.err
}

// PushToEgress queues a message for delivery. Delivery is best effort: when
// the client is too slow to drain its egress the message is dropped.
func (c *Client) PushToEgress(msg protocol.Message) {
	select {
	case c.egress <- msg:
	default:
		log.Printf("egress full, dropping %v message for client %v", msg.Type, c.ID)
	}
}

var (
	ErrRoomFull   = errors.New("room is full")
	ErrRoomExists = errors.New("room already exists")
)

// Join adds the client to an existing room that still has a free slot.
func (c *Client) Join(roomId string) error {
	return c.enter(roomId, false)
}

// Create adds the client to a room nobody else is in.
func (c *Client) Create(roomId string) error {
	return c.enter(roomId, true)
}

// CanEnter reports why the client could not currently join or create
// roomId, without changing any membership.
func (c *Client) CanEnter(roomId string, create bool) error {
	c.manager.RLock()
	defer c.manager.RUnlock()

	return c.checkEnter(c.manager.Rooms[roomId], create)
}

func (c *Client) checkEnter(room []*Client, create bool) error {
	if slices.Contains(room, c) {
		return nil
	}

	if create && len(room) > 0 {
		return ErrRoomExists
	}

	if len(room) >= util.MaxRoomPlayers {
		return ErrRoomFull
	}

	return nil
}

// enter queues the room frame while the manager lock is held, so it reaches
// the client ahead of anything a peer fans out to the room afterwards.
func (c *Client) enter(roomId string, create bool) error {
	c.manager.Lock()
	defer c.manager.Unlock()

	room := c.manager.Rooms[roomId]

	if err := c.checkEnter(room, create); err != nil {
		return err
	}

	if !slices.Contains(room, c) {
		c.manager.Rooms[roomId] = append(room, c)
	}

	if !slices.Contains(c.JoinedRooms, roomId) {
		c.JoinedRooms = append(c.JoinedRooms, roomId)
	}

	c.PushToEgress(protocol.NewRoom(roomId))

	return nil
}

// Leave removes the client from a room and reports how many members remain.
func (c *Client) Leave(roomId string) int {
	c.manager.Lock()
	defer c.manager.Unlock()

	room, ok := c.manager.Rooms[roomId]

	if !ok {
		return 0
	}

	if index := slices.Index(room, c); index >= 0 {
		room = slices.Delete(room, index, index+1)
	}

	if joinedRoomsIndex := slices.Index(c.JoinedRooms, roomId); joinedRoomsIndex >= 0 {
		c.JoinedRooms = slices.Delete(c.JoinedRooms, joinedRoomsIndex, joinedRoomsIndex+1)
	}

	if len(room) == 0 {
		delete(c.manager.Rooms, roomId)
	} else {
		c.manager.Rooms[roomId] = room
	}

	return len(room)
}

// Rooms returns a copy of the rooms the client is in.
func (c *Client) Rooms() []string {
	c.manager.RLock()
	defer c.manager.RUnlock()

	return slices.Clone(c.JoinedRooms)
}

func (c *Client) InRoom(roomId string) bool {
	c.manager.RLock()
	defer c.manager.RUnlock()

	return slices.Contains(c.JoinedRooms, roomId)
}
