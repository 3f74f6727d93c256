package ws

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/judgegodwins/tetris-duel/http_utils"
	"github.com/judgegodwins/tetris-duel/protocol"
	"github.com/judgegodwins/tetris-duel/tokens"
	"github.com/judgegodwins/tetris-duel/util"
	"github.com/redis/go-redis/v9"
	"github.com/samber/lo"
)

type ClientList map[string]*Client

type EventHandler func(ctx context.Context, msg protocol.Message, c *Client) error

type wsQuery struct {
	Token string `form:"token" binding:"required"`
}

type Manager struct {
	clients ClientList
	sync.RWMutex
	handlers   map[string]EventHandler
	Rooms      map[string][]*Client
	config     *util.Config
	rdb        *redis.Client
	tokenMaker tokens.Maker
	upgrader   websocket.Upgrader
}

func NewManager(config *util.Config, rdb *redis.Client, maker tokens.Maker) *Manager {
	m := &Manager{
		clients:    make(ClientList),
		handlers:   make(map[string]EventHandler),
		Rooms:      make(map[string][]*Client),
		config:     config,
		rdb:        rdb,
		tokenMaker: maker,
	}

	m.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     m.checkOrigin,
	}

	m.setupEventHandlers()

	return m
}

func (m *Manager) setupEventHandlers() {
	m.handlers[protocol.TypeCreate] = CreateRoomHandler
	m.handlers[protocol.TypeJoin] = JoinRoomHandler
	m.handlers[protocol.TypeState] = StateHandler
}

func (m *Manager) routeEvent(ctx context.Context, msg protocol.Message, c *Client) error {
	if handler, ok := m.handlers[msg.Type]; ok {
		if err := handler(ctx, msg, c); err != nil {
			return err
		}

		return nil
	}

	return errors.New("there is no such event type")
}

func (m *Manager) addClient(client *Client) {
	m.Lock()
	defer m.Unlock()

	m.clients[client.ID] = client
}

func (m *Manager) removeClient(client *Client) {
	m.Lock()
	defer m.Unlock()

	if _, ok := m.clients[client.ID]; ok {
		client.connection.Close()
		delete(m.clients, client.ID)
	}
}

// Members returns a copy of the clients currently in roomID.
func (m *Manager) Members(roomID string) []*Client {
	m.RLock()
	defer m.RUnlock()

	return append([]*Client(nil), m.Rooms[roomID]...)
}

// EmitToRoom pushes msg to every member of roomID except the sender.
func (m *Manager) EmitToRoom(roomID string, msg protocol.Message, except *Client) {
	for _, client := range lo.Without(m.Members(roomID), except) {
		client.PushToEgress(msg)
	}
}

// leaveRooms takes c out of every room it is in (but keep), telling the
// remaining peer and dropping rooms left empty.
func (m *Manager) leaveRooms(ctx context.Context, c *Client, reason string, keep string) {
	for _, roomID := range c.Rooms() {
		if roomID == keep {
			continue
		}

		remaining := c.Leave(roomID)

		if remaining == 0 {
			if err := m.deleteRoom(ctx, roomID); err != nil {
				log.Printf("error deleting room %v: %v", roomID, err)
			}
			continue
		}

		if err := m.deleteState(ctx, roomID, c.ID); err != nil {
			log.Printf("error deleting state of client %v in room %v: %v", c.ID, roomID, err)
		}

		m.EmitToRoom(roomID, protocol.NewOpponent(nil), c)
		m.EmitToRoom(roomID, protocol.NewStatus("%v", reason), c)
	}
}

// Websocket connection handler
func (m *Manager) ServeWS(c *gin.Context) {
	var query wsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusUnauthorized, http_utils.NewBaseResponse(false, "token not sent"))
		return
	}

	payload, err := m.tokenMaker.VerifyToken(query.Token)

	if err != nil {
		c.JSON(http.StatusUnauthorized, http_utils.NewBaseResponse(false, err.Error()))
		return
	}

	conn, err := m.upgrader.Upgrade(c.Writer, c.Request, nil)

	if err != nil {
		log.Printf("error upgrading to websocket connection: %v\n", err)
		return
	}

	client := NewClient(conn, m)
	client.UserID = payload.ID.String()
	client.Username = payload.Username

	m.addClient(client)

	ctx, cancel := context.WithCancel(context.Background())

	defer func() {
		cancel()

		cleanupCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		m.leaveRooms(cleanupCtx, client, "opponent disconnected", "")

		err := conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))

		if err != nil && !errors.Is(err, websocket.ErrCloseSent) {
			log.Println("Error sending close message:", err)
		}

		m.removeClient(client)
	}()

	go client.readMessages(ctx)
	go client.writeMessages(ctx)

	err = <-client.Err()

	log.Printf("client %v (%v) disconnected: %v", client.ID, client.Username, err)
}

// Non browser clients send no Origin header and are let through.
func (m *Manager) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	return lo.Contains(m.config.AllowedOrigins, origin)
}
