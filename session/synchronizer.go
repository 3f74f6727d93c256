package session

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/judgegodwins/tetris-duel/game"
	"github.com/judgegodwins/tetris-duel/protocol"
	"golang.org/x/sync/singleflight"
)

var (
	ErrRoomRequired = errors.New("room code required")
	ErrNotConnected = errors.New("not connected")
)

type NoticeKind int

const (
	NoticeStatus NoticeKind = iota
	NoticeRoom
	NoticeOpponent
	NoticeDisconnect
)

// Notice tells the host application that something about the session
// changed: a status line, a room assignment, a new opponent snapshot or a
// lost connection.
type Notice struct {
	Kind    NoticeKind
	Message string
	RoomID  string
}

// a relay that stops reading must not stall the caller of Publish
const defaultWriteWait = 2 * time.Second

// Synchronizer mirrors the local game to an opponent through the relay and
// caches the opponent's latest snapshot. Sends are fire-and-forget: with no
// connection or no room the snapshot is dropped.
type Synchronizer struct {
	dial      DialFunc
	logger    *log.Logger
	group     singleflight.Group
	writeWait time.Duration

	mu       sync.Mutex
	conn     Conn
	roomID   string
	seq      uint64
	opponent *game.Snapshot
	lastSeq  uint64

	writeMu sync.Mutex
	notices chan Notice
}

type Option func(*Synchronizer)

func WithLogger(l *log.Logger) Option {
	return func(s *Synchronizer) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithWriteWait bounds how long a single send to the relay may block.
func WithWriteWait(d time.Duration) Option {
	return func(s *Synchronizer) {
		if d > 0 {
			s.writeWait = d
		}
	}
}

// WithNoticeBuffer sets how many notices may queue before new ones are
// dropped.
func WithNoticeBuffer(n int) Option {
	return func(s *Synchronizer) {
		s.notices = make(chan Notice, n)
	}
}

func New(dial DialFunc, opts ...Option) *Synchronizer {
	s := &Synchronizer{
		dial:      dial,
		logger:    log.New(os.Stderr, "[session] ", log.LstdFlags),
		writeWait: defaultWriteWait,
		notices:   make(chan Notice, 32),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Notices returns the channel notices are delivered on.
func (s *Synchronizer) Notices() <-chan Notice {
	return s.notices
}

func (s *Synchronizer) notify(n Notice) {
	select {
	case s.notices <- n:
	default:
	}
}

func (s *Synchronizer) status(msg string) {
	s.notify(Notice{Kind: NoticeStatus, Message: msg})
}

// CreateRoom asks the relay for a room with the given code. An empty code
// is replaced with a random one.
func (s *Synchronizer) CreateRoom(ctx context.Context, roomID string) error {
	if roomID == "" {
		roomID = protocol.NewRoomCode()
	}
	return s.request(ctx, protocol.TypeCreate, roomID, "room ("+roomID+") create requested", "room create failed")
}

// JoinRoom asks the relay to join an existing room.
func (s *Synchronizer) JoinRoom(ctx context.Context, roomID string) error {
	if roomID == "" {
		s.status("enter a room code")
		return ErrRoomRequired
	}
	return s.request(ctx, protocol.TypeJoin, roomID, "room ("+roomID+") join requested", "room join failed")
}

func (s *Synchronizer) request(ctx context.Context, typ, roomID, ok, failed string) error {
	conn, err := s.connect(ctx)
	if err != nil {
		s.status(failed)
		return err
	}

	if err := s.write(conn, protocol.Message{Type: typ, RoomID: roomID}); err != nil {
		s.status(failed)
		return err
	}

	s.status(ok)
	return nil
}

// connect returns the open connection or dials one. Concurrent callers
// share a single in-flight dial.
func (s *Synchronizer) connect(ctx context.Context) (Conn, error) {
	if conn := s.current(); conn != nil {
		return conn, nil
	}

	v, err, _ := s.group.Do("connect", func() (interface{}, error) {
		if conn := s.current(); conn != nil {
			return conn, nil
		}

		conn, err := s.dial(ctx)
		if err != nil {
			s.logger.Printf("connection failed: %v", err)
			s.status("connection failed")
			return nil, err
		}

		s.mu.Lock()
		s.conn = conn
		s.mu.Unlock()

		s.status("connected to server")
		go s.readLoop(conn)

		return conn, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(Conn), nil
}

func (s *Synchronizer) current() Conn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn
}

func (s *Synchronizer) write(conn Conn, msg protocol.Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := conn.SetWriteDeadline(time.Now().Add(s.writeWait)); err != nil {
		return err
	}

	return conn.WriteMessage(websocket.TextMessage, data)
}

// Publish sends snap to the room peer. It implements game.Publisher.
func (s *Synchronizer) Publish(snap game.Snapshot) {
	s.mu.Lock()
	conn, roomID := s.conn, s.roomID
	if conn == nil || roomID == "" {
		s.mu.Unlock()
		return
	}
	s.seq++
	snap.Seq = s.seq
	s.mu.Unlock()

	msg, err := protocol.NewState(roomID, snap)
	if err != nil {
		s.logger.Printf("encode state: %v", err)
		return
	}

	if err := s.write(conn, msg); err != nil {
		s.logger.Printf("send state: %v", err)
	}
}

// Opponent returns the last snapshot received from the room peer. The
// snapshot is replaced wholesale on every update and must not be modified.
func (s *Synchronizer) Opponent() (game.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.opponent == nil {
		return game.Snapshot{}, false
	}
	return *s.opponent, true
}

func (s *Synchronizer) RoomID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roomID
}

func (s *Synchronizer) Connected() bool {
	return s.current() != nil
}

// Close drops the relay connection. The read loop reports the disconnect.
func (s *Synchronizer) Close() error {
	conn := s.current()
	if conn == nil {
		return ErrNotConnected
	}
	return conn.Close()
}

func (s *Synchronizer) readLoop(conn Conn) {
	defer s.handleClose(conn)

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Printf("error reading message: %v", err)
			}
			return
		}

		var msg protocol.Message
		if err := json.Unmarshal(payload, &msg); err != nil {
			s.logger.Printf("discarding malformed message: %v", err)
			continue
		}

		s.handle(msg)
	}
}

func (s *Synchronizer) handle(msg protocol.Message) {
	switch msg.Type {
	case protocol.TypeRoom:
		if msg.RoomID == "" {
			s.logger.Println("discarding room message without room id")
			return
		}

		s.mu.Lock()
		s.roomID = msg.RoomID
		s.opponent = nil
		s.lastSeq = 0
		s.mu.Unlock()

		s.notify(Notice{Kind: NoticeRoom, RoomID: msg.RoomID, Message: "connected to room (" + msg.RoomID + ")"})

	case protocol.TypeStatus:
		s.status(msg.Message)

	case protocol.TypeOpponent:
		s.applyOpponent(msg)

	default:
		s.logger.Printf("discarding message of unknown type %q", msg.Type)
	}
}

func (s *Synchronizer) applyOpponent(msg protocol.Message) {
	if !msg.HasState() {
		s.mu.Lock()
		s.opponent = nil
		s.lastSeq = 0
		s.mu.Unlock()

		s.notify(Notice{Kind: NoticeOpponent, Message: "no opponent"})
		return
	}

	var snap game.Snapshot
	if err := json.Unmarshal(msg.State, &snap); err != nil {
		s.logger.Printf("discarding malformed opponent state: %v", err)
		return
	}

	s.mu.Lock()
	if snap.Seq != 0 && snap.Seq <= s.lastSeq {
		s.mu.Unlock()
		s.logger.Printf("discarding stale opponent state seq=%d last=%d", snap.Seq, s.lastSeq)
		return
	}
	s.opponent = &snap
	s.lastSeq = snap.Seq
	s.mu.Unlock()

	s.notify(Notice{Kind: NoticeOpponent, Message: "opponent playing"})
}

func (s *Synchronizer) handleClose(conn Conn) {
	s.mu.Lock()
	if s.conn == conn {
		s.conn = nil
		s.roomID = ""
		s.opponent = nil
		s.lastSeq = 0
	}
	s.mu.Unlock()

	conn.Close()
	s.notify(Notice{Kind: NoticeDisconnect, Message: "not connected to a room"})
}
