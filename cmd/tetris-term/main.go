package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/judgegodwins/tetris-duel/game"
	"github.com/judgegodwins/tetris-duel/session"
	"github.com/nsf/termbox-go"
)

const frameInterval = 16 * time.Millisecond

type options struct {
	relayURL string
	apiURL   string
	name     string
	room     string
	create   bool
	join     bool
	logFile  string
}

func parseFlags() options {
	var o options

	flag.StringVar(&o.relayURL, "server", "ws://localhost:3000/ws", "relay websocket url")
	flag.StringVar(&o.apiURL, "api", "http://localhost:3000", "relay http api url")
	flag.StringVar(&o.name, "name", "player", "name shown to your opponent")
	flag.StringVar(&o.room, "room", "", "room code to create or join")
	flag.BoolVar(&o.create, "create", false, "create the room on startup")
	flag.BoolVar(&o.join, "join", false, "join the room on startup")
	flag.StringVar(&o.logFile, "log", "tetris-term.log", "log file")
	flag.Parse()

	return o
}

func main() {
	opts := parseFlags()

	f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer f.Close()
	log.SetOutput(f)

	syncer := session.New(tokenDialer(opts), session.WithLogger(log.New(f, "[session] ", log.LstdFlags)))
	defer syncer.Close()

	engine := game.NewEngine(game.WithPublisher(syncer))

	if err := termbox.Init(); err != nil {
		log.Fatal(err)
	}
	defer termbox.Close()
	termbox.SetInputMode(termbox.InputEsc)

	if opts.create {
		go requestRoom(syncer, opts.room, true)
	} else if opts.join {
		go requestRoom(syncer, opts.room, false)
	}

	if err := run(engine, syncer, opts); err != nil {
		log.Println(err)
	}
}

// tokenDialer fetches an access token on every dial so a relay restart does
// not leave the client with a stale one.
func tokenDialer(opts options) session.DialFunc {
	return func(ctx context.Context) (session.Conn, error) {
		token, err := session.FetchToken(ctx, nil, opts.apiURL, opts.name)
		if err != nil {
			return nil, fmt.Errorf("fetch token: %w", err)
		}
		return session.WebsocketDialer(opts.relayURL, token)(ctx)
	}
}

func requestRoom(syncer *session.Synchronizer, roomID string, create bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var err error
	if create {
		err = syncer.CreateRoom(ctx, roomID)
	} else {
		err = syncer.JoinRoom(ctx, roomID)
	}

	if err != nil {
		log.Printf("room request failed: %v", err)
	}
}

// run owns the engine: key presses, gravity ticks and session notices are
// all applied from this goroutine.
func run(engine *game.Engine, syncer *session.Synchronizer, opts options) error {
	events := make(chan termbox.Event)
	go func() {
		for {
			events <- termbox.PollEvent()
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	v := &view{session: "not connected to a room", rival: "no opponent"}
	last := time.Now()

	for {
		select {
		case ev := <-events:
			if ev.Type == termbox.EventError {
				return ev.Err
			}

			act, cmd := keyAction(ev)
			switch act {
			case actionQuit:
				return nil
			case actionCommand:
				if err := apply(engine, cmd); err != nil {
					log.Println(err)
				}
			case actionCreateRoom:
				go requestRoom(syncer, opts.room, true)
			case actionJoinRoom:
				go requestRoom(syncer, opts.room, false)
			}

		case now := <-ticker.C:
			engine.Tick(now.Sub(last))
			last = now

		case n := <-syncer.Notices():
			switch n.Kind {
			case session.NoticeRoom:
				v.room = n.RoomID
				v.session = n.Message
				// let the new peer see the board right away
				syncer.Publish(engine.Snapshot())
			case session.NoticeOpponent:
				v.rival = n.Message
			case session.NoticeDisconnect:
				v.room = ""
				v.session = n.Message
				v.rival = "no opponent"
			default:
				v.session = n.Message
			}
		}

		v.local = engine.Snapshot()
		if snap, ok := syncer.Opponent(); ok {
			v.opponent = &snap
		} else {
			v.opponent = nil
		}

		if err := v.draw(); err != nil {
			return err
		}
	}
}
