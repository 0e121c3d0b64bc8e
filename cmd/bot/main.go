package main

import (
	"encoding/json"
	"flag"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/websocket"

	"dinerline.ai/internal/protocol"
)

func main() {
	var (
		url      = flag.String("url", "ws://localhost:8080/v1/ws", "ws url")
		name     = flag.String("name", "bot", "player name")
		maxTurns = flag.Uint64("max_turns", 0, "stop after this turn (0: run until interrupted)")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[bot] ", log.LstdFlags|log.Lmicroseconds)
	conn, _, err := websocket.DefaultDialer.Dial(*url, nil)
	if err != nil {
		logger.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	hello := protocol.HelloMsg{
		Type:            protocol.TypeHello,
		ProtocolVersion: protocol.Version,
		Name:            *name,
	}
	if err := conn.WriteJSON(hello); err != nil {
		logger.Fatalf("send HELLO: %v", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	b := newBrain(rand.New(rand.NewSource(time.Now().UnixNano())))
	for {
		select {
		case <-stop:
			return
		default:
		}

		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		base, err := protocol.DecodeBase(msg)
		if err != nil {
			continue
		}
		switch base.Type {
		case protocol.TypeWelcome:
			var w protocol.WelcomeMsg
			if err := json.Unmarshal(msg, &w); err != nil {
				continue
			}
			logger.Printf("WELCOME session=%s run=%s seed=%d interval_ms=%d", w.SessionID, w.RunID, w.Params.Seed, w.Params.TurnIntervalMS)

		case protocol.TypeScore:
			var sc protocol.ScoreMsg
			if err := json.Unmarshal(msg, &sc); err == nil {
				logger.Printf("score=%d", sc.Score)
			}

		case protocol.TypeError:
			var e protocol.ErrorMsg
			if err := json.Unmarshal(msg, &e); err == nil {
				logger.Printf("ERROR %s: %s", e.Code, e.Message)
			}

		case protocol.TypeSnapshot:
			var snap protocol.SnapshotMsg
			if err := json.Unmarshal(msg, &snap); err != nil {
				continue
			}
			if *maxTurns != 0 && snap.Turn >= *maxTurns {
				logger.Printf("done turn=%d level=%d score=%d", snap.Turn, snap.Level, snap.Score)
				return
			}
			mv := protocol.MoveMsg{Type: protocol.TypeMove, ProtocolVersion: protocol.Version, Dir: b.next(&snap)}
			if err := conn.WriteJSON(mv); err != nil {
				return
			}
		}
	}
}
