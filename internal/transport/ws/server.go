package ws

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"dinerline.ai/internal/protocol"
	"dinerline.ai/internal/sim/model"
)

// Mover accepts player input for the engine's driver goroutine.
type Mover interface {
	Move(dir model.Direction) bool
}

// Server adapts one simulation session to a websocket client. It implements
// engine.Presenter; those callbacks run on the driver goroutine and never block.
type Server struct {
	mover   Mover
	welcome protocol.WelcomeMsg
	log     *log.Logger

	upgrader websocket.Upgrader

	mu     sync.Mutex
	client *client
	last   []byte // latest encoded SNAPSHOT
}

type client struct {
	sessionID string
	out       chan []byte
}

// NewServer builds the adapter. welcome carries the run id, params and
// template digest; the session id is assigned per connection.
func NewServer(m Mover, welcome protocol.WelcomeMsg, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	welcome.Type = protocol.TypeWelcome
	welcome.ProtocolVersion = protocol.Version
	return &Server{
		mover:   m,
		welcome: welcome,
		log:     logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  16 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
	}
}

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		if s.busy() {
			_ = writeJSON(conn, errorMsg(protocol.ErrSessionBusy, "session already has a client"))
			return
		}

		c := s.handshake(conn)
		if c == nil {
			return
		}
		if !s.attach(c) {
			_ = writeJSON(conn, errorMsg(protocol.ErrSessionBusy, "session already has a client"))
			return
		}
		defer s.detach(c)
		s.log.Printf("session %s attached", c.sessionID)

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		// Writer goroutine.
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case b := <-c.out:
					_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
					if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
						cancel()
						return
					}
				}
			}
		}()

		// Reader loop.
		for {
			_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				break
			}
			s.handleMessage(c, msg)
		}
		s.log.Printf("session %s detached", c.sessionID)
	}
}

func (s *Server) handleMessage(c *client, msg []byte) {
	base, err := protocol.DecodeBase(msg)
	if err != nil {
		s.reply(c, protocol.ErrProtoBadRequest, "malformed json")
		return
	}
	if base.Type != protocol.TypeMove {
		s.reply(c, protocol.ErrProtoBadRequest, "unexpected message type")
		return
	}
	var mv protocol.MoveMsg
	if err := json.Unmarshal(msg, &mv); err != nil {
		s.reply(c, protocol.ErrProtoBadRequest, "malformed MOVE")
		return
	}
	if mv.ProtocolVersion != protocol.Version {
		s.reply(c, protocol.ErrProtoVersion, "bad protocol_version")
		return
	}
	dir, ok := model.ParseDirection(mv.Dir)
	if !ok {
		s.reply(c, protocol.ErrBadDirection, "dir must be U, D, L or R")
		return
	}
	if !s.mover.Move(dir) {
		s.reply(c, protocol.ErrRateLimit, "input queue full")
	}
}

func (s *Server) reply(c *client, code, message string) {
	b, err := json.Marshal(errorMsg(code, message))
	if err != nil {
		return
	}
	sendLatest(c.out, b)
}

func (s *Server) handshake(conn *websocket.Conn) *client {
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return nil
	}

	base, err := protocol.DecodeBase(msg)
	if err != nil || base.Type != protocol.TypeHello {
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "expected HELLO"), time.Now().Add(time.Second))
		return nil
	}
	var hello protocol.HelloMsg
	if err := json.Unmarshal(msg, &hello); err != nil {
		return nil
	}
	if hello.ProtocolVersion != protocol.Version {
		_ = writeJSON(conn, errorMsg(protocol.ErrProtoVersion, "bad protocol_version"))
		return nil
	}
	if hello.Name == "" {
		hello.Name = "player"
	}

	welcome := s.welcome
	welcome.SessionID = uuid.NewString()
	if err := writeJSON(conn, welcome); err != nil {
		return nil
	}
	s.log.Printf("hello from %q session=%s", hello.Name, welcome.SessionID)
	return &client{sessionID: welcome.SessionID, out: make(chan []byte, 8)}
}

func (s *Server) busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.client != nil
}

func (s *Server) attach(c *client) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client != nil {
		return false
	}
	s.client = c
	if s.last != nil {
		sendLatest(c.out, s.last)
	}
	return true
}

func (s *Server) detach(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client == c {
		s.client = nil
	}
}

// sendLatest never blocks; a slow client loses its oldest queued message.
func sendLatest(ch chan []byte, b []byte) {
	select {
	case ch <- b:
		return
	default:
	}
	// Drop one.
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- b:
	default:
	}
}

func errorMsg(code, message string) protocol.ErrorMsg {
	return protocol.ErrorMsg{
		Type:            protocol.TypeError,
		ProtocolVersion: protocol.Version,
		Code:            code,
		Message:         message,
	}
}

func writeJSON(conn *websocket.Conn, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return conn.WriteMessage(websocket.TextMessage, b)
}
