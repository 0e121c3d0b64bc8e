package ws

import (
	"encoding/json"

	"dinerline.ai/internal/protocol"
	"dinerline.ai/internal/sim/engine"
)

func (s *Server) OnSnapshot(snap engine.Snapshot) {
	b, err := json.Marshal(SnapshotMsg(snap))
	if err != nil {
		s.log.Printf("encode snapshot: %v", err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = b
	if s.client != nil {
		sendLatest(s.client.out, b)
	}
}

func (s *Server) OnScoreChanged(score int) {
	b, err := json.Marshal(protocol.ScoreMsg{
		Type:            protocol.TypeScore,
		ProtocolVersion: protocol.Version,
		Score:           score,
	})
	if err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client != nil {
		sendLatest(s.client.out, b)
	}
}

// SnapshotMsg converts an engine snapshot into its wire form.
func SnapshotMsg(snap engine.Snapshot) protocol.SnapshotMsg {
	msg := protocol.SnapshotMsg{
		Type:            protocol.TypeSnapshot,
		ProtocolVersion: protocol.Version,
		Turn:            snap.Turn,
		Level:           snap.Level,
		Score:           snap.Score,
		Difficulty:      snap.Difficulty,
		Tiles:           snap.Grid.Rows(),
		Player: protocol.PlayerView{
			Pos:      [2]int{snap.Player.Pos.X, snap.Player.Pos.Y},
			Stamina:  snap.Player.Stamina,
			Carrying: snap.Player.Carrying.String(),
		},
		Customers: make([]protocol.CustomerView, 0, len(snap.Customers)),
	}
	for _, c := range snap.Customers {
		msg.Customers = append(msg.Customers, protocol.CustomerView{
			Slot:     c.Slot,
			Pos:      [2]int{c.Pos.X, c.Pos.Y},
			Patience: c.Patience,
			Wants:    c.Wants.String(),
			Fed:      c.Fed,
			Seated:   c.Seated,
		})
	}
	return msg
}
