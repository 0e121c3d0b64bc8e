package protocol_test

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"dinerline.ai/internal/protocol"
)

func compile(t *testing.T, name string) *jsonschema.Schema {
	t.Helper()
	p := filepath.Join("..", "..", "schemas", name)
	s, err := jsonschema.Compile(p)
	if err != nil {
		t.Fatalf("compile %s: %v", name, err)
	}
	return s
}

// asJSON round-trips v through encoding/json so the schema sees wire types.
func asJSON(t *testing.T, v any) any {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return out
}

func TestSchemas_ValidateMessages(t *testing.T) {
	validate := func(s *jsonschema.Schema, v any) {
		t.Helper()
		if err := s.Validate(asJSON(t, v)); err != nil {
			t.Fatalf("validate: %v", err)
		}
	}

	validate(compile(t, "hello.schema.json"), protocol.HelloMsg{
		Type: protocol.TypeHello, ProtocolVersion: protocol.Version, Name: "bot1",
	})
	validate(compile(t, "welcome.schema.json"), protocol.WelcomeMsg{
		Type:            protocol.TypeWelcome,
		ProtocolVersion: protocol.Version,
		SessionID:       "S1",
		RunID:           "R1",
		Params:          protocol.SessionParams{Width: 35, Height: 18, Seed: 1337},
		Templates:       protocol.DigestRef{Digest: "deadbeef", Count: 4},
	})
	validate(compile(t, "snapshot.schema.json"), protocol.SnapshotMsg{
		Type:            protocol.TypeSnapshot,
		ProtocolVersion: protocol.Version,
		Turn:            12,
		Level:           1,
		Score:           90,
		Difficulty:      0.301,
		Tiles:           []string{"#####", "D.aT#", "#####"},
		Player:          protocol.PlayerView{Pos: [2]int{1, 1}, Stamina: 99, Carrying: "FOOD_A"},
		Customers: []protocol.CustomerView{
			{Slot: 0, Pos: [2]int{3, 1}, Patience: 97, Wants: "FOOD_B", Seated: true},
		},
	})
	validate(compile(t, "score.schema.json"), protocol.ScoreMsg{
		Type: protocol.TypeScore, ProtocolVersion: protocol.Version, Score: 42,
	})
	validate(compile(t, "move.schema.json"), protocol.MoveMsg{
		Type: protocol.TypeMove, ProtocolVersion: protocol.Version, Dir: "L",
	})
	validate(compile(t, "error.schema.json"), protocol.ErrorMsg{
		Type: protocol.TypeError, ProtocolVersion: protocol.Version, Code: protocol.ErrBadDirection, Message: "dir must be U, D, L or R",
	})
}

func TestSchemas_RejectBadInput(t *testing.T) {
	move := compile(t, "move.schema.json")
	bad := protocol.MoveMsg{Type: protocol.TypeMove, ProtocolVersion: protocol.Version, Dir: "NORTH"}
	if err := move.Validate(asJSON(t, bad)); err == nil {
		t.Fatalf("expected invalid direction rejected")
	}

	snap := compile(t, "snapshot.schema.json")
	var v any
	_ = json.Unmarshal([]byte(`{
	  "type":"SNAPSHOT","protocol_version":"1.0","turn":0,"level":0,"score":0,"difficulty":0,
	  "tiles":["#X#"],
	  "player":{"pos":[1,1],"stamina":100,"carrying":"NONE"},
	  "customers":[]
	}`), &v)
	if err := snap.Validate(v); err == nil {
		t.Fatalf("expected unknown glyph rejected")
	}
}
