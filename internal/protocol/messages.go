package protocol

// HELLO (client -> server)
type HelloMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	Name            string `json:"name"`
}

// WELCOME (server -> client)
type WelcomeMsg struct {
	Type            string        `json:"type"`
	ProtocolVersion string        `json:"protocol_version"`
	SessionID       string        `json:"session_id"`
	RunID           string        `json:"run_id"`
	Params          SessionParams `json:"params"`
	Templates       DigestRef     `json:"templates"`
}

type SessionParams struct {
	Width          int   `json:"width"`
	Height         int   `json:"height"`
	TurnIntervalMS int   `json:"turn_interval_ms"`
	Seed           int64 `json:"seed"`
}

type DigestRef struct {
	Digest string `json:"digest"`
	Count  int    `json:"count"`
}

// SNAPSHOT (server -> client), sent after every turn.
type SnapshotMsg struct {
	Type            string  `json:"type"`
	ProtocolVersion string  `json:"protocol_version"`
	Turn            uint64  `json:"turn"`
	Level           int     `json:"level"`
	Score           int     `json:"score"`
	Difficulty      float64 `json:"difficulty"`

	// Tiles holds one string per row, one glyph per cell.
	Tiles     []string       `json:"tiles"`
	Player    PlayerView     `json:"player"`
	Customers []CustomerView `json:"customers"`
}

type PlayerView struct {
	Pos      [2]int `json:"pos"`
	Stamina  int    `json:"stamina"`
	Carrying string `json:"carrying"`
}

type CustomerView struct {
	Slot     int    `json:"slot"`
	Pos      [2]int `json:"pos"`
	Patience int    `json:"patience"`
	Wants    string `json:"wants"`
	Fed      bool   `json:"fed"`
	Seated   bool   `json:"seated"`
}

// SCORE (server -> client)
type ScoreMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	Score           int    `json:"score"`
}

// MOVE (client -> server). Dir is one of U, D, L, R.
type MoveMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	Dir             string `json:"dir"`
}

// ERROR (server -> client)
type ErrorMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	Code            string `json:"code"`
	Message         string `json:"message,omitempty"`
}
