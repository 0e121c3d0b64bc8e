package engine

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"io"
)

// Digest hashes the turn, level, score, grid, player and roster. Two engines
// fed the same seed and inputs report the same digest after every turn.
func (e *Engine) Digest() string {
	h := sha256.New()
	var tmp [8]byte

	writeU64(h, &tmp, e.turn)
	writeI64(h, &tmp, int64(e.score))
	if e.lv != nil {
		writeI64(h, &tmp, int64(e.lv.Number))
		writeI64(h, &tmp, int64(e.lv.TemplateID))
		writeI64(h, &tmp, int64(e.lv.Grid.W))
		writeI64(h, &tmp, int64(e.lv.Grid.H))
		for _, row := range e.lv.Grid.Rows() {
			_, _ = io.WriteString(h, row)
		}
	}

	writeI64(h, &tmp, int64(e.player.Pos.X))
	writeI64(h, &tmp, int64(e.player.Pos.Y))
	writeI64(h, &tmp, int64(e.player.Stamina))
	h.Write([]byte{byte(e.player.Carrying)})

	writeU64(h, &tmp, uint64(len(e.customers)))
	for _, c := range e.customers {
		if c == nil {
			h.Write([]byte{0})
			continue
		}
		h.Write([]byte{1, byte(c.Wants), boolByte(c.Fed), boolByte(c.Seated)})
		writeI64(h, &tmp, int64(c.Pos.X))
		writeI64(h, &tmp, int64(c.Pos.Y))
		writeI64(h, &tmp, int64(c.Patience))
	}
	return hex.EncodeToString(h.Sum(nil))
}

func writeU64(w io.Writer, tmp *[8]byte, v uint64) {
	binary.LittleEndian.PutUint64(tmp[:], v)
	_, _ = w.Write(tmp[:])
}

func writeI64(w io.Writer, tmp *[8]byte, v int64) { writeU64(w, tmp, uint64(v)) }

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
