package log

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zstd"

	"dinerline.ai/internal/sim/engine"
	"dinerline.ai/internal/sim/model"
)

var ErrDigestMismatch = errors.New("digest mismatch")

// ListTurnFiles returns the turn log files in dir in write order.
func ListTurnFiles(dir string) ([]string, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(ents))
	for _, e := range ents {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, turnsPrefix+"-") && strings.HasSuffix(name, ".jsonl.zst") {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, filepath.Join(dir, name))
	}
	return out, nil
}

// ReadTurns calls fn for every entry in dir, oldest first.
func ReadTurns(dir string, fn func(engine.TurnLogEntry) error) error {
	files, err := ListTurnFiles(dir)
	if err != nil {
		return err
	}
	for _, path := range files {
		if err := readFile(path, fn); err != nil {
			return err
		}
	}
	return nil
}

func readFile(path string, fn func(engine.TurnLogEntry) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return err
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 8*1024*1024)
	for sc.Scan() {
		var entry engine.TurnLogEntry
		if err := json.Unmarshal(sc.Bytes(), &entry); err != nil {
			return fmt.Errorf("%s: unmarshal: %w", filepath.Base(path), err)
		}
		if err := fn(entry); err != nil {
			return err
		}
	}
	return sc.Err()
}

// Replay feeds the logged moves of dir into eng turn by turn and checks the
// digest after each one. eng must be built from the run's config and templates.
func Replay(eng *engine.Engine, dir string) (checked uint64, err error) {
	if !eng.Started() {
		if err := eng.Start(); err != nil {
			return 0, err
		}
	}
	err = ReadTurns(dir, func(entry engine.TurnLogEntry) error {
		if entry.Turn != eng.Turn()+1 {
			return fmt.Errorf("turn %d: log skips from turn %d", entry.Turn, eng.Turn())
		}
		for _, m := range entry.Moves {
			d, ok := model.ParseDirection(m)
			if !ok {
				return fmt.Errorf("turn %d: bad move %q", entry.Turn, m)
			}
			eng.MovePlayer(d)
		}
		if err := eng.AdvanceTurn(); err != nil {
			return fmt.Errorf("turn %d: %w", entry.Turn, err)
		}
		if got := eng.Digest(); got != entry.Digest {
			return fmt.Errorf("turn %d: %w: got %s want %s", entry.Turn, ErrDigestMismatch, got, entry.Digest)
		}
		checked++
		return nil
	})
	return checked, err
}
