package indexdb

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"

	"dinerline.ai/internal/sim/catalogs"
	"dinerline.ai/internal/sim/engine"
	"dinerline.ai/internal/sim/tuning"
)

// SQLiteIndex is a queryable read model of runs. Writes from the simulation are
// queued and applied by one goroutine in batched transactions; the turn log
// stays the source of truth.
type SQLiteIndex struct {
	db *sql.DB

	ch   chan req
	wg   sync.WaitGroup
	once sync.Once

	closed atomic.Bool
	runID  atomic.Value // string

	dropTurns atomic.Uint64
}

type req struct {
	runID string
	turn  engine.TurnLogEntry
}

// RunInfo describes one engine session.
type RunInfo struct {
	RunID           string
	Seed            int64
	Width           int
	Height          int
	TemplatesDigest string
	Config          engine.Config
	StartedAt       time.Time
}

type Stats struct {
	DropTurnTotal uint64
	QueueDepth    int
	QueueCapacity int
}

func OpenSQLite(path string) (*SQLiteIndex, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &SQLiteIndex{
		db: db,
		ch: make(chan req, 8192),
	}
	s.runID.Store("")
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop()
	}()
	return s, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS catalogs (
			name TEXT PRIMARY KEY,
			digest TEXT NOT NULL,
			json TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			templates_digest TEXT NOT NULL,
			config_json TEXT NOT NULL,
			started_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS turns (
			run_id TEXT NOT NULL,
			turn INTEGER NOT NULL,
			level INTEGER NOT NULL,
			score INTEGER NOT NULL,
			digest TEXT NOT NULL,
			moves TEXT NOT NULL,
			raw_json TEXT NOT NULL,
			PRIMARY KEY (run_id, turn)
		);`,
		`CREATE TABLE IF NOT EXISTS levels (
			run_id TEXT NOT NULL,
			level INTEGER NOT NULL,
			template_id INTEGER NOT NULL,
			difficulty REAL NOT NULL,
			customer_count INTEGER NOT NULL,
			placed INTEGER NOT NULL,
			start_turn INTEGER NOT NULL,
			complete_turn INTEGER,
			PRIMARY KEY (run_id, level)
		);`,
		`CREATE TABLE IF NOT EXISTS deliveries (
			run_id TEXT NOT NULL,
			turn INTEGER NOT NULL,
			seq INTEGER NOT NULL,
			level INTEGER NOT NULL,
			slot INTEGER NOT NULL,
			food TEXT NOT NULL,
			patience INTEGER NOT NULL,
			points INTEGER NOT NULL,
			PRIMARY KEY (run_id, turn, seq)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_deliveries_run_level ON deliveries(run_id, level);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteIndex) Close() error {
	var err error
	s.once.Do(func() {
		s.closed.Store(true)
		close(s.ch)
		s.wg.Wait()
		err = s.db.Close()
	})
	return err
}

func (s *SQLiteIndex) Stats() Stats {
	if s == nil {
		return Stats{}
	}
	return Stats{
		DropTurnTotal: s.dropTurns.Load(),
		QueueDepth:    len(s.ch),
		QueueCapacity: cap(s.ch),
	}
}

// RecordRun registers a run; later turns are filed under it.
func (s *SQLiteIndex) RecordRun(r RunInfo) error {
	if s == nil {
		return nil
	}
	if strings.TrimSpace(r.RunID) == "" {
		return errors.New("indexdb: empty run id")
	}
	cfg, err := json.Marshal(r.Config)
	if err != nil {
		return err
	}
	if r.StartedAt.IsZero() {
		r.StartedAt = time.Now()
	}
	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO runs(run_id,seed,width,height,templates_digest,config_json,started_at) VALUES(?,?,?,?,?,?,?)`,
		r.RunID, r.Seed, r.Width, r.Height, r.TemplatesDigest, string(cfg), r.StartedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return err
	}
	s.runID.Store(r.RunID)
	return nil
}

// WriteTurn queues entry for the current run. It never blocks the engine.
func (s *SQLiteIndex) WriteTurn(entry engine.TurnLogEntry) error {
	if s == nil || s.closed.Load() {
		return nil
	}
	select {
	case s.ch <- req{runID: s.runID.Load().(string), turn: entry}:
	default:
		// Drop if the indexer falls behind; the turn log remains the source of truth.
		s.dropTurns.Add(1)
	}
	return nil
}

func (s *SQLiteIndex) UpsertCatalogs(configDir string, cats *catalogs.Catalogs, tune tuning.Tuning) error {
	if s == nil {
		return nil
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)

	type kv struct {
		name   string
		digest string
		json   []byte
	}
	var rows []kv
	if cats != nil {
		if b, _ := json.Marshal(cats.Templates.Defs); len(b) > 0 {
			rows = append(rows, kv{name: "templates", digest: cats.Templates.Digest, json: b})
		}
	}
	// Tuning: store the values we actually apply (canonical JSON).
	{
		b, _ := json.Marshal(tune)
		rows = append(rows, kv{name: "tuning", digest: sha256Hex(b), json: b})
	}
	if configDir != "" {
		if b, err := os.ReadFile(filepath.Join(configDir, "tuning.yaml")); err == nil {
			raw, _ := json.Marshal(string(b))
			rows = append(rows, kv{name: "tuning_yaml", digest: sha256Hex(b), json: raw})
		}
	}

	tx, err := s.db.BeginTx(context.Background(), nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`INSERT OR REPLACE INTO meta(key,value) VALUES('schema_version','1')`); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO catalogs(name,digest,json,updated_at) VALUES(?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, r := range rows {
		if r.name == "" || r.digest == "" || len(r.json) == 0 {
			continue
		}
		if _, err := stmt.Exec(r.name, r.digest, string(r.json), now); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func (s *SQLiteIndex) loop() {
	ctx := context.Background()

	insertTurn, _ := s.db.Prepare(`INSERT OR REPLACE INTO turns(run_id,turn,level,score,digest,moves,raw_json) VALUES(?,?,?,?,?,?,?)`)
	insertLevel, _ := s.db.Prepare(`INSERT OR REPLACE INTO levels(run_id,level,template_id,difficulty,customer_count,placed,start_turn) VALUES(?,?,?,?,?,?,?)`)
	completeLevel, _ := s.db.Prepare(`UPDATE levels SET complete_turn=? WHERE run_id=? AND level=?`)
	insertDelivery, _ := s.db.Prepare(`INSERT OR REPLACE INTO deliveries(run_id,turn,seq,level,slot,food,patience,points) VALUES(?,?,?,?,?,?,?,?)`)
	defer func() {
		for _, st := range []*sql.Stmt{insertTurn, insertLevel, completeLevel, insertDelivery} {
			if st != nil {
				_ = st.Close()
			}
		}
	}()

	var (
		tx            *sql.Tx
		opCount       int
		lastCommit    = time.Now()
		commitEvery   = 500
		commitMaxWait = time.Second
	)

	begin := func() {
		if tx != nil {
			return
		}
		txx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			time.Sleep(50 * time.Millisecond)
			return
		}
		tx = txx
		opCount = 0
		lastCommit = time.Now()
	}
	commit := func() {
		if tx == nil {
			return
		}
		_ = tx.Commit()
		tx = nil
		opCount = 0
		lastCommit = time.Now()
	}
	rollback := func() {
		if tx == nil {
			return
		}
		_ = tx.Rollback()
		tx = nil
		opCount = 0
		lastCommit = time.Now()
	}
	flushIfNeeded := func() {
		if tx == nil {
			return
		}
		if opCount >= commitEvery || time.Since(lastCommit) >= commitMaxWait || len(s.ch) == 0 {
			commit()
		}
	}
	exec := func(st *sql.Stmt, args ...any) bool {
		if st == nil {
			return true
		}
		if _, err := tx.Stmt(st).Exec(args...); err != nil {
			rollback()
			return false
		}
		opCount++
		return true
	}

	for r := range s.ch {
		begin()
		if tx == nil {
			continue
		}
		e := r.turn
		raw, _ := json.Marshal(e)
		if !exec(insertTurn, r.runID, int64(e.Turn), e.Level, e.Score, e.Digest, strings.Join(e.Moves, ""), string(raw)) {
			continue
		}
		seq := 0
		for _, ev := range e.Events {
			ok := true
			switch ev.Type {
			case engine.EventLevelStart:
				ok = exec(insertLevel, r.runID, ev.Level, ev.TemplateID, ev.Difficulty, ev.CustomerCount, ev.Placed, int64(e.Turn))
			case engine.EventLevelComplete:
				ok = exec(completeLevel, int64(e.Turn), r.runID, ev.Level)
			case engine.EventDelivery:
				ok = exec(insertDelivery, r.runID, int64(e.Turn), seq, ev.Level, ev.Slot, ev.Food, ev.Patience, ev.Points)
				seq++
			}
			if !ok {
				break
			}
		}
		flushIfNeeded()
	}

	commit()
}
