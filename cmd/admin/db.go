package main

import (
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

var queries = map[string]string{
	"runs":       `SELECT run_id,seed,width,height,templates_digest,started_at FROM runs WHERE (?='' OR run_id=?) ORDER BY started_at DESC LIMIT ?`,
	"turns":      `SELECT run_id,turn,level,score,digest,moves FROM turns WHERE (?='' OR run_id=?) ORDER BY turn DESC LIMIT ?`,
	"levels":     `SELECT run_id,level,template_id,difficulty,customer_count,placed,start_turn,complete_turn FROM levels WHERE (?='' OR run_id=?) ORDER BY start_turn DESC LIMIT ?`,
	"deliveries": `SELECT run_id,turn,seq,level,slot,food,patience,points FROM deliveries WHERE (?='' OR run_id=?) ORDER BY turn DESC, seq DESC LIMIT ?`,
}

func dbCmd(args []string) {
	fs := flag.NewFlagSet("db", flag.ExitOnError)
	dataDir := fs.String("data", "./data", "runtime data directory")
	dbPath := fs.String("db", "", "sqlite db path (default: <data>/index/runs.sqlite)")
	runID := fs.String("run", "", "run_id filter")
	limit := fs.Int("limit", 20, "result limit")
	_ = fs.Parse(args)

	q := "runs"
	if fs.NArg() > 0 {
		q = strings.TrimSpace(fs.Arg(0))
	}

	path := strings.TrimSpace(*dbPath)
	if path == "" {
		path = filepath.Join(*dataDir, "index", "runs.sqlite")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open:", err)
		os.Exit(1)
	}
	defer db.Close()

	rows, err := queryIndex(db, q, strings.TrimSpace(*runID), *limit)
	if err != nil {
		fmt.Fprintln(os.Stderr, "query:", err)
		os.Exit(1)
	}
	enc := json.NewEncoder(os.Stdout)
	for _, r := range rows {
		_ = enc.Encode(r)
	}
}

// queryIndex runs one of the named queries and returns each row keyed by column.
func queryIndex(db *sql.DB, name, runID string, limit int) ([]map[string]any, error) {
	stmt, ok := queries[name]
	if !ok {
		return nil, fmt.Errorf("unknown query %q (runs, turns, levels, deliveries)", name)
	}
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.Query(stmt, runID, runID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	var out []map[string]any
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		m := make(map[string]any, len(cols))
		for i, c := range cols {
			if b, ok := vals[i].([]byte); ok {
				m[c] = string(b)
				continue
			}
			m[c] = vals[i]
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
