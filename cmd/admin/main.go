package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	persistlog "dinerline.ai/internal/persistence/log"
)

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "db":
			dbCmd(os.Args[2:])
			return
		case "state":
			stateCmd(os.Args[2:])
			return
		}
	}
	listCmd(os.Args[1:])
}

// listCmd prints the runs found under the data directory, oldest first.
func listCmd(args []string) {
	fs := flag.NewFlagSet("admin", flag.ExitOnError)
	dataDir := fs.String("data", "./data", "runtime data directory")
	_ = fs.Parse(args)

	metas, err := listRuns(filepath.Join(*dataDir, "runs"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "read:", err)
		os.Exit(1)
	}
	for _, m := range metas {
		fmt.Printf("%s\t%s\tseed=%d\t%dx%d\n", m.RunID, m.StartedAt, m.Config.Seed, m.Config.Width, m.Config.Height)
	}
}

func listRuns(base string) ([]persistlog.RunMeta, error) {
	entries, err := os.ReadDir(base)
	if err != nil {
		return nil, err
	}
	var out []persistlog.RunMeta
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		m, err := persistlog.ReadRunMeta(filepath.Join(base, e.Name()))
		if err != nil {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartedAt != out[j].StartedAt {
			return out[i].StartedAt < out[j].StartedAt
		}
		return out[i].RunID < out[j].RunID
	})
	return out, nil
}
