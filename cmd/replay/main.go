package main

import (
	"flag"
	"fmt"
	"os"

	persistlog "dinerline.ai/internal/persistence/log"
	"dinerline.ai/internal/sim/catalogs"
	"dinerline.ai/internal/sim/engine"
)

func main() {
	var (
		runDir    = flag.String("run", "", "run directory containing run.json and turns/")
		configDir = flag.String("configs", "./configs", "config directory")
	)
	flag.Parse()

	if *runDir == "" {
		fmt.Fprintln(os.Stderr, "missing -run")
		os.Exit(2)
	}

	meta, err := persistlog.ReadRunMeta(*runDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read run meta:", err)
		os.Exit(1)
	}
	fmt.Printf("run=%s started=%s seed=%d size=%dx%d templates=%d\n",
		meta.RunID, meta.StartedAt, meta.Config.Seed, meta.Config.Width, meta.Config.Height, meta.TemplateCount)

	cats, err := catalogs.Load(*configDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load catalogs:", err)
		os.Exit(1)
	}
	if meta.TemplatesDigest != "" && meta.TemplatesDigest != cats.Templates.Digest {
		fmt.Fprintf(os.Stderr, "templates digest mismatch: run=%s configs=%s\n", meta.TemplatesDigest, cats.Templates.Digest)
		os.Exit(1)
	}

	eng, err := engine.New(meta.Config, &cats.Templates)
	if err != nil {
		fmt.Fprintln(os.Stderr, "engine:", err)
		os.Exit(1)
	}

	dir := persistlog.TurnsDir(*runDir)
	files, err := persistlog.ListTurnFiles(dir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "list turns:", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "no turn files found in", dir)
		os.Exit(1)
	}

	checked, err := persistlog.Replay(eng, dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v (after %d turns)\n", err, checked)
		os.Exit(1)
	}
	fmt.Printf("replay ok: checked=%d turns level=%d score=%d\n", checked, eng.Level(), eng.Score())
}
