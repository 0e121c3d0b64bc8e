package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dinerline.ai/internal/persistence/indexdb"
	"dinerline.ai/internal/sim/catalogs"
	"dinerline.ai/internal/sim/engine"
	"dinerline.ai/internal/sim/tuning"
)

type runtimeIndex interface {
	engine.TurnLogger
	Close() error
	UpsertCatalogs(configDir string, cats *catalogs.Catalogs, tune tuning.Tuning) error
	RecordRun(r indexdb.RunInfo) error
	Stats() indexdb.Stats
}

func openRuntimeIndex(dataDir string, disableDB bool) (runtimeIndex, error) {
	if disableDB {
		return nil, nil
	}

	backend := strings.ToLower(strings.TrimSpace(os.Getenv("DL_INDEX_BACKEND")))
	if backend == "" {
		backend = "sqlite"
	}

	switch backend {
	case "none", "off", "disabled":
		return nil, nil
	case "sqlite":
		return indexdb.OpenSQLite(filepath.Join(dataDir, "index", "runs.sqlite"))
	default:
		return nil, fmt.Errorf("unsupported DL_INDEX_BACKEND: %s", backend)
	}
}

func runInfo(runID string, cfg engine.Config, cats *catalogs.Catalogs) indexdb.RunInfo {
	return indexdb.RunInfo{
		RunID:           runID,
		Seed:            cfg.Seed,
		Width:           cfg.Width,
		Height:          cfg.Height,
		TemplatesDigest: cats.Templates.Digest,
		Config:          cfg,
		StartedAt:       time.Now(),
	}
}
