package log

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"dinerline.ai/internal/sim/engine"
)

// RunMeta is everything needed to rebuild the engine a turn log came from.
type RunMeta struct {
	RunID           string        `json:"run_id"`
	StartedAt       string        `json:"started_at"`
	Config          engine.Config `json:"config"`
	TemplatesDigest string        `json:"templates_digest"`
	TemplateCount   int           `json:"template_count"`
}

const runMetaFile = "run.json"

func WriteRunMeta(runDir string, m RunMeta) error {
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	tmp := filepath.Join(runDir, runMetaFile+".tmp")
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, filepath.Join(runDir, runMetaFile))
}

func ReadRunMeta(runDir string) (RunMeta, error) {
	var m RunMeta
	b, err := os.ReadFile(filepath.Join(runDir, runMetaFile))
	if err != nil {
		return m, err
	}
	if err := json.Unmarshal(b, &m); err != nil {
		return m, fmt.Errorf("%s: %w", runMetaFile, err)
	}
	return m, nil
}
