package catalogs

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

type Catalogs struct {
	Templates TemplateCatalog
}

// TemplateCatalog is the ordered set of floor templates. A template's index is
// its position after sorting the files by name.
type TemplateCatalog struct {
	Defs   []TemplateDef
	Index  map[string]int
	Digest string
}

// TemplateDef is one raw floor plan. Rows[y][x] holds a tile code:
// 0 wall, 1 floor, 2 door, 3..5 food stations.
type TemplateDef struct {
	ID   string  `json:"id"`
	Name string  `json:"name,omitempty"`
	Rows [][]int `json:"rows"`
}

func Load(configDir string) (*Catalogs, error) {
	var c Catalogs
	if err := loadTemplates(filepath.Join(configDir, "templates"), &c.Templates); err != nil {
		return nil, err
	}
	return &c, nil
}

// NewTemplateCatalog builds a catalog from in-memory definitions, in order.
func NewTemplateCatalog(defs ...TemplateDef) *TemplateCatalog {
	c := &TemplateCatalog{Index: map[string]int{}}
	var concat bytes.Buffer
	for _, d := range defs {
		b, _ := json.Marshal(d)
		concat.Write(b)
		concat.WriteByte('\n')
		c.Index[d.ID] = len(c.Defs)
		c.Defs = append(c.Defs, d)
	}
	c.Digest = sha256Hex(concat.Bytes())
	return c
}

func (c *TemplateCatalog) Size() int {
	if c == nil {
		return 0
	}
	return len(c.Defs)
}

func (c *TemplateCatalog) TileCodeAt(templateID, row, col int) (int, bool) {
	if c == nil || templateID < 0 || templateID >= len(c.Defs) {
		return 0, false
	}
	rows := c.Defs[templateID].Rows
	if row < 0 || row >= len(rows) {
		return 0, false
	}
	if col < 0 || col >= len(rows[row]) {
		return 0, false
	}
	return rows[row][col], true
}

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func loadTemplates(dir string, out *TemplateCatalog) error {
	out.Index = map[string]int{}
	out.Defs = nil

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(e.Name(), ".json") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	if len(files) == 0 {
		return fmt.Errorf("templates: no *.json in %s", dir)
	}

	var concat bytes.Buffer
	for _, p := range files {
		b, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		concat.Write(b)
		concat.WriteByte('\n')

		var def TemplateDef
		if err := json.Unmarshal(b, &def); err != nil {
			return fmt.Errorf("template %s: %w", filepath.Base(p), err)
		}
		if def.ID == "" {
			return fmt.Errorf("template %s: missing id", filepath.Base(p))
		}
		if len(def.Rows) == 0 {
			return fmt.Errorf("template %s: no rows", filepath.Base(p))
		}
		if _, dup := out.Index[def.ID]; dup {
			return fmt.Errorf("template %s: duplicate id %q", filepath.Base(p), def.ID)
		}
		out.Index[def.ID] = len(out.Defs)
		out.Defs = append(out.Defs, def)
	}
	out.Digest = sha256Hex(concat.Bytes())
	return nil
}
