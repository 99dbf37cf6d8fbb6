package store

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"

	"gearwright/copilot"
)

// BlueprintFileStore writes each blueprint as standalone files, independent
// of the project record: the raw JSON plus an HTML preview rendered from a
// markdown summary.
type BlueprintFileStore struct {
	dir string
}

func NewBlueprintFileStore(dir string) *BlueprintFileStore {
	return &BlueprintFileStore{dir: dir}
}

func (s *BlueprintFileStore) SaveBlueprintFile(name string, bp copilot.Blueprint) error {
	slug := Slugify(name)
	if slug == "" {
		return fmt.Errorf("%w: %q", ErrBadProjectName, name)
	}
	if err := writeJSONFile(filepath.Join(s.dir, slug+"-schematic.json"), bp); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(blueprintMarkdown(bp)), &buf); err != nil {
		return fmt.Errorf("render blueprint preview: %w", err)
	}
	return os.WriteFile(filepath.Join(s.dir, slug+"-schematic.html"), buf.Bytes(), 0o600)
}

func blueprintMarkdown(bp copilot.Blueprint) string {
	var sb strings.Builder
	if bp.Degraded != nil {
		sb.WriteString("# Schematic (unparsed)\n\n")
		sb.WriteString("The model's output could not be parsed: ")
		sb.WriteString(bp.Degraded.ParseError)
		sb.WriteString("\n\n```\n")
		sb.WriteString(bp.Degraded.Raw)
		sb.WriteString("\n```\n")
		return sb.String()
	}

	sch := bp.Structured
	title := sch.Name
	if title == "" {
		title = "Schematic"
	}
	sb.WriteString("# " + title + "\n\n")
	if sch.Description != "" {
		sb.WriteString(sch.Description + "\n\n")
	}
	if sch.Size != "" {
		sb.WriteString("**Size:** " + sch.Size + "\n\n")
	}
	if len(sch.Materials) > 0 {
		sb.WriteString("## Materials\n\n")
		for _, m := range sch.Materials {
			sb.WriteString("- " + m + "\n")
		}
		sb.WriteString("\n")
	}
	if len(sch.Steps) > 0 {
		sb.WriteString("## Steps\n\n")
		for i, step := range sch.Steps {
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, step))
		}
		sb.WriteString("\n")
	}
	if sch.Stress != nil {
		sb.WriteString(fmt.Sprintf("**Stress:** %d machines at %.0f base stress",
			sch.Stress.Machines, sch.Stress.BaseStress))
		if sch.StressEstimate != nil {
			sb.WriteString(fmt.Sprintf(", estimated demand %.0f", *sch.StressEstimate))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
