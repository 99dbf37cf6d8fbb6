package copilot

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
)

// defaultBaseStress is assumed per machine when the model states machines
// but no base stress.
const defaultBaseStress = 256

// schematicExample is the literal schema the blueprint model is instructed
// to follow exactly.
const schematicExample = `{
  "name": "Compact Crusher Line",
  "description": "One sentence on what the build does",
  "materials": ["8x cogwheel", "2x mechanical press", "1x water wheel"],
  "size": "5x3x4",
  "steps": ["Place the water wheel against flowing water", "Run a shaft to the press"],
  "stress": {"machines": 4, "baseStress": 256}
}`

// EstimatorFunc derives a stress estimate from a machine count and the per
// machine base stress. Consumed as an opaque pure function.
type EstimatorFunc func(machines int, baseStress float64) float64

// SchematicSink persists a blueprint into a project's structured record.
type SchematicSink interface {
	SaveSchematic(name string, bp Blueprint) error
}

// BlueprintFileSink persists a blueprint as standalone files, independently
// of the project record.
type BlueprintFileSink interface {
	SaveBlueprintFile(name string, bp Blueprint) error
}

// Pipeline turns free-text build instructions into a Blueprint: prompt the
// blueprint model, parse strictly, degrade gracefully, enrich with a stress
// estimate, persist.
type Pipeline struct {
	llm      LLMClient
	estimate EstimatorFunc
	projects SchematicSink
	files    BlueprintFileSink
	logger   *slog.Logger
}

func NewPipeline(llm LLMClient, estimate EstimatorFunc,
	projects SchematicSink, files BlueprintFileSink, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		llm:      llm,
		estimate: estimate,
		projects: projects,
		files:    files,
		logger:   logger,
	}
}

// Generate produces a Blueprint for the given instructions. Malformed model
// output degrades to {parseError, raw} instead of failing; model call and
// persistence failures are errors.
func (p *Pipeline) Generate(ctx context.Context, instructions, projectName string) (Blueprint, error) {
	raw, err := p.llm.Complete(ctx, Prompt{User: buildSchematicPrompt(instructions)})
	if err != nil {
		return Blueprint{}, modelErr(err)
	}

	bp := parseBlueprint(raw)
	if bp.Degraded != nil {
		p.logger.Warn("blueprint output did not parse, degrading",
			"error", bp.Degraded.ParseError)
	} else if bp.Structured.Stress != nil && bp.Structured.Stress.Machines != 0 {
		base := bp.Structured.Stress.BaseStress
		if base == 0 {
			base = defaultBaseStress
		}
		estimate := p.estimate(bp.Structured.Stress.Machines, base)
		bp.Structured.StressEstimate = &estimate
	}

	if projectName != "" {
		if err := p.projects.SaveSchematic(projectName, bp); err != nil {
			return Blueprint{}, fmt.Errorf("save schematic: %w", err)
		}
		if err := p.files.SaveBlueprintFile(projectName, bp); err != nil {
			return Blueprint{}, fmt.Errorf("write blueprint file: %w", err)
		}
	}
	return bp, nil
}

func buildSchematicPrompt(instructions string) string {
	var sb strings.Builder
	sb.WriteString("You are a mechanical engineer producing machine-readable schematics.\n")
	sb.WriteString("Design a schematic for the following request:\n\n")
	sb.WriteString(instructions)
	sb.WriteString("\n\nReply with a single JSON object following exactly this schema, ")
	sb.WriteString("with no surrounding prose or markdown:\n")
	sb.WriteString(schematicExample)
	return sb.String()
}

// parseBlueprint never fails: invalid JSON becomes the degraded arm.
func parseBlueprint(raw string) Blueprint {
	var sch Schematic
	if err := json.Unmarshal([]byte(raw), &sch); err != nil {
		return Blueprint{Degraded: &Degraded{ParseError: err.Error(), Raw: raw}}
	}
	return Blueprint{Structured: &sch}
}
