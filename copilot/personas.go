package copilot

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed personas.yaml
var defaultPersonasYAML []byte

// Personas maps each mode to its persona template. The template text is
// opaque to the core; it is rendered verbatim as the head of the system
// prompt.
type Personas map[Mode]string

// LoadPersonas reads persona templates from path, or the embedded defaults
// when path is empty. All three modes must be present.
func LoadPersonas(path string) (Personas, error) {
	data := defaultPersonasYAML
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read personas %s: %w", path, err)
		}
		data = b
	}
	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse personas: %w", err)
	}
	p := Personas{}
	for _, mode := range []Mode{ModeCreate, ModePro, ModeGeneral} {
		text := strings.TrimSpace(raw[string(mode)])
		if text == "" {
			return nil, fmt.Errorf("personas: missing template for mode %q", mode)
		}
		p[mode] = text
	}
	return p, nil
}

// For returns the template for mode, falling back to the general persona for
// anything unrecognized.
func (p Personas) For(mode Mode) string {
	if t, ok := p[mode]; ok {
		return t
	}
	return p[ModeGeneral]
}
