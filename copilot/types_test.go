package copilot

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStyleProfileRoundTripPreservesUnknownFields(t *testing.T) {
	in := []byte(`{"tone": "blunt", "detail": "full", "emojis": "never", "formatting": "plain", "dialect": "pirate"}`)
	var profile StyleProfile
	require.NoError(t, json.Unmarshal(in, &profile))

	assert.Equal(t, "blunt", profile.Tone)
	assert.Equal(t, "pirate", profile.Extra["dialect"])

	out, err := json.Marshal(profile)
	require.NoError(t, err)
	var fields map[string]any
	require.NoError(t, json.Unmarshal(out, &fields))
	assert.Equal(t, "pirate", fields["dialect"])
	assert.Equal(t, "blunt", fields["tone"])
}

func TestBlueprintMarshalsStructuredArmFlat(t *testing.T) {
	estimate := 1280.0
	bp := Blueprint{Structured: &Schematic{
		Name:           "Mill",
		Stress:         &StressSpec{Machines: 4, BaseStress: 256},
		StressEstimate: &estimate,
	}}
	data, err := json.Marshal(bp)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Equal(t, "Mill", fields["name"])
	assert.Equal(t, 1280.0, fields["stressEstimate"])
	assert.NotContains(t, fields, "parseError")
	assert.NotContains(t, fields, "raw")
}

func TestBlueprintUnmarshalPicksTheRightArm(t *testing.T) {
	var structured Blueprint
	require.NoError(t, json.Unmarshal([]byte(`{"name": "Mill"}`), &structured))
	require.NotNil(t, structured.Structured)
	assert.Nil(t, structured.Degraded)
	assert.Equal(t, "Mill", structured.Structured.Name)

	var degraded Blueprint
	require.NoError(t, json.Unmarshal([]byte(`{"parseError": "bad", "raw": "oops"}`), &degraded))
	require.NotNil(t, degraded.Degraded)
	assert.Nil(t, degraded.Structured)
	assert.Equal(t, "oops", degraded.Degraded.Raw)
}

func TestLoadPersonasEmbeddedDefaults(t *testing.T) {
	personas, err := LoadPersonas("")
	require.NoError(t, err)
	for _, mode := range []Mode{ModeCreate, ModePro, ModeGeneral} {
		assert.NotEmpty(t, personas.For(mode))
	}
	// Unknown modes fall back to the general persona.
	assert.Equal(t, personas[ModeGeneral], personas.For(Mode("weird")))
}
