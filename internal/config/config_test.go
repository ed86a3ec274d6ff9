package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/embers/internal/particle"
	"github.com/iburimskiy/embers/internal/preset"
)

func TestDefaultIsValid(t *testing.T) {
	w := Default()
	require.NoError(t, w.Validate())
	assert.Equal(t, DefaultLayers, w.Page.Layers())
}

func TestExampleParses(t *testing.T) {
	w, err := Parse(Example)
	require.NoError(t, err)
	assert.Equal(t, []string{"connections", "petals", "campfire"}, w.Page.Layer)
	assert.Equal(t, "embers", w.Page.Menu)
	assert.Equal(t, 768, w.Page.Breakpoint)
	assert.False(t, w.Audio.Enabled)
	require.Contains(t, w.Effect, "campfire")
	assert.Equal(t, "campfire", w.Effect["campfire"].Preset)

	target, err := w.Page.Target()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.February, 23, 0, 0, 0, 0, time.Local), target)
}

func TestEffectOverrides(t *testing.T) {
	w, err := Parse(`
[Page]
Layer = sparks

[Effect "sparks"]
Preset = campfire
Count = 120
Coupling = repel
Background = false
Palette = "#112233"
Palette = 445566
`)
	require.NoError(t, err)

	o, err := w.Options("sparks")
	require.NoError(t, err)
	assert.Equal(t, "sparks", o.Name)
	assert.Equal(t, 120, o.Count)
	assert.Equal(t, 40, o.CompactCount, "unset fields keep the preset's")
	assert.Equal(t, particle.Repel, o.Style.Coupling)
	assert.False(t, o.Background)
	assert.Equal(t, []color.NRGBA{
		{R: 0x11, G: 0x22, B: 0x33, A: 0xFF},
		{R: 0x44, G: 0x55, B: 0x66, A: 0xFF},
	}, o.Style.Palette)

	fresh := preset.Campfire()
	assert.Len(t, fresh.Style.Palette, 4, "presets are not mutated")
}

func TestOptionsForBarePreset(t *testing.T) {
	w := Default()
	o, err := w.Options("petals")
	require.NoError(t, err)
	assert.Equal(t, 50, o.Count)
	assert.Equal(t, 768, o.Breakpoint)

	_, err = w.Options("nope")
	assert.True(t, errors.Is(err, preset.ErrUnknown))
}

func TestValidate(t *testing.T) {
	_, err := Parse(`
[Page]
Width = 0
Countdown = tomorrow
Layer = fireworks

[Audio]
Volume = 2

[Effect "a"]
Coupling = sideways
Boundary = wrap
Background = maybe
Count = -1
Palette = "#zzzzzz"
`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalid))
	for _, field := range []string{
		"Page.Width", "Page.Countdown", `Page.Layer "fireworks"`, "Audio.Volume",
		`Effect "a".Coupling`, `Effect "a".Boundary`, `Effect "a".Background`,
		`Effect "a".Count`, `Effect "a".Palette`,
	} {
		assert.Contains(t, err.Error(), field)
	}
}

func TestUnknownVariable(t *testing.T) {
	_, err := Parse("[Page]\nColour = red\n")
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "embers.gcfg")
	require.NoError(t, os.WriteFile(path, []byte(Example), 0o644))
	w, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1024, w.Page.Width)

	_, err = Load(filepath.Join(t.TempDir(), "missing.gcfg"))
	assert.Error(t, err)
}
