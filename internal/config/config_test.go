package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const preset = `
device = "/dev/bus/usb/001/004"

[parameters]
laser_power = 16
accuracy = 2
motion_range = 0
`

func TestParse(t *testing.T) {
	p, err := Parse([]byte(preset))
	require.NoError(t, err)
	assert.Equal(t, "/dev/bus/usb/001/004", p.Device)

	settings, err := p.Settings()
	require.NoError(t, err)
	assert.Equal(t, []Setting{
		{Name: "accuracy", Value: 2},
		{Name: "laser_power", Value: 16},
		{Name: "motion_range", Value: 0},
	}, settings)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("devcie = \"/dev/video0\"\n"))
	assert.Error(t, err)
}

func TestSettingsOutOfRange(t *testing.T) {
	for _, v := range []int64{-1, 256} {
		p := &Preset{Parameters: map[string]int64{"laser_power": v}}
		_, err := p.Settings()
		assert.Error(t, err, "value %d", v)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.toml")
	want := &Preset{Parameters: map[string]int64{"laser_power": 9, "dynamic_fps": 1}}
	require.NoError(t, want.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
