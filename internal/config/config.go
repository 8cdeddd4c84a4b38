package config

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/pelletier/go-toml/v2"
)

// Preset is a set of extension unit parameter values to apply to a device.
type Preset struct {
	Device     string           `toml:"device,omitempty"`
	Parameters map[string]int64 `toml:"parameters"`
}

// Setting is one parameter assignment of a preset.
type Setting struct {
	Name  string
	Value uint8
}

// Load reads a preset file.
func Load(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read preset: %w", err)
	}
	return Parse(data)
}

// Parse decodes a preset. Unknown top-level keys are rejected so typos don't
// silently leave a parameter unset.
func Parse(data []byte) (*Preset, error) {
	var p Preset
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to parse preset: %w", err)
	}
	return &p, nil
}

// Settings returns the preset's assignments sorted by name. Values must fit in
// a byte.
func (p *Preset) Settings() ([]Setting, error) {
	names := make([]string, 0, len(p.Parameters))
	for name := range p.Parameters {
		names = append(names, name)
	}
	sort.Strings(names)

	settings := make([]Setting, 0, len(names))
	for _, name := range names {
		v := p.Parameters[name]
		if v < 0 || v > math.MaxUint8 {
			return nil, fmt.Errorf("parameter %s: value %d out of range", name, v)
		}
		settings = append(settings, Setting{Name: name, Value: uint8(v)})
	}
	return settings, nil
}

// Save writes the preset to path.
func (p *Preset) Save(path string) error {
	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal preset: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write preset: %w", err)
	}
	return nil
}
