package window

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/guttosm/tradechart/internal/domain/models"
)

// DefaultPresets returns the built-in zoom shortcuts.
func DefaultPresets() []models.ZoomPreset {
	return []models.ZoomPreset{
		{Label: "All", Start: 0, End: 1},
		{Label: "First Half", Start: 0, End: 0.5},
		{Label: "Second Half", Start: 0.5, End: 1},
		{Label: "First Quarter", Start: 0, End: 0.25},
		{Label: "Last Quarter", Start: 0.75, End: 1},
	}
}

// PresetByLabel finds a preset by case-insensitive label.
func PresetByLabel(presets []models.ZoomPreset, label string) (models.ZoomPreset, bool) {
	for _, p := range presets {
		if strings.EqualFold(p.Label, strings.TrimSpace(label)) {
			return p, true
		}
	}
	return models.ZoomPreset{}, false
}

type presetFile struct {
	Presets []models.ZoomPreset `yaml:"presets"`
}

// LoadPresets reads a preset table in YAML form:
//
//	presets:
//	  - label: All
//	    start: 0
//	    end: 1
//
// Labels must be present and unique; bounds are taken literally.
func LoadPresets(r io.Reader) ([]models.ZoomPreset, error) {
	var f presetFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("preset file is empty")
		}
		return nil, fmt.Errorf("decode presets: %w", err)
	}
	if len(f.Presets) == 0 {
		return nil, errors.New("preset file defines no presets")
	}
	seen := make(map[string]struct{}, len(f.Presets))
	for i, p := range f.Presets {
		key := strings.ToLower(strings.TrimSpace(p.Label))
		if key == "" {
			return nil, fmt.Errorf("preset %d: label is required", i+1)
		}
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("preset %d: duplicate label %q", i+1, p.Label)
		}
		seen[key] = struct{}{}
	}
	return f.Presets, nil
}
