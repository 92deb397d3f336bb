package viewer

import (
	"strings"

	"github.com/pkg/errors"
)

// ViewPreset is one of the six canonical viewing directions.
type ViewPreset int

// Presets, in the order the viewer shows them.
const (
	Front ViewPreset = iota
	Back
	Left
	Right
	Top
	Bottom
)

type presetDesc struct {
	name  string
	label string
	dir   Vec3
}

// Left looks from +X and Right from -X, matching the preview's labels.
var presetTable = [...]presetDesc{
	Front:  {"front", "正面", Vec3{0, 0, 1}},
	Back:   {"back", "背面", Vec3{0, 0, -1}},
	Left:   {"left", "左侧", Vec3{1, 0, 0}},
	Right:  {"right", "右侧", Vec3{-1, 0, 0}},
	Top:    {"top", "顶部", Vec3{0, 1, 0}},
	Bottom: {"bottom", "底部", Vec3{0, -1, 0}},
}

// ErrUnknownPreset is returned when parsing an unknown preset name.
var ErrUnknownPreset = errors.New("unknown view preset")

// Presets returns all view presets in display order.
func Presets() []ViewPreset {
	return []ViewPreset{Front, Back, Left, Right, Top, Bottom}
}

// Valid returns true if p is one of the six presets.
func (p ViewPreset) Valid() bool {
	return p >= Front && p <= Bottom
}

// Direction returns the unit vector pointing from the origin to the camera.
// Invalid presets fall back to Front.
func (p ViewPreset) Direction() Vec3 {
	if !p.Valid() {
		return presetTable[Front].dir
	}
	return presetTable[p].dir
}

// Label returns the display label shown on the view buttons.
func (p ViewPreset) Label() string {
	if !p.Valid() {
		return ""
	}
	return presetTable[p].label
}

// String returns the preset name.
func (p ViewPreset) String() string {
	if !p.Valid() {
		return "unknown"
	}
	return presetTable[p].name
}

// ParsePreset returns the preset with the given name (case insensitive).
func ParsePreset(name string) (ViewPreset, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, d := range presetTable {
		if d.name == n {
			return ViewPreset(i), nil
		}
	}
	return Front, errors.Wrapf(ErrUnknownPreset, "%q", name)
}
