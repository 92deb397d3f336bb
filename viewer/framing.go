package viewer

import "math"

// DefaultFOV is the vertical field of view, in degrees, of the preview
// cameras.
const DefaultFOV = 50.0

// Params controls how much room is left around the asset.
type Params struct {
	// Margin multiplies the tight-fit distance.
	Margin float64
	// MinDistance is the floor applied to the computed distance.
	MinDistance float64
}

var (
	// AutoFrame is used when an asset is first framed.
	AutoFrame = Params{Margin: 1.8, MinDistance: 3}
	// PresetFrame is used when the user picks a view preset. The asset
	// fills roughly 70% of the viewport.
	PresetFrame = Params{Margin: 1.2, MinDistance: 2}
)

// defaultOffset is the oblique camera offset used when no preset is given.
// It is a ratio of the computed distance, not a unit vector.
var defaultOffset = Vec3{0.7, 0.4, 0.9}

// Distance returns the camera distance at which an object whose largest
// dimension is maxDim fits a vertical field of view of fovDeg degrees:
//
//	max((maxDim/2) / tan(fov/2) * margin, minDistance)
//
// A field of view outside (0, 180) is replaced by DefaultFOV. Non positive
// or NaN dimensions yield the floor.
func Distance(maxDim, fovDeg float64, p Params) float64 {
	if !(fovDeg > 0 && fovDeg < 180) {
		fovDeg = DefaultFOV
	}
	if !(maxDim > 0) {
		return p.MinDistance
	}
	fov := fovDeg * math.Pi / 180
	d := (maxDim / 2) / math.Tan(fov/2) * p.Margin
	return math.Max(d, p.MinDistance)
}

// Placement is where the camera goes and what it looks at.
type Placement struct {
	Position Vec3    `json:"position"`
	Target   Vec3    `json:"target"`
	Up       Vec3    `json:"up"`
	Distance float64 `json:"distance"`
}

var (
	yUp = Vec3{0, 1, 0}
	// Looking straight down the Y axis needs another up vector.
	zUpTop    = Vec3{0, 0, -1}
	zUpBottom = Vec3{0, 0, 1}
)

// Place computes the camera placement for an asset with the given largest
// dimension. If preset is nil the default oblique offset is used, otherwise
// the camera sits on the preset's axis at the computed distance.
func Place(maxDim, fovDeg float64, preset *ViewPreset, p Params) Placement {
	d := Distance(maxDim, fovDeg, p)
	pl := Placement{Up: yUp, Distance: d}
	if preset == nil {
		pl.Position = defaultOffset.Scale(d)
		return pl
	}
	pl.Position = preset.Direction().Unit().Scale(d)
	switch *preset {
	case Top:
		pl.Up = zUpTop
	case Bottom:
		pl.Up = zUpBottom
	}
	return pl
}
