package viewer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance(t *testing.T) {
	// maxDim 10, fov 90: (10/2)/tan(45) = 5
	assert.InDelta(t, 9.0, Distance(10, 90, AutoFrame), 1e-9)
	assert.InDelta(t, 6.0, Distance(10, 90, PresetFrame), 1e-9)
	expected := 5 / math.Tan(25*math.Pi/180) * 1.8
	assert.InDelta(t, expected, Distance(10, DefaultFOV, AutoFrame), 1e-9)
}

func TestDistanceFloor(t *testing.T) {
	for _, maxDim := range []float64{1e-9, 0.01, 0.5, 1} {
		assert.Equal(t, 3.0, Distance(maxDim, DefaultFOV, AutoFrame), "maxDim %v", maxDim)
		assert.GreaterOrEqual(t, Distance(maxDim, 170, AutoFrame), 3.0)
	}
	assert.Equal(t, 2.0, Distance(0.1, DefaultFOV, PresetFrame))
	assert.Equal(t, 3.0, Distance(0, DefaultFOV, AutoFrame))
	assert.Equal(t, 3.0, Distance(-4, DefaultFOV, AutoFrame))
	assert.Equal(t, 3.0, Distance(math.NaN(), DefaultFOV, AutoFrame))
}

func TestDistanceMonotonicInMaxDim(t *testing.T) {
	for _, fov := range []float64{10, 45, 50, 90, 120, 179} {
		prev := 0.0
		for maxDim := 0.1; maxDim < 500; maxDim *= 1.7 {
			d := Distance(maxDim, fov, AutoFrame)
			assert.GreaterOrEqual(t, d, prev, "fov %v maxDim %v", fov, maxDim)
			prev = d
		}
	}
	// Strictly increasing above the floor.
	assert.Less(t, Distance(100, 50, AutoFrame), Distance(101, 50, AutoFrame))
}

func TestDistanceMonotonicInFOV(t *testing.T) {
	for _, maxDim := range []float64{0.5, 5, 50, 500} {
		prev := math.Inf(1)
		for fov := 1.0; fov < 180; fov += 7 {
			d := Distance(maxDim, fov, AutoFrame)
			assert.LessOrEqual(t, d, prev, "maxDim %v fov %v", maxDim, fov)
			prev = d
		}
	}
	assert.Greater(t, Distance(100, 40, AutoFrame), Distance(100, 60, AutoFrame))
}

func TestDistanceInvalidFOV(t *testing.T) {
	want := Distance(20, DefaultFOV, AutoFrame)
	assert.Equal(t, want, Distance(20, 0, AutoFrame))
	assert.Equal(t, want, Distance(20, 180, AutoFrame))
	assert.Equal(t, want, Distance(20, -10, AutoFrame))
}

func TestPlacePresetsOnAxis(t *testing.T) {
	for _, p := range Presets() {
		p := p
		t.Run(p.String(), func(t *testing.T) {
			pl := Place(10, DefaultFOV, &p, PresetFrame)
			d := Distance(10, DefaultFOV, PresetFrame)
			require.Equal(t, d, pl.Distance)
			assert.Equal(t, p.Direction().Scale(d), pl.Position)
			assert.InDelta(t, d, pl.Position.Len(), 1e-9)
			assert.Equal(t, Vec3{}, pl.Target)
			// Exactly one non-zero component, with the preset's sign.
			nonZero := 0
			for _, c := range []float64{pl.Position.X, pl.Position.Y, pl.Position.Z} {
				if c != 0 {
					nonZero++
				}
			}
			assert.Equal(t, 1, nonZero)
		})
	}
}

func TestPlacePresetSigns(t *testing.T) {
	cases := map[ViewPreset]Vec3{
		Front:  {0, 0, 6},
		Back:   {0, 0, -6},
		Left:   {6, 0, 0},
		Right:  {-6, 0, 0},
		Top:    {0, 6, 0},
		Bottom: {0, -6, 0},
	}
	for p, want := range cases {
		p := p
		got := Place(10, 90, &p, PresetFrame).Position
		assertVecInDelta(t, want, got, p.String())
	}
}

func TestPlaceUpVector(t *testing.T) {
	top, bottom, front := Top, Bottom, Front
	assert.Equal(t, Vec3{0, 0, -1}, Place(1, 50, &top, PresetFrame).Up)
	assert.Equal(t, Vec3{0, 0, 1}, Place(1, 50, &bottom, PresetFrame).Up)
	assert.Equal(t, Vec3{0, 1, 0}, Place(1, 50, &front, PresetFrame).Up)
}

func TestPlaceDefaultOffset(t *testing.T) {
	pl := Place(10, 90, nil, AutoFrame)
	assert.InDelta(t, 9.0, pl.Distance, 1e-9)
	assert.InDelta(t, 6.3, pl.Position.X, 1e-9)
	assert.InDelta(t, 3.6, pl.Position.Y, 1e-9)
	assert.InDelta(t, 8.1, pl.Position.Z, 1e-9)
	assert.Equal(t, Vec3{0, 1, 0}, pl.Up)
}

func TestParsePreset(t *testing.T) {
	p, err := ParsePreset(" Top ")
	require.NoError(t, err)
	assert.Equal(t, Top, p)
	assert.Equal(t, "顶部", p.Label())

	_, err = ParsePreset("diagonal")
	assert.ErrorIs(t, err, ErrUnknownPreset)

	assert.False(t, ViewPreset(6).Valid())
	assert.Equal(t, Front.Direction(), ViewPreset(-1).Direction())
	assert.Equal(t, "unknown", ViewPreset(9).String())
}

func assertVecInDelta(t *testing.T, want, got Vec3, msg string) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-9, msg)
	assert.InDelta(t, want.Y, got.Y, 1e-9, msg)
	assert.InDelta(t, want.Z, got.Z, 1e-9, msg)
}
