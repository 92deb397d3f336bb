package viewer

import "math"

// Box is an axis-aligned bounding box. The zero value is not empty: use
// EmptyBox to start an accumulation.
type Box struct {
	Min Vec3
	Max Vec3
}

// EmptyBox returns a box that contains nothing. Expanding it by any point
// yields a degenerate box around that point.
func EmptyBox() Box {
	inf := math.Inf(1)
	return Box{
		Min: Vec3{inf, inf, inf},
		Max: Vec3{-inf, -inf, -inf},
	}
}

// IsEmpty returns true if the box contains no point.
func (b Box) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// ExpandPoint grows the box so it contains p.
func (b Box) ExpandPoint(p Vec3) Box {
	return Box{Min: minVec(b.Min, p), Max: maxVec(b.Max, p)}
}

// Union returns the smallest box containing both b and o.
func (b Box) Union(o Box) Box {
	if o.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return o
	}
	return Box{Min: minVec(b.Min, o.Min), Max: maxVec(b.Max, o.Max)}
}

// Corners returns the eight corners of the box.
func (b Box) Corners() [8]Vec3 {
	return [8]Vec3{
		{b.Min.X, b.Min.Y, b.Min.Z},
		{b.Max.X, b.Min.Y, b.Min.Z},
		{b.Min.X, b.Max.Y, b.Min.Z},
		{b.Max.X, b.Max.Y, b.Min.Z},
		{b.Min.X, b.Min.Y, b.Max.Z},
		{b.Max.X, b.Min.Y, b.Max.Z},
		{b.Min.X, b.Max.Y, b.Max.Z},
		{b.Max.X, b.Max.Y, b.Max.Z},
	}
}

// BoundingInfo describes the extent of a loaded asset. It is computed once
// per load and consumed by the framing logic.
type BoundingInfo struct {
	// Size along each axis. Never negative.
	Size Vec3 `json:"size"`
	// Center of the bounding box, in asset space.
	Center Vec3 `json:"center"`
	// MaxDim is the largest of the three sizes.
	MaxDim float64 `json:"maxDim"`
}

// NewBoundingInfo computes the bounding info of a box. An empty box yields
// the zero BoundingInfo.
func NewBoundingInfo(b Box) BoundingInfo {
	if b.IsEmpty() {
		return BoundingInfo{}
	}
	size := Vec3{
		math.Max(b.Max.X-b.Min.X, 0),
		math.Max(b.Max.Y-b.Min.Y, 0),
		math.Max(b.Max.Z-b.Min.Z, 0),
	}
	return BoundingInfo{
		Size:   size,
		Center: b.Min.Add(b.Max).Scale(0.5),
		MaxDim: size.MaxComponent(),
	}
}

// Offset is the translation that moves the asset's center to the origin.
func (bi BoundingInfo) Offset() Vec3 {
	return bi.Center.Scale(-1)
}
