package viewer

// FrameState is the state of a Framer.
type FrameState int

const (
	// Unset means no asset has been framed since the last load.
	Unset FrameState = iota
	// Framed means the camera was placed for the current asset.
	Framed
)

// String returns a readable name for the state.
func (s FrameState) String() string {
	if s == Framed {
		return "framed"
	}
	return "unset"
}

// Framer places the camera once per freshly loaded asset. Later calls to
// Frame return the stored placement so user driven rotation is never
// overridden. A Framer is not safe for concurrent use.
type Framer struct {
	// FOV is the camera's vertical field of view in degrees.
	FOV float64
	// Params used by Frame. Defaults to AutoFrame.
	Params Params

	state     FrameState
	bounds    BoundingInfo
	placement Placement
}

// NewFramer returns an unset Framer using the AutoFrame parameters.
func NewFramer(fov float64) *Framer {
	return &Framer{FOV: fov, Params: AutoFrame}
}

// State returns the current state.
func (f *Framer) State() FrameState {
	return f.state
}

// Distance returns the framed distance. The second value is false while the
// framer is Unset.
func (f *Framer) Distance() (float64, bool) {
	if f.state != Framed {
		return 0, false
	}
	return f.placement.Distance, true
}

// Bounds returns the bounding info of the framed asset.
func (f *Framer) Bounds() (BoundingInfo, bool) {
	return f.bounds, f.state == Framed
}

// Frame computes the placement for the given asset on the Unset to Framed
// transition and returns it with true. Once Framed it returns the stored
// placement and false.
func (f *Framer) Frame(b BoundingInfo, preset *ViewPreset) (Placement, bool) {
	if f.state == Framed {
		return f.placement, false
	}
	f.bounds = b
	f.placement = Place(b.MaxDim, f.FOV, preset, f.Params)
	f.state = Framed
	return f.placement, true
}

// SelectView repositions the camera along a preset direction for the framed
// asset, using the PresetFrame parameters. The framed state and asset are
// left untouched. It returns false if nothing is framed.
func (f *Framer) SelectView(p ViewPreset) (Placement, bool) {
	if f.state != Framed {
		return Placement{}, false
	}
	return Place(f.bounds.MaxDim, f.FOV, &p, PresetFrame), true
}

// Reset returns the framer to Unset. Call it when a new asset is loaded.
func (f *Framer) Reset() {
	f.state = Unset
	f.bounds = BoundingInfo{}
	f.placement = Placement{}
}
