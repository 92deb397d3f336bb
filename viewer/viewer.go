package viewer

// Viewer is the camera state of one preview surface: the modal viewer with
// its view presets and fullscreen toggle, or the hover preview on a card.
type Viewer struct {
	framer     *Framer
	view       *ViewPreset
	fullscreen bool
	failure    *Failed
}

// NewModalViewer returns the viewer used by the model modal. It frames new
// assets along the active preset (Front initially).
func NewModalViewer() *Viewer {
	front := Front
	return &Viewer{
		framer: &Framer{FOV: DefaultFOV, Params: PresetFrame},
		view:   &front,
	}
}

// NewCardViewer returns the viewer used by the hover preview. It frames new
// assets from the default oblique angle.
func NewCardViewer() *Viewer {
	return &Viewer{framer: NewFramer(DefaultFOV)}
}

// Load applies the result of an asset load. A Loaded result resets the
// framer and frames the new asset; a Failed result is kept so Failure can
// report it.
func (v *Viewer) Load(res LoadResult) (Placement, bool) {
	v.framer.Reset()
	v.failure = nil
	switch r := res.(type) {
	case Loaded:
		return v.framer.Frame(r.Bounds, v.view)
	case Failed:
		v.failure = &r
	}
	return Placement{}, false
}

// View returns the active preset. The card viewer has none.
func (v *Viewer) View() (ViewPreset, bool) {
	if v.view == nil {
		return Front, false
	}
	return *v.view, true
}

// SelectView makes p the active preset and repositions the camera if an
// asset is framed.
func (v *Viewer) SelectView(p ViewPreset) (Placement, bool) {
	v.view = &p
	return v.framer.SelectView(p)
}

// State returns the framer state.
func (v *Viewer) State() FrameState {
	return v.framer.State()
}

// Failure returns the last load failure, if any. The preview shows
// FailureMessage in that case.
func (v *Viewer) Failure() (Failed, bool) {
	if v.failure == nil {
		return Failed{}, false
	}
	return *v.failure, true
}

// ToggleFullscreen flips the fullscreen flag and returns the new value.
func (v *Viewer) ToggleFullscreen() bool {
	v.fullscreen = !v.fullscreen
	return v.fullscreen
}

// SetFullscreen records a fullscreen change made outside the viewer, such
// as the user pressing ESC.
func (v *Viewer) SetFullscreen(on bool) {
	v.fullscreen = on
}

// Fullscreen returns true while the viewer is fullscreen.
func (v *Viewer) Fullscreen() bool {
	return v.fullscreen
}
