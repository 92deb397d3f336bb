package gallery

import (
	"github.com/gazebo-web/model-gallery/client"
	"github.com/gazebo-web/model-gallery/viewer"
)

// Modal is the model detail dialog. It works on its own copy of the model;
// likes are pushed back to the grid through the onLike hook.
type Modal struct {
	open   bool
	model  client.Model
	viewer *viewer.Viewer
	onLike func(client.Model)
}

// NewModal returns a closed modal. onLike, if not nil, receives the model
// after every like toggle.
func NewModal(onLike func(client.Model)) *Modal {
	return &Modal{onLike: onLike, viewer: viewer.NewModalViewer()}
}

// Open shows a copy of m on the front view.
func (md *Modal) Open(m client.Model) {
	md.model = m
	md.open = true
	md.viewer = viewer.NewModalViewer()
}

// Close hides the modal and drops its model.
func (md *Modal) Close() {
	md.open = false
	md.model = client.Model{}
	md.viewer.SetFullscreen(false)
}

// IsOpen returns true while the modal is shown.
func (md *Modal) IsOpen() bool { return md.open }

// Model returns the modal's copy of the model.
func (md *Modal) Model() (client.Model, bool) {
	return md.model, md.open
}

// Viewer returns the 3D viewer of the modal.
func (md *Modal) Viewer() *viewer.Viewer { return md.viewer }

// SelectView moves the camera to preset p.
func (md *Modal) SelectView(p viewer.ViewPreset) (viewer.Placement, bool) {
	return md.viewer.SelectView(p)
}

// ToggleLike flips the like on the modal's model and propagates it.
func (md *Modal) ToggleLike() (client.Model, bool) {
	if !md.open {
		return client.Model{}, false
	}
	md.model.ToggleLike()
	if md.onLike != nil {
		md.onLike(md.model)
	}
	return md.model, true
}

// ToggleFullscreen flips the viewer's fullscreen state.
func (md *Modal) ToggleFullscreen() bool {
	return md.viewer.ToggleFullscreen()
}

// Gallery wires a Browser and a Modal: likes made in the modal update the
// grid.
type Gallery struct {
	*Browser
	Modal *Modal
}

// New returns a gallery backed by l.
func New(l Lister) *Gallery {
	b := NewBrowser(l)
	return &Gallery{Browser: b, Modal: NewModal(b.ReplaceModel)}
}
