package gallery

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/gazebo-web/model-gallery/viewer"
)

// Hover preview delays.
const (
	RevealDelay  = 200 * time.Millisecond
	UnmountDelay = 300 * time.Millisecond
)

// HoverState is what a card renders.
type HoverState struct {
	// Mounted is true while the 3D preview exists (and loads).
	Mounted bool
	// Revealed is true while the preview is visible over the cover.
	Revealed bool
}

// HoverPreview drives the 3D preview of a card. Entering mounts the
// preview immediately and reveals it after RevealDelay; leaving hides it
// immediately and unmounts it after UnmountDelay.
type HoverPreview struct {
	mu      sync.Mutex
	clock   clock.Clock
	state   HoverState
	reveal  *clock.Timer
	unmount *clock.Timer
	gen     uint64
	viewer  *viewer.Viewer

	// notifyMu orders onChange calls. delivered is the last state passed to
	// onChange and is guarded by notifyMu.
	notifyMu  sync.Mutex
	delivered HoverState
	onChange  func(HoverState)
}

// NewHoverPreview returns an idle preview. onChange, if not nil, is called
// on the caller's or a timer's goroutine when the state changes. Calls never
// overlap and the last call always carries the current state; intermediate
// states may be skipped.
func NewHoverPreview(onChange func(HoverState)) *HoverPreview {
	return NewHoverPreviewWithClock(clock.New(), onChange)
}

// NewHoverPreviewWithClock is NewHoverPreview with an explicit clock.
func NewHoverPreviewWithClock(c clock.Clock, onChange func(HoverState)) *HoverPreview {
	return &HoverPreview{clock: c, onChange: onChange}
}

// State returns the current state.
func (h *HoverPreview) State() HoverState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Viewer returns the card viewer while the preview is mounted.
func (h *HoverPreview) Viewer() (*viewer.Viewer, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.viewer, h.viewer != nil
}

func (h *HoverPreview) stopTimers() {
	if h.reveal != nil {
		h.reveal.Stop()
		h.reveal = nil
	}
	if h.unmount != nil {
		h.unmount.Stop()
		h.unmount = nil
	}
}

// notify delivers the current state to onChange unless it was already
// delivered. It must be called without h.mu held, after every state change.
func (h *HoverPreview) notify() {
	if h.onChange == nil {
		return
	}
	h.notifyMu.Lock()
	defer h.notifyMu.Unlock()
	h.mu.Lock()
	s := h.state
	h.mu.Unlock()
	if s == h.delivered {
		return
	}
	h.delivered = s
	h.onChange(s)
}

// Enter handles the pointer entering the card.
func (h *HoverPreview) Enter() {
	h.mu.Lock()
	h.stopTimers()
	h.gen++
	gen := h.gen
	if h.viewer == nil {
		h.viewer = viewer.NewCardViewer()
	}
	h.state.Mounted = true
	h.reveal = h.clock.AfterFunc(RevealDelay, func() {
		h.mu.Lock()
		if gen != h.gen {
			h.mu.Unlock()
			return
		}
		h.reveal = nil
		h.state = HoverState{Mounted: true, Revealed: true}
		h.mu.Unlock()
		h.notify()
	})
	h.mu.Unlock()
	h.notify()
}

// Leave handles the pointer leaving the card.
func (h *HoverPreview) Leave() {
	h.mu.Lock()
	h.stopTimers()
	h.gen++
	gen := h.gen
	h.state.Revealed = false
	if h.state.Mounted {
		h.unmount = h.clock.AfterFunc(UnmountDelay, func() {
			h.mu.Lock()
			if gen != h.gen {
				h.mu.Unlock()
				return
			}
			h.unmount = nil
			h.viewer = nil
			h.state = HoverState{}
			h.mu.Unlock()
			h.notify()
		})
	}
	h.mu.Unlock()
	h.notify()
}
