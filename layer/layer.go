// Package layer defines the tree collaborator the acquire worker attaches
// a freshly-populated TRW container into on success. The side-panel tree
// widget, layer ordering and persistence all live outside this engine;
// this interface is the only way the core reaches into that tree.
package layer

import "geoengine/track"

// Tree is the external layer hierarchy a completed acquisition attaches
// its result to.
type Tree interface {
	// Attach makes trw a visible child of the tree. Called once, after
	// the acquire worker has finished populating trw and computed its
	// bounds.
	Attach(trw *track.TRW) error

	// Selected returns the TRW the user currently has selected, or nil
	// if none/not a TRW, for AddToLayer/ManualLayerManagement modes.
	Selected() *track.TRW
}

// InMemory is a minimal Tree for the CLI front-end and tests: it just
// keeps every attached TRW in a slice.
type InMemory struct {
	Attached []*track.TRW
	selected *track.TRW
}

func NewInMemory(selected *track.TRW) *InMemory {
	return &InMemory{selected: selected}
}

func (m *InMemory) Attach(trw *track.TRW) error {
	m.Attached = append(m.Attached, trw)
	return nil
}

func (m *InMemory) Selected() *track.TRW {
	return m.selected
}
