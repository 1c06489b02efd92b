package interaction

import "github.com/dshills/annotate/pkg/domain/types"

// Mode is the interaction gate state.
type Mode int

const (
	// ModeInactive contributes no handlers.
	ModeInactive Mode = iota
	// ModeActive contributes the full handler set.
	ModeActive
)

// String returns the mode name.
func (m Mode) String() string {
	if m == ModeActive {
		return "active"
	}
	return "inactive"
}

// Gate derives the interaction mode from the active editor tab.
type Gate struct {
	annotateTab types.TabID
	mode        Mode
}

// NewGate creates an inactive gate that opens on annotateTab.
func NewGate(annotateTab types.TabID) *Gate {
	return &Gate{annotateTab: annotateTab, mode: ModeInactive}
}

// ModeFor returns the mode for tab.
func (g *Gate) ModeFor(tab types.TabID) Mode {
	if tab == g.annotateTab {
		return ModeActive
	}
	return ModeInactive
}

// Update switches to the mode for tab and reports the resulting mode and
// whether it differs from the previous one.
func (g *Gate) Update(tab types.TabID) (Mode, bool) {
	next := g.ModeFor(tab)
	changed := next != g.mode
	g.mode = next
	return next, changed
}

// Mode returns the current mode.
func (g *Gate) Mode() Mode {
	return g.mode
}
