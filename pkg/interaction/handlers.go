package interaction

import "sort"

// HandlerMap maps event names to handlers. An inactive controller hands out
// an empty map.
type HandlerMap map[EventName]Handler

// Handle invokes the handler registered under name and reports whether one
// was registered.
func (m HandlerMap) Handle(name EventName, ev Event) bool {
	h, ok := m[name]
	if !ok {
		return false
	}
	h(ev)
	return true
}

// Names returns the registered event names, sorted.
func (m HandlerMap) Names() []EventName {
	names := make([]EventName, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// LeaveCursor selects the cursor requested when the pointer leaves an
// annotation.
type LeaveCursor string

const (
	// LeaveHover applies the hover rule: move for draggable targets,
	// select otherwise.
	LeaveHover LeaveCursor = "hover"
	// LeaveDraw switches back to the draw cursor.
	LeaveDraw LeaveCursor = "draw"
)

// Bindings are the controllers a HandlerMap is assembled from.
type Bindings struct {
	Cursor      *CursorFeedback
	Selection   *Selection
	Transform   *Transform
	TextEdit    *TextEdit
	LeaveCursor LeaveCursor
}

// Assembler builds handler maps and caches the map of the current mode.
type Assembler struct {
	bindings Bindings
	mode     Mode
	current  HandlerMap
}

// NewAssembler creates an assembler in ModeInactive.
func NewAssembler(b Bindings) *Assembler {
	return &Assembler{
		bindings: b,
		mode:     ModeInactive,
		current:  HandlerMap{},
	}
}

// Build returns the handler map for mode. While mode stays the same the
// same map is returned; every transition builds a fresh one.
func (a *Assembler) Build(mode Mode) HandlerMap {
	if mode == a.mode && a.current != nil {
		return a.current
	}

	a.mode = mode
	a.current = a.assemble(mode)
	return a.current
}

func (a *Assembler) assemble(mode Mode) HandlerMap {
	if mode != ModeActive {
		return HandlerMap{}
	}

	b := a.bindings
	onLeave := Handler(b.Cursor.OnHoverOrLeave)
	if b.LeaveCursor == LeaveDraw {
		onLeave = func(Event) { b.Cursor.OnDrawModeEntry() }
	}

	return HandlerMap{
		OnTransform:    b.Transform.OnLiveTransform,
		OnTransformEnd: b.Transform.OnTransformEnd,
		OnMouseOver:    b.Cursor.OnHoverOrLeave,
		OnMouseLeave:   onLeave,
		OnDragEnd:      b.Transform.OnDragEnd,
		OnClick:        b.Selection.OnPrimarySelect,
		OnTap:          b.Selection.OnPrimarySelect,
		OnDblClick:     b.TextEdit.OnDoubleActivate,
		OnDblTap:       b.TextEdit.OnDoubleActivate,
	}
}
