package interaction

import (
	"log/slog"
	"sync"

	"github.com/dshills/annotate/pkg/debounce"
	"github.com/dshills/annotate/pkg/domain/types"
	"github.com/dshills/annotate/pkg/geometry"
	"github.com/dshills/annotate/pkg/intent"
)

// Controller wires the interaction controllers to one dispatcher and gates
// them on the active editor tab.
type Controller struct {
	mu sync.Mutex

	gate      *Gate
	assembler *Assembler
	cursor    *CursorFeedback
	logger    *slog.Logger
}

// New creates an inactive controller dispatching to d. Call SetTab to
// activate it.
func New(d intent.Dispatcher, opts ...Option) *Controller {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	extractor := geometry.Extractor{TextKind: o.textKind}
	cursor := NewCursorFeedback(d, debounce.New(o.quietInterval, o.clock), o.icons, o.logger)

	return &Controller{
		gate: NewGate(o.annotateTab),
		assembler: NewAssembler(Bindings{
			Cursor:      cursor,
			Selection:   NewSelection(d, cursor, o.logger),
			Transform:   NewTransform(d, cursor, extractor, o.logger),
			TextEdit:    NewTextEdit(d, extractor, o.logger),
			LeaveCursor: o.leaveCursor,
		}),
		cursor: cursor,
		logger: o.logger,
	}
}

// SetTab records the active editor tab and returns the resulting mode.
func (c *Controller) SetTab(tab types.TabID) Mode {
	c.mu.Lock()
	defer c.mu.Unlock()

	mode, changed := c.gate.Update(tab)
	if changed {
		handlers := c.assembler.Build(mode)
		c.logger.Debug("interaction gate", "tab", tab, "mode", mode, "events", handlers.Names())
	}
	return mode
}

// Mode returns the current gate mode.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.gate.Mode()
}

// Handlers returns the handler map for the current mode. The returned map
// must not be modified.
func (c *Controller) Handlers() HandlerMap {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.assembler.Build(c.gate.Mode())
}

// Handle runs the handler registered under name, if any, and reports
// whether it ran.
func (c *Controller) Handle(name EventName, ev Event) bool {
	return c.Handlers().Handle(name, ev)
}

// EnterDrawMode requests the draw cursor. It does nothing while inactive.
func (c *Controller) EnterDrawMode() {
	if c.Mode() != ModeActive {
		return
	}
	c.cursor.OnDrawModeEntry()
}

// Flush dispatches a pending pointer icon request now.
func (c *Controller) Flush() bool {
	return c.cursor.Flush()
}

// Close drops a pending pointer icon request.
func (c *Controller) Close() {
	c.cursor.Stop()
}
