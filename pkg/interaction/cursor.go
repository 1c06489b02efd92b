package interaction

import (
	"log/slog"

	"github.com/dshills/annotate/pkg/debounce"
	"github.com/dshills/annotate/pkg/domain/types"
	"github.com/dshills/annotate/pkg/intent"
)

// Icons maps pointer semantics to CSS cursor names.
type Icons struct {
	Move   types.PointerIcon
	Select types.PointerIcon
	Draw   types.PointerIcon
}

// DefaultIcons returns the standard cursor names.
func DefaultIcons() Icons {
	return Icons{
		Move:   types.PointerMove,
		Select: types.PointerSelect,
		Draw:   types.PointerDraw,
	}
}

// CursorFeedback requests pointer icon changes. Requests are coalesced by a
// trailing debouncer: only the last request of a burst reaches the
// dispatcher.
type CursorFeedback struct {
	dispatcher intent.Dispatcher
	debouncer  *debounce.Debouncer
	icons      Icons
	logger     *slog.Logger
}

// NewCursorFeedback creates a cursor controller dispatching through d.
func NewCursorFeedback(d intent.Dispatcher, debouncer *debounce.Debouncer, icons Icons, logger *slog.Logger) *CursorFeedback {
	return &CursorFeedback{
		dispatcher: d,
		debouncer:  debouncer,
		icons:      icons,
		logger:     logger,
	}
}

// RequestIcon schedules a pointer icon change, replacing any request still
// waiting out the quiet interval.
func (c *CursorFeedback) RequestIcon(icon types.PointerIcon) {
	c.debouncer.Call(func() {
		c.logger.Debug("pointer icon", "icon", icon)
		c.dispatcher.Dispatch(intent.NewChangePointerIcon(icon))
	})
}

// OnHoverOrLeave requests the move cursor for draggable targets and the
// select cursor for the rest.
func (c *CursorFeedback) OnHoverOrLeave(ev Event) {
	if ev.target().Draggable() {
		c.RequestIcon(c.icons.Move)
		return
	}
	c.RequestIcon(c.icons.Select)
}

// OnDrawModeEntry requests the draw cursor.
func (c *CursorFeedback) OnDrawModeEntry() {
	c.RequestIcon(c.icons.Draw)
}

// Flush dispatches a pending icon request immediately.
func (c *CursorFeedback) Flush() bool {
	return c.debouncer.Flush()
}

// Stop drops a pending icon request.
func (c *CursorFeedback) Stop() {
	c.debouncer.Stop()
}
