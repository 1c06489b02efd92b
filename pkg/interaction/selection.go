package interaction

import (
	"log/slog"

	"github.com/dshills/annotate/pkg/intent"
)

// Selection resolves click and tap events into selection intents.
type Selection struct {
	dispatcher intent.Dispatcher
	cursor     *CursorFeedback
	logger     *slog.Logger
}

// NewSelection creates a selection controller.
func NewSelection(d intent.Dispatcher, cursor *CursorFeedback, logger *slog.Logger) *Selection {
	return &Selection{dispatcher: d, cursor: cursor, logger: logger}
}

// OnPrimarySelect selects the target, additively when ctrl, shift or meta
// was held, then switches the active tool to the target's kind and
// refreshes the cursor.
func (s *Selection) OnPrimarySelect(ev Event) {
	t := ev.target()
	multiple := ev.Modifiers.Multiple()

	s.logger.Debug("select", "annotation_id", t.ID(), "kind", t.Name(), "multiple", multiple)
	s.dispatcher.Dispatch(intent.NewSelectAnnotation(t.ID(), multiple))

	// Selecting an annotation also opens its tool. This couples selection
	// to tool state; keep it until selection can happen with any tool
	// open without switching tools.
	s.dispatcher.Dispatch(intent.NewSelectTool(t.Name()))

	s.cursor.OnHoverOrLeave(ev)
}
