package interaction

import (
	"log/slog"

	"github.com/dshills/annotate/pkg/geometry"
	"github.com/dshills/annotate/pkg/intent"
)

// Transform resolves transform and drag events into geometry intents.
type Transform struct {
	dispatcher intent.Dispatcher
	cursor     *CursorFeedback
	extractor  geometry.Extractor
	logger     *slog.Logger
}

// NewTransform creates a transform controller.
func NewTransform(d intent.Dispatcher, cursor *CursorFeedback, extractor geometry.Extractor, logger *slog.Logger) *Transform {
	return &Transform{dispatcher: d, cursor: cursor, extractor: extractor, logger: logger}
}

// OnLiveTransform corrects a text target while its transformer is being
// dragged: the scale is folded into width and height on the node itself so
// glyphs are not stretched. Nothing is dispatched, and non-text targets
// are left alone.
func (t *Transform) OnLiveTransform(ev Event) {
	target := ev.target()
	if !t.extractor.IsText(target) {
		return
	}
	target.SetAttrs(t.extractor.Extract(target))
}

// OnTransformEnd dispatches the target's transform patch.
func (t *Transform) OnTransformEnd(ev Event) {
	target := ev.target()
	patch := t.extractor.Extract(target)

	t.logger.Debug("transform end", "annotation_id", patch.ID, "kind", target.Name())
	t.dispatcher.Dispatch(intent.NewSetAnnotation(patch))
}

// OnDragEnd dispatches the target's new position, then restores the hover
// cursor.
func (t *Transform) OnDragEnd(ev Event) {
	target := ev.target()
	patch := geometry.Position(target)

	t.logger.Debug("drag end", "annotation_id", patch.ID, "x", patch.X, "y", patch.Y)
	t.dispatcher.Dispatch(intent.NewSetAnnotation(patch))

	t.cursor.OnHoverOrLeave(ev)
}
