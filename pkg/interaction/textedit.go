package interaction

import (
	"log/slog"

	"github.com/dshills/annotate/pkg/geometry"
	"github.com/dshills/annotate/pkg/intent"
)

// TextEdit opens the inline editor of text annotations.
type TextEdit struct {
	dispatcher intent.Dispatcher
	extractor  geometry.Extractor
	logger     *slog.Logger
}

// NewTextEdit creates a text edit controller.
func NewTextEdit(d intent.Dispatcher, extractor geometry.Extractor, logger *slog.Logger) *TextEdit {
	return &TextEdit{dispatcher: d, extractor: extractor, logger: logger}
}

// OnDoubleActivate enables content editing when the target is a text
// annotation.
func (e *TextEdit) OnDoubleActivate(ev Event) {
	target := ev.target()
	if !e.extractor.IsText(target) {
		return
	}

	e.logger.Debug("edit text", "annotation_id", target.ID())
	e.dispatcher.Dispatch(intent.NewEnableTextContentEdit(target.ID()))
}
