// Package intent defines the typed messages the interaction controller
// hands to the application store, and the dispatch channels that carry
// them.
package intent

import (
	"time"

	"github.com/dshills/annotate/pkg/domain/types"
	"github.com/dshills/annotate/pkg/geometry"
)

// Type names the store action an intent requests.
type Type string

const (
	// SetAnnotation patches an annotation's geometry.
	SetAnnotation Type = "SET_ANNOTATION"
	// SelectAnnotation selects an annotation, optionally extending the
	// current selection.
	SelectAnnotation Type = "SELECT_ANNOTATION"
	// SelectTool switches the active annotation tool.
	SelectTool Type = "SELECT_TOOL"
	// ChangePointerIcon changes the canvas pointer cursor.
	ChangePointerIcon Type = "CHANGE_POINTER_ICON"
	// EnableTextContentEdit opens the inline editor of a text annotation.
	EnableTextContentEdit Type = "ENABLE_TEXT_CONTENT_EDIT"
)

// Types lists every intent type in a stable order.
var Types = []Type{
	SetAnnotation,
	SelectAnnotation,
	SelectTool,
	ChangePointerIcon,
	EnableTextContentEdit,
}

// Intent is a request for a state mutation. Payload holds one of the
// payload types of this package, or a geometry.Patch for SetAnnotation.
type Intent struct {
	Type      Type      `json:"type"`
	Payload   any       `json:"payload"`
	Timestamp time.Time `json:"timestamp"`
}

// SelectAnnotationPayload is the payload of SelectAnnotation.
type SelectAnnotationPayload struct {
	AnnotationID types.AnnotationID `json:"annotationId"`
	Multiple     bool               `json:"multiple"`
}

// SelectToolPayload is the payload of SelectTool.
type SelectToolPayload struct {
	ToolID types.ToolID `json:"toolId"`
}

// ChangePointerIconPayload is the payload of ChangePointerIcon.
type ChangePointerIconPayload struct {
	PointerCSSIcon types.PointerIcon `json:"pointerCssIcon"`
}

// EnableTextContentEditPayload is the payload of EnableTextContentEdit.
type EnableTextContentEditPayload struct {
	TextIDOfEditableContent types.AnnotationID `json:"textIdOfEditableContent"`
}

// NewSetAnnotation builds a SetAnnotation intent.
func NewSetAnnotation(p geometry.Patch) Intent {
	return newIntent(SetAnnotation, p)
}

// NewSelectAnnotation builds a SelectAnnotation intent.
func NewSelectAnnotation(id types.AnnotationID, multiple bool) Intent {
	return newIntent(SelectAnnotation, SelectAnnotationPayload{AnnotationID: id, Multiple: multiple})
}

// NewSelectTool builds a SelectTool intent.
func NewSelectTool(tool types.ToolID) Intent {
	return newIntent(SelectTool, SelectToolPayload{ToolID: tool})
}

// NewChangePointerIcon builds a ChangePointerIcon intent.
func NewChangePointerIcon(icon types.PointerIcon) Intent {
	return newIntent(ChangePointerIcon, ChangePointerIconPayload{PointerCSSIcon: icon})
}

// NewEnableTextContentEdit builds an EnableTextContentEdit intent.
func NewEnableTextContentEdit(id types.AnnotationID) Intent {
	return newIntent(EnableTextContentEdit, EnableTextContentEditPayload{TextIDOfEditableContent: id})
}

func newIntent(t Type, payload any) Intent {
	return Intent{Type: t, Payload: payload, Timestamp: time.Now()}
}

// AnnotationID returns the annotation the intent is about, or "" for
// intents that do not name one.
func (in Intent) AnnotationID() types.AnnotationID {
	switch p := in.Payload.(type) {
	case geometry.Patch:
		return p.ID
	case SelectAnnotationPayload:
		return p.AnnotationID
	case EnableTextContentEditPayload:
		return p.TextIDOfEditableContent
	default:
		return ""
	}
}

// Dispatcher accepts intents. Dispatch must not block for long; handlers
// call it synchronously while processing a pointer event.
type Dispatcher interface {
	Dispatch(in Intent)
}

// DispatchFunc adapts a function to the Dispatcher interface.
type DispatchFunc func(in Intent)

// Dispatch calls f(in).
func (f DispatchFunc) Dispatch(in Intent) {
	f(in)
}

// Discard is a Dispatcher that drops every intent.
var Discard Dispatcher = DispatchFunc(func(Intent) {})
