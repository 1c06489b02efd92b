package interaction

import (
	"github.com/dshills/annotate/pkg/domain/types"
	"github.com/dshills/annotate/pkg/geometry"
)

// EventName is the name under which a handler is attached to a rendered
// annotation node.
type EventName string

const (
	OnTransform    EventName = "onTransform"
	OnTransformEnd EventName = "onTransformEnd"
	OnMouseOver    EventName = "onMouseOver"
	OnMouseLeave   EventName = "onMouseLeave"
	OnDragEnd      EventName = "onDragEnd"
	OnClick        EventName = "onClick"
	OnTap          EventName = "onTap"
	OnDblClick     EventName = "onDblClick"
	OnDblTap       EventName = "onDblTap"
)

// EventNames lists every handler name of an active HandlerMap.
var EventNames = []EventName{
	OnTransform,
	OnTransformEnd,
	OnMouseOver,
	OnMouseLeave,
	OnDragEnd,
	OnClick,
	OnTap,
	OnDblClick,
	OnDblTap,
}

// Target is the rendered annotation node an event was fired on.
type Target interface {
	geometry.Shape
	Draggable() bool
	// SetAttrs writes the patch onto the node's live attributes. It is
	// the only write the controller performs on the rendering surface.
	SetAttrs(p geometry.Patch)
}

// Modifiers records which modifier keys were held during a click or tap.
type Modifiers struct {
	Ctrl  bool
	Shift bool
	Meta  bool
	Alt   bool
}

// Multiple reports whether the modifiers request an additive selection.
// Alt does not.
func (m Modifiers) Multiple() bool {
	return m.Ctrl || m.Shift || m.Meta
}

// Event is a pointer or shape event as delivered by the rendering surface.
// Handlers read it and never modify it.
type Event struct {
	Target    Target
	Modifiers Modifiers
}

// target returns the event target, or a zero-valued node when the surface
// delivered none. Malformed events flow through as zero values.
func (e Event) target() Target {
	if e.Target == nil {
		return zeroTarget{}
	}
	return e.Target
}

// Handler processes one event.
type Handler func(Event)

type zeroTarget struct{}

func (zeroTarget) ID() types.AnnotationID  { return "" }
func (zeroTarget) Name() types.ToolID      { return "" }
func (zeroTarget) X() float64              { return 0 }
func (zeroTarget) Y() float64              { return 0 }
func (zeroTarget) Rotation() float64       { return 0 }
func (zeroTarget) ScaleX() float64         { return 0 }
func (zeroTarget) ScaleY() float64         { return 0 }
func (zeroTarget) Width() float64          { return 0 }
func (zeroTarget) Height() float64         { return 0 }
func (zeroTarget) Draggable() bool         { return false }
func (zeroTarget) SetAttrs(geometry.Patch) {}
