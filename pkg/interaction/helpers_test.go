package interaction

import (
	"time"

	"github.com/benbjohnson/clock"
	"github.com/dshills/annotate/pkg/domain/types"
	"github.com/dshills/annotate/pkg/geometry"
	"github.com/dshills/annotate/pkg/intent"
)

// node is an in-memory Target that records live attribute writes.
type node struct {
	id             types.AnnotationID
	name           types.ToolID
	x, y, rotation float64
	scaleX, scaleY float64
	width, height  float64
	draggable      bool
	setAttrs       []geometry.Patch
}

func (n *node) ID() types.AnnotationID { return n.id }
func (n *node) Name() types.ToolID     { return n.name }
func (n *node) X() float64             { return n.x }
func (n *node) Y() float64             { return n.y }
func (n *node) Rotation() float64      { return n.rotation }
func (n *node) ScaleX() float64        { return n.scaleX }
func (n *node) ScaleY() float64        { return n.scaleY }
func (n *node) Width() float64         { return n.width }
func (n *node) Height() float64        { return n.height }
func (n *node) Draggable() bool        { return n.draggable }

func (n *node) SetAttrs(p geometry.Patch) {
	n.setAttrs = append(n.setAttrs, p)
	n.x, n.y = p.X, p.Y
	if p.Width != nil {
		n.width = *p.Width
	}
	if p.Height != nil {
		n.height = *p.Height
	}
	if p.ScaleX != nil {
		n.scaleX = *p.ScaleX
	}
	if p.ScaleY != nil {
		n.scaleY = *p.ScaleY
	}
}

func textNode(id types.AnnotationID) *node {
	return &node{id: id, name: types.ToolText, x: 10, y: 20, rotation: 15,
		scaleX: 2, scaleY: 3, width: 100, height: 40, draggable: true}
}

func rectNode(id types.AnnotationID) *node {
	return &node{id: id, name: types.ToolRect, x: 1, y: 2, rotation: 30,
		scaleX: 1.5, scaleY: 0.5, width: 50, height: 60, draggable: true}
}

// newTestController returns an active controller on a mock clock.
func newTestController(opts ...Option) (*Controller, *intent.Recorder, *clock.Mock) {
	rec := intent.NewRecorder()
	mock := clock.NewMock()
	ctrl := New(rec, append([]Option{WithClock(mock)}, opts...)...)
	ctrl.SetTab(types.TabAnnotate)
	return ctrl, rec, mock
}

func ofType(rec *intent.Recorder, typ intent.Type) []intent.Intent {
	var out []intent.Intent
	for _, in := range rec.Intents() {
		if in.Type == typ {
			out = append(out, in)
		}
	}
	return out
}

func pointerIcons(rec *intent.Recorder) []types.PointerIcon {
	var icons []types.PointerIcon
	for _, in := range ofType(rec, intent.ChangePointerIcon) {
		icons = append(icons, in.Payload.(intent.ChangePointerIconPayload).PointerCSSIcon)
	}
	return icons
}

const waitFor = time.Second
