// Package geometry computes annotation geometry patches from the shape a
// transform or drag event was fired on.
package geometry

import "github.com/dshills/annotate/pkg/domain/types"

// Shape is the read side of a rendered annotation node. Implementations
// report the node's current attributes; missing attributes read as the
// rendering surface's defaults.
type Shape interface {
	ID() types.AnnotationID
	// Name is the kind of the annotation, i.e. the tool that drew it.
	Name() types.ToolID
	X() float64
	Y() float64
	Rotation() float64
	ScaleX() float64
	ScaleY() float64
	Width() float64
	Height() float64
}

// Patch is a partial update of an annotation's geometry. X and Y are always
// present; the remaining fields are nil when the patch does not touch them.
type Patch struct {
	ID       types.AnnotationID `json:"id"`
	X        float64            `json:"x"`
	Y        float64            `json:"y"`
	Rotation *float64           `json:"rotation,omitempty"`
	ScaleX   *float64           `json:"scaleX,omitempty"`
	ScaleY   *float64           `json:"scaleY,omitempty"`
	Width    *float64           `json:"width,omitempty"`
	Height   *float64           `json:"height,omitempty"`
}

// Float returns a pointer to v, for building patches.
func Float(v float64) *float64 {
	return &v
}

// Extractor builds transform patches. TextKind names the annotation kind
// whose scale is folded into width and height.
type Extractor struct {
	TextKind types.ToolID
}

// Extract returns the transform patch for s.
//
// Text annotations keep a unit scale at rest: the transformer's scale is
// multiplied into width and height and scaleX/scaleY are reset to 1, so
// glyphs are re-laid out instead of stretched. Every other kind keeps its
// scale factors as reported.
func (e Extractor) Extract(s Shape) Patch {
	p := Patch{
		ID:       s.ID(),
		X:        s.X(),
		Y:        s.Y(),
		Rotation: Float(s.Rotation()),
	}

	if e.IsText(s) {
		p.Width = Float(s.Width() * s.ScaleX())
		p.Height = Float(s.Height() * s.ScaleY())
		p.ScaleX = Float(1)
		p.ScaleY = Float(1)
		return p
	}

	p.ScaleX = Float(s.ScaleX())
	p.ScaleY = Float(s.ScaleY())
	return p
}

// IsText reports whether s is of the extractor's text kind.
func (e Extractor) IsText(s Shape) bool {
	return s.Name() == e.TextKind
}

// Position returns the drag patch for s: id and position only.
func Position(s Shape) Patch {
	return Patch{
		ID: s.ID(),
		X:  s.X(),
		Y:  s.Y(),
	}
}
