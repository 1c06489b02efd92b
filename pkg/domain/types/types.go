// Package types defines the identifiers shared by the annotation
// interaction packages: annotation and tool IDs, editor tabs and pointer
// icons.
package types

// AnnotationID is a unique identifier for an annotation on the canvas.
type AnnotationID string

// String returns the string representation of an AnnotationID.
func (id AnnotationID) String() string {
	return string(id)
}

// IsZero returns true if the AnnotationID is the zero value.
func (id AnnotationID) IsZero() bool {
	return id == ""
}

// ToolID identifies an annotation tool. A rendered annotation carries the
// ID of the tool that drew it as its shape name, so ToolID doubles as the
// annotation kind.
type ToolID string

const (
	ToolText    ToolID = "Text"
	ToolRect    ToolID = "Rect"
	ToolEllipse ToolID = "Ellipse"
	ToolPolygon ToolID = "Polygon"
	ToolLine    ToolID = "Line"
	ToolArrow   ToolID = "Arrow"
	ToolPen     ToolID = "Pen"
	ToolImage   ToolID = "Image"
)

// String returns the string representation of a ToolID.
func (id ToolID) String() string {
	return string(id)
}

// TabID identifies an editor tab.
type TabID string

const (
	TabAdjust    TabID = "Adjust"
	TabFinetune  TabID = "Finetune"
	TabFilters   TabID = "Filters"
	TabWatermark TabID = "Watermark"
	TabAnnotate  TabID = "Annotate"
	TabResize    TabID = "Resize"
)

// PointerIcon is a CSS cursor name requested for the canvas pointer.
type PointerIcon string

const (
	PointerDefault PointerIcon = "default"
	PointerDraw    PointerIcon = "crosshair"
	PointerMove    PointerIcon = "move"
	PointerSelect  PointerIcon = "pointer"
)

// String returns the string representation of a PointerIcon.
func (p PointerIcon) String() string {
	return string(p)
}
