// Package surface adapts serialized canvas nodes and pointer events to the
// interaction package. Nodes use the layout canvas libraries produce when
// serializing a shape:
//
//	{"className": "Text", "attrs": {"id": "a1", "name": "Text", "x": 10, ...}}
//
// Attributes absent from the document read as the canvas defaults: zero
// for position, rotation and size, one for scale, false for draggable.
package surface

import (
	"errors"
	"fmt"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/annotate/pkg/domain/types"
	"github.com/dshills/annotate/pkg/geometry"
)

// ErrInvalidNode is returned when a node document is not a JSON object.
var ErrInvalidNode = errors.New("invalid node document")

// Node is a serialized canvas node. It implements interaction.Target.
type Node struct {
	mu  sync.RWMutex
	doc string
}

// ParseNode wraps a JSON node document.
func ParseNode(data []byte) (*Node, error) {
	if !gjson.ValidBytes(data) || !gjson.ParseBytes(data).IsObject() {
		return nil, ErrInvalidNode
	}
	return &Node{doc: string(data)}, nil
}

// JSON returns the current node document.
func (n *Node) JSON() string {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return n.doc
}

func (n *Node) attr(name string) gjson.Result {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return gjson.Get(n.doc, "attrs."+name)
}

func (n *Node) number(name string, def float64) float64 {
	r := n.attr(name)
	if r.Type != gjson.Number {
		return def
	}
	return r.Num
}

func (n *Node) ID() types.AnnotationID { return types.AnnotationID(n.attr("id").String()) }
func (n *Node) Name() types.ToolID     { return types.ToolID(n.attr("name").String()) }
func (n *Node) X() float64             { return n.number("x", 0) }
func (n *Node) Y() float64             { return n.number("y", 0) }
func (n *Node) Rotation() float64      { return n.number("rotation", 0) }
func (n *Node) ScaleX() float64        { return n.number("scaleX", 1) }
func (n *Node) ScaleY() float64        { return n.number("scaleY", 1) }
func (n *Node) Width() float64         { return n.number("width", 0) }
func (n *Node) Height() float64        { return n.number("height", 0) }
func (n *Node) Draggable() bool        { return n.attr("draggable").Bool() }

// Apply writes the patch fields onto the node's attributes.
func (n *Node) Apply(p geometry.Patch) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	sets := []struct {
		path  string
		value *float64
	}{
		{"attrs.x", &p.X},
		{"attrs.y", &p.Y},
		{"attrs.rotation", p.Rotation},
		{"attrs.scaleX", p.ScaleX},
		{"attrs.scaleY", p.ScaleY},
		{"attrs.width", p.Width},
		{"attrs.height", p.Height},
	}

	doc := n.doc
	for _, s := range sets {
		if s.value == nil {
			continue
		}
		next, err := sjson.Set(doc, s.path, *s.value)
		if err != nil {
			return fmt.Errorf("setting %s: %w", s.path, err)
		}
		doc = next
	}

	n.doc = doc
	return nil
}

// SetAttrs applies p. Apply fails only on malformed paths, and the paths it
// writes are the constant attrs.* keys.
func (n *Node) SetAttrs(p geometry.Patch) {
	_ = n.Apply(p)
}
