package surface

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/dshills/annotate/pkg/interaction"
)

var (
	// ErrInvalidEvent is returned when an event document is not a JSON object.
	ErrInvalidEvent = errors.New("invalid event document")
	// ErrUnknownEventType is returned for event types with no handler.
	ErrUnknownEventType = errors.New("unknown event type")
)

// eventTypes maps canvas event type names to handler names.
var eventTypes = map[string]interaction.EventName{
	"transform":    interaction.OnTransform,
	"transformend": interaction.OnTransformEnd,
	"mouseover":    interaction.OnMouseOver,
	"mouseleave":   interaction.OnMouseLeave,
	"dragend":      interaction.OnDragEnd,
	"click":        interaction.OnClick,
	"tap":          interaction.OnTap,
	"dblclick":     interaction.OnDblClick,
	"dbltap":       interaction.OnDblTap,
}

// EventNameFor resolves a canvas event type ("dragend") or a handler name
// ("onDragEnd") to a handler name. Matching is case-insensitive.
func EventNameFor(typ string) (interaction.EventName, error) {
	key := strings.ToLower(strings.TrimSpace(typ))
	key = strings.TrimPrefix(key, "on")
	if name, ok := eventTypes[key]; ok {
		return name, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEventType, typ)
}

// ParsedEvent is a decoded event document.
type ParsedEvent struct {
	Name  interaction.EventName
	Event interaction.Event
	// Node is the event target, or nil when the document has none.
	Node *Node
}

// ParseEvent decodes an event document:
//
//	{
//	  "type": "click",
//	  "target": {"className": "Rect", "attrs": {...}},
//	  "evt": {"ctrlKey": false, "shiftKey": true, "metaKey": false}
//	}
//
// A missing target or evt yields a zero-valued event part.
func ParseEvent(data []byte) (*ParsedEvent, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidEvent
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, ErrInvalidEvent
	}

	name, err := EventNameFor(doc.Get("type").String())
	if err != nil {
		return nil, err
	}

	parsed := &ParsedEvent{Name: name}

	if target := doc.Get("target"); target.Exists() {
		node, err := ParseNode([]byte(target.Raw))
		if err != nil {
			return nil, fmt.Errorf("event %s: %w", name, err)
		}
		parsed.Node = node
		parsed.Event.Target = node
	}

	evt := doc.Get("evt")
	parsed.Event.Modifiers = interaction.Modifiers{
		Ctrl:  evt.Get("ctrlKey").Bool(),
		Shift: evt.Get("shiftKey").Bool(),
		Meta:  evt.Get("metaKey").Bool(),
		Alt:   evt.Get("altKey").Bool(),
	}

	return parsed, nil
}
