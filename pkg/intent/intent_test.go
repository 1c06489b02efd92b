package intent

import (
	"encoding/json"
	"testing"

	"github.com/dshills/annotate/pkg/domain/types"
	"github.com/dshills/annotate/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		intent Intent
		typ    Type
		id     types.AnnotationID
		json   string
	}{
		{
			name:   "set annotation",
			intent: NewSetAnnotation(geometry.Patch{ID: "a1", X: 1, Y: 2}),
			typ:    SetAnnotation,
			id:     "a1",
			json:   `{"id":"a1","x":1,"y":2}`,
		},
		{
			name:   "select annotation",
			intent: NewSelectAnnotation("a2", true),
			typ:    SelectAnnotation,
			id:     "a2",
			json:   `{"annotationId":"a2","multiple":true}`,
		},
		{
			name:   "select tool",
			intent: NewSelectTool(types.ToolRect),
			typ:    SelectTool,
			json:   `{"toolId":"Rect"}`,
		},
		{
			name:   "change pointer icon",
			intent: NewChangePointerIcon(types.PointerMove),
			typ:    ChangePointerIcon,
			json:   `{"pointerCssIcon":"move"}`,
		},
		{
			name:   "enable text edit",
			intent: NewEnableTextContentEdit("t1"),
			typ:    EnableTextContentEdit,
			id:     "t1",
			json:   `{"textIdOfEditableContent":"t1"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.typ, tt.intent.Type)
			assert.Equal(t, tt.id, tt.intent.AnnotationID())
			assert.False(t, tt.intent.Timestamp.IsZero())

			data, err := json.Marshal(tt.intent.Payload)
			require.NoError(t, err)
			assert.JSONEq(t, tt.json, string(data))
		})
	}
}

func TestDispatchFunc(t *testing.T) {
	var got []Type
	d := DispatchFunc(func(in Intent) { got = append(got, in.Type) })

	d.Dispatch(NewSelectTool(types.ToolPen))
	Discard.Dispatch(NewSelectTool(types.ToolPen))

	assert.Equal(t, []Type{SelectTool}, got)
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	r.Dispatch(NewSelectAnnotation("a1", false))
	r.Dispatch(NewSelectTool(types.ToolText))
	r.Dispatch(NewSelectAnnotation("a2", false))

	assert.Equal(t, 3, r.Len())
	var kinds []Type
	for _, in := range r.Intents() {
		kinds = append(kinds, in.Type)
	}
	assert.Equal(t, []Type{SelectAnnotation, SelectTool, SelectAnnotation}, kinds)

	snapshot := r.Intents()
	r.Dispatch(NewSelectTool(types.ToolRect))
	assert.Len(t, snapshot, 3)
	assert.Equal(t, 4, r.Len())
}
