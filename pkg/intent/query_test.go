package intent

import (
	"testing"

	"github.com/dshills/annotate/pkg/domain/types"
	"github.com/dshills/annotate/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileQuery_Invalid(t *testing.T) {
	tests := []string{
		"action ==",
		`"not a bool"`,
		"unknown_var == 1",
	}

	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			_, err := CompileQuery(src)
			assert.ErrorIs(t, err, ErrInvalidQuery)
		})
	}
}

func TestQuery_Match(t *testing.T) {
	patch := NewSetAnnotation(geometry.Patch{ID: "r1", X: 150, Y: 10})

	tests := []struct {
		name   string
		source string
		intent Intent
		want   bool
	}{
		{"type equality", `action == "SET_ANNOTATION"`, patch, true},
		{"type inequality", `action == "SELECT_TOOL"`, patch, false},
		{"annotation id", `annotation_id == "r1"`, patch, true},
		{"payload field", `action == "SET_ANNOTATION" && payload.x > 100`, patch, true},
		{"multi-select", `payload.multiple == true`, NewSelectAnnotation("a1", true), true},
		{"single select", `payload.multiple == true`, NewSelectAnnotation("a1", false), false},
		{"pointer icon", `payload.pointerCssIcon == "move"`, NewChangePointerIcon(types.PointerMove), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := CompileQuery(tt.source)
			require.NoError(t, err)
			assert.Equal(t, tt.source, q.String())

			got, err := q.Match(tt.intent)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQuery_Select(t *testing.T) {
	q, err := CompileQuery(`action != "CHANGE_POINTER_ICON"`)
	require.NoError(t, err)

	got, err := q.Select([]Intent{
		NewSelectAnnotation("a1", false),
		NewChangePointerIcon(types.PointerSelect),
		NewSelectTool(types.ToolRect),
	})
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, SelectAnnotation, got[0].Type)
	assert.Equal(t, SelectTool, got[1].Type)
}
