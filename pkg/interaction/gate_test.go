package interaction

import (
	"testing"

	"github.com/dshills/annotate/pkg/domain/types"
	"github.com/stretchr/testify/assert"
)

func TestGate_Update(t *testing.T) {
	g := NewGate(types.TabAnnotate)
	assert.Equal(t, ModeInactive, g.Mode())

	steps := []struct {
		tab     types.TabID
		mode    Mode
		changed bool
	}{
		{types.TabAdjust, ModeInactive, false},
		{types.TabAnnotate, ModeActive, true},
		{types.TabAnnotate, ModeActive, false},
		{types.TabFilters, ModeInactive, true},
		{types.TabResize, ModeInactive, false},
		{"", ModeInactive, false},
		{types.TabAnnotate, ModeActive, true},
	}

	for _, step := range steps {
		mode, changed := g.Update(step.tab)
		assert.Equal(t, step.mode, mode, "tab %q", step.tab)
		assert.Equal(t, step.changed, changed, "tab %q", step.tab)
	}
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "active", ModeActive.String())
	assert.Equal(t, "inactive", ModeInactive.String())
}
