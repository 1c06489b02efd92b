package interaction

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/dshills/annotate/pkg/domain/types"
	"github.com/dshills/annotate/pkg/intent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_SetTab(t *testing.T) {
	ctrl := New(intent.Discard)
	defer ctrl.Close()

	assert.Equal(t, ModeInactive, ctrl.Mode())
	assert.Equal(t, ModeActive, ctrl.SetTab(types.TabAnnotate))
	assert.Equal(t, ModeActive, ctrl.Mode())
	assert.Equal(t, ModeInactive, ctrl.SetTab(types.TabWatermark))
}

func TestController_CustomAnnotateTab(t *testing.T) {
	ctrl := New(intent.Discard, WithAnnotateTab("Markup"))
	defer ctrl.Close()

	assert.Equal(t, ModeInactive, ctrl.SetTab(types.TabAnnotate))
	assert.Equal(t, ModeActive, ctrl.SetTab("Markup"))
}

func TestController_HoverBurstCoalesces(t *testing.T) {
	ctrl, rec, mock := newTestController()
	defer ctrl.Close()

	fixed := rectNode("r2")
	fixed.draggable = false

	// Fast pointer movement across two annotations.
	for i := 0; i < 10; i++ {
		ctrl.Handle(OnMouseOver, Event{Target: rectNode("r1")})
		mock.Add(time.Millisecond)
	}
	ctrl.Handle(OnMouseOver, Event{Target: fixed})
	assert.Equal(t, 0, rec.Len())

	mock.Add(DefaultQuietInterval)
	require.Eventually(t, func() bool { return rec.Len() == 1 }, waitFor, time.Millisecond)
	assert.Equal(t, []types.PointerIcon{types.PointerSelect}, pointerIcons(rec))
}

func TestController_EnterDrawMode(t *testing.T) {
	ctrl, rec, _ := newTestController()
	defer ctrl.Close()

	ctrl.Handle(OnMouseOver, Event{Target: rectNode("r1")})
	ctrl.EnterDrawMode()
	require.True(t, ctrl.Flush())

	assert.Equal(t, []types.PointerIcon{types.PointerDraw}, pointerIcons(rec))
}

func TestController_CustomIconsAndInterval(t *testing.T) {
	icons := Icons{Move: "grab", Select: "default", Draw: "cell"}
	ctrl, rec, mock := newTestController(WithIcons(icons), WithQuietInterval(20*time.Millisecond))
	defer ctrl.Close()

	ctrl.Handle(OnMouseOver, Event{Target: rectNode("r1")})
	mock.Add(DefaultQuietInterval)
	assert.Never(t, func() bool { return rec.Len() > 0 }, 20*time.Millisecond, 5*time.Millisecond)

	mock.Add(20 * time.Millisecond)
	require.Eventually(t, func() bool { return rec.Len() == 1 }, waitFor, time.Millisecond)
	assert.Equal(t, []types.PointerIcon{"grab"}, pointerIcons(rec))
}

func TestController_LogsBoundEvents(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctrl := New(intent.Discard, WithLogger(logger))
	defer ctrl.Close()

	ctrl.SetTab(types.TabAnnotate)
	assert.Contains(t, buf.String(), "interaction gate")
	assert.Contains(t, buf.String(), string(OnClick))
	assert.Contains(t, buf.String(), string(OnMouseLeave))

	buf.Reset()
	ctrl.SetTab(types.TabWatermark)
	assert.Contains(t, buf.String(), "events=[]")
}

func TestController_BusDispatcher(t *testing.T) {
	bus := intent.NewBus()
	defer bus.Close()
	ch := bus.Subscribe()

	ctrl := New(bus)
	defer ctrl.Close()
	ctrl.SetTab(types.TabAnnotate)

	ctrl.Handle(OnDblTap, Event{Target: textNode("t9")})
	ctrl.Handle(OnClick, Event{Target: textNode("t9")})

	var edits []intent.Intent
	for len(ch) > 0 {
		if in := <-ch; in.Type == intent.EnableTextContentEdit {
			edits = append(edits, in)
		}
	}
	require.Len(t, edits, 1)
	assert.Equal(t, types.AnnotationID("t9"), edits[0].AnnotationID())
}
