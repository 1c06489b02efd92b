package interaction

import (
	"io"
	"log/slog"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/dshills/annotate/pkg/domain/types"
)

// DefaultQuietInterval is the pointer icon debounce interval.
const DefaultQuietInterval = 5 * time.Millisecond

type options struct {
	logger        *slog.Logger
	clock         clock.Clock
	quietInterval time.Duration
	icons         Icons
	textKind      types.ToolID
	annotateTab   types.TabID
	leaveCursor   LeaveCursor
}

func defaultOptions() options {
	return options{
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		clock:         clock.New(),
		quietInterval: DefaultQuietInterval,
		icons:         DefaultIcons(),
		textKind:      types.ToolText,
		annotateTab:   types.TabAnnotate,
		leaveCursor:   LeaveHover,
	}
}

// Option configures a Controller.
type Option func(*options)

// WithLogger sets the logger handlers trace classified events to.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithClock sets the clock driving the pointer icon debouncer.
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithQuietInterval sets the pointer icon debounce interval.
func WithQuietInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.quietInterval = d
		}
	}
}

// WithIcons sets the CSS cursor names.
func WithIcons(icons Icons) Option {
	return func(o *options) {
		o.icons = icons
	}
}

// WithTextKind sets the annotation kind treated as text.
func WithTextKind(kind types.ToolID) Option {
	return func(o *options) {
		if kind != "" {
			o.textKind = kind
		}
	}
}

// WithAnnotateTab sets the tab that activates the controller.
func WithAnnotateTab(tab types.TabID) Option {
	return func(o *options) {
		if tab != "" {
			o.annotateTab = tab
		}
	}
}

// WithLeaveCursor sets the cursor requested on mouse leave.
func WithLeaveCursor(lc LeaveCursor) Option {
	return func(o *options) {
		if lc != "" {
			o.leaveCursor = lc
		}
	}
}
