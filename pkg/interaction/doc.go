// Package interaction turns pointer and shape events fired on rendered
// annotations into intents for the application store.
//
// # Controllers
//
// Each concern is a small controller with its dispatcher injected:
//
//   - CursorFeedback requests pointer icons through a trailing debouncer.
//   - Selection handles click and tap.
//   - Transform handles live transforms, transform end and drag end.
//   - TextEdit handles double-click and double-tap on text annotations.
//
// # Gating
//
// A Controller is active only while the annotate tab is open. Handlers
// returns an empty HandlerMap while inactive and a full one while active.
// The map is rebuilt on mode transitions only, so a caller may compare
// maps by identity to decide whether listeners need re-attaching.
//
// # Usage
//
//	ctrl := interaction.New(store, interaction.WithLogger(logger))
//	defer ctrl.Close()
//
//	ctrl.SetTab(types.TabAnnotate)
//	for name, handler := range ctrl.Handlers() {
//	    node.On(name, handler)
//	}
//
// # Thread Safety
//
// Handlers run on the caller's goroutine. Pointer icon intents are
// dispatched from the debouncer's timer goroutine, so the Dispatcher must
// be safe for concurrent use.
package interaction
