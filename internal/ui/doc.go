// Package ui provides the visual components of the decoy TUI.
//
// # Layout
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header: persona summary, session ID                 │
//	├─────────────────┬───────────────────────────────────┤
//	│                 │                                   │
//	│   Intel         │         Chat transcript           │
//	│   (1/3 width)   │         (2/3 width)               │
//	│                 ├───────────────────────────────────┤
//	│                 │         Message input             │
//	├─────────────────┴───────────────────────────────────┤
//	│ Footer: Status, key bindings or flash               │
//	└─────────────────────────────────────────────────────┘
//
// # Components
//
// ViewContext is a singleton holding the layout math. All size
// calculations go through it.
//
// Intel shows the newest applied turn: detected flag, raw risk score
// with a short highlight pulse, the confidence bar and label, the
// extracted record highlighted with chroma, the agent reply and the
// running counters.
//
// Chat renders the transcript in a viewport above a textarea. While
// any message is being analyzed it shows an animated typing indicator.
//
// Footer always leads with "Status: <text>". Flash messages replace the
// key bindings until they expire.
//
// # Theming
//
// Colors come from the active Theme. SetTheme regenerates every style
// variable, so components read styles at render time.
package ui
