package ui

import "time"

// Layout constants for panel sizing
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// IntelWidthRatio is the denominator for the intel panel width (1/3 of total width)
	IntelWidthRatio = 3

	// TextareaHeight is the number of lines for the message input
	TextareaHeight = 3

	// TextareaBorderHeight is the border size around the textarea
	TextareaBorderHeight = 2

	// InputPaddingWidth is the horizontal padding inside the input area (Padding(0, 1))
	InputPaddingWidth = 2

	// InputTotalHeight is the total height of the input area (textarea + borders)
	InputTotalHeight = TextareaHeight + TextareaBorderHeight

	// DefaultWrapWidth is used when the viewport width is still unknown
	DefaultWrapWidth = 80

	MinTerminalWidth  = 60
	MinTerminalHeight = 16
)

// Animation timing
const (
	// TypingTickInterval drives the typing indicator spinner
	TypingTickInterval = 200 * time.Millisecond

	// PulseTickInterval drives the score highlight after a turn is applied
	PulseTickInterval = 120 * time.Millisecond

	// PulseFrames is how many ticks the score stays highlighted
	PulseFrames = 6
)
