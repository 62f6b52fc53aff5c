package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the width below which the detail pane is hidden.
	LayoutCompactWidth = 90

	// LayoutExtraWideWidth is the width from which the list pane narrows.
	LayoutExtraWideWidth = 160
)

// Timing constants.
const (
	// NoticeTimeout is how long a notice stays before clearing itself.
	NoticeTimeout = 4 * time.Second
)

// chromeHeight is the header, command bar, and notice line.
const chromeHeight = 3
