// Package ui provides constants for layout calculations and configuration.
package ui

// Layout constants for panel sizing
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// ListWidthRatio is the denominator for list width (1/3 of total width)
	ListWidthRatio = 3

	// TitleHeight is the height of panel titles
	TitleHeight = 1

	// MinTerminalWidth is the smallest width the layout math tolerates
	MinTerminalWidth = 40

	// MinTerminalHeight is the smallest height the layout math tolerates
	MinTerminalHeight = 10
)

// Preview capture limits
const (
	// PreviewHistoryLines is how many lines of scrollback to request when
	// capturing a session's pane for the preview panel
	PreviewHistoryLines = 200
)

// Modal dimensions
const (
	// ModalWidth is the default width of modals
	ModalWidth = 60

	// ModalInputCharLimit is the character limit for modal text inputs
	ModalInputCharLimit = 256

	// ModalInputWidth is the width of modal text inputs
	ModalInputWidth = 50

	// NoteInputHeight is the textarea height for session notes
	NoteInputHeight = 3
)
