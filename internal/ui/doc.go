// Package ui provides the user interface components for the Loom TUI.
//
// # Overview
//
// The ui package implements the visual components of Loom using the Bubble Tea
// framework and Lipgloss styling library. It follows the Model-Update-View pattern
// established by Bubble Tea.
//
// # Layout System
//
// The layout is organized as follows:
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header (1 line)                                     │
//	├─────────────────┬───────────────────────────────────┤
//	│                 │                                   │
//	│   Session List  │         Preview Panel             │
//	│   (1/3 width)   │         (2/3 width)               │
//	│                 │                                   │
//	├─────────────────┴───────────────────────────────────┤
//	│ Footer (1 line)                                     │
//	└─────────────────────────────────────────────────────┘
//
// # Components
//
// ViewContext: Singleton that manages centralized layout calculations.
// All size calculations should go through ViewContext to ensure consistency.
//
// Header: Displays the application title and the selected session name.
// Uses a gradient background with the primary color.
//
// Footer: Shows context-aware keyboard shortcuts, and flash messages when
// an operation succeeds or fails. The displayed shortcuts change based on
// focus state and whether a session is selected.
//
// List: The session list panel. Each row shows the session's theme swatch,
// name, window count, and an attached marker. Supports keyboard navigation
// (j/k or arrow keys) and scrolls when the list outgrows the panel.
//
// Preview: The right-hand panel showing a capture of the selected session's
// active pane. Includes a viewport for scrolling and mouse text selection
// with copy-to-clipboard.
//
// Modal: Popup dialogs for the various operations: creating, renaming,
// annotating, re-theming, and killing sessions, managing project folders,
// and editing preferences.
//
// # Focus System
//
// The application has two focus states:
//   - FocusList: the session list is focused, keyboard controls navigation
//   - FocusPreview: the preview panel is focused, keyboard scrolls the capture
//
// Tab toggles between focus states. The 'q' key quits from either panel
// because no panel accepts free-form typing outside of modals.
//
// # Styles
//
// All styles are defined in styles.go using Lipgloss. The color palette uses:
//   - ColorPrimary (#7C3AED): Purple, used for highlights and focused elements
//   - ColorSecondary (#06B6D4): Cyan, used for key hints and accents
//   - ColorBg (#1F2937): Dark background
//   - ColorText (#F9FAFB): Light text
//   - ColorTextMuted (#B0B8C4): Muted text for secondary content
package ui
