package preview

// Keys holds the keyboard shortcuts of the preview
type Keys struct {
	// Navigation
	Up         string // Scroll up one line
	Down       string // Scroll down one line
	PageUp     string // Scroll up one page
	PageDown   string // Scroll down one page
	JumpTop    string // Jump to top
	JumpBottom string // Jump to bottom

	// Display
	Descriptions string // Toggle field descriptions
	Diagnostics  string // Toggle the diagnostics panel

	// Global
	Quit string // Quit preview
	Back string // Quit preview
}

// DefaultKeys returns the default vim-style keyboard configuration
func DefaultKeys() *Keys {
	return &Keys{
		Up:         "k",
		Down:       "j",
		PageUp:     "ctrl+b",
		PageDown:   "ctrl+f",
		JumpTop:    "g",
		JumpBottom: "G",

		Descriptions: "d",
		Diagnostics:  "w",

		Quit: "ctrl+c",
		Back: "q",
	}
}
