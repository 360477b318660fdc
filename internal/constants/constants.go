package constants

// Boolean string values
const (
	BoolTrue  = "true"
	BoolFalse = "false"
	BoolYes   = "yes"
	BoolNo    = "no"
	BoolOne   = "1"
	BoolZero  = "0"
)

// Magic numbers for various operations
const (
	// Display limits
	DefaultSearchLimit = 10
	DefaultListLimit   = 20

	// Text truncation lengths
	PreviewLength       = 100
	SearchPreviewLength = 150
	ShortPreviewLength  = 80

	// Canvas defaults
	DefaultGridSize   = 20
	DefaultCardWidth  = 200
	DefaultCardHeight = 120
)

// File permissions
const (
	ConfigFileMode = 0600 // Secure file permissions for config
)
