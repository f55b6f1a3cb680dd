package cli

// Default values for CLI output.
const (
	// TabWidth is the width of tabs in formatted output.
	TabWidth = 2
	// JSONIndent is the indentation used for json output.
	JSONIndent = "  "
	// YAMLIndent is the indentation used for yaml output.
	YAMLIndent = 2
)
