package gemini

const (
	// DefaultBaseURL is the default Gemini API endpoint
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// DefaultModel is the default model to use
	DefaultModel = "gemini-2.5-flash"
)
