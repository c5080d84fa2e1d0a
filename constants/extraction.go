package constants

// Method identifies which strategy produced a booking record.
type Method string

// Stable values (these exact strings appear in rendered invoices and logs).
const (
	MethodOpenRouter Method = "openrouter"       // primary semantic extractor
	MethodGemini     Method = "gemini"           // secondary semantic extractor
	MethodPattern    Method = "pattern_matching" // always-available fallback
)

func (m Method) String() string { return string(m) }
