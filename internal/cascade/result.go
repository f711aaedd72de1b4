package cascade

// Source tags which cascade branch produced a prompt. Callers use it to
// decide whether a result is cacheable, not to alter semantics.
type Source string

const (
	// SourcePromptJSON marks a prompt built from an upstream ready-made
	// instruction.
	SourcePromptJSON Source = "promptJson"
	// SourcePreset marks a prompt built from an explicitly selected preset.
	SourcePreset Source = "preset"
	// SourceDefault marks a prompt assembled from category defaults with
	// no preset selected. Historically this shared the "preset" tag; the
	// distinct tag disambiguates the two deterministic branches.
	SourceDefault Source = "default"
	// SourceAuto marks a prompt personalized by vision analysis.
	SourceAuto Source = "auto"
	// SourceCustom and SourceFallback are reserved for callers that wrap
	// the cascade with their own strategies.
	SourceCustom   Source = "custom"
	SourceFallback Source = "fallback"
)

// PromptJSON is the upstream structured instruction an earlier pipeline
// stage may hand down. A non-empty FullPrompt short-circuits the cascade.
type PromptJSON struct {
	FullPrompt string         `json:"full_prompt"`
	Fields     map[string]any `json:"fields,omitempty"`
}

// BuildResult is the output of one assembly pass.
type BuildResult struct {
	// Prompt is passed verbatim as the instruction payload to the
	// generation API.
	Prompt string
	// Source reflects the branch that produced Prompt.
	Source Source
	// AnalysisResult carries the parsed vision-analysis object; present
	// only when Source is SourceAuto.
	AnalysisResult map[string]any
	// RequestID correlates this build with logs and analysis records.
	RequestID string
}
