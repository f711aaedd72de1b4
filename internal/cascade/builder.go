// Package cascade decides, per generation request, which of three
// instruction-construction strategies to run: reuse an upstream ready-made
// instruction, apply a named preset, or assemble category defaults. An
// asynchronous variant adds a vision-analysis branch that degrades to the
// default assembly on any failure.
//
// Category packages implement the four Hooks and nothing else; the cascade
// owns branch selection and never inspects category-specific fields.
package cascade

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/artfoundry/easel/internal/assembler"
	"github.com/artfoundry/easel/internal/jsonx"
	"github.com/artfoundry/easel/internal/presets"
)

// AnalyzeFunc is the caller-supplied vision-analysis contract: given
// reference images and an analysis instruction, return raw model text.
// The cascade applies no timeout and no retries; cancellation and
// transport policy belong to the implementation behind the function.
type AnalyzeFunc func(ctx context.Context, images []string, instruction string) (string, error)

// Hooks are the category-specific extension points. Every hook returns the
// final instruction string, typically by mutating the shared assembler and
// rendering it.
type Hooks interface {
	// FromPromptJSON appends technical blocks around the upstream
	// instruction. It must not discard the upstream creative content.
	FromPromptJSON(up *PromptJSON) string

	// FromPreset resolves the preset id against the category's registry
	// and adds its blocks. A missing id falls back to default assembly
	// inside the hook.
	FromPreset(presetID string) string

	// FromAnalysis personalizes the prompt from a parsed vision-analysis
	// object.
	FromAnalysis(parsed map[string]any) string

	// AnalysisPrompt returns the instruction sent to the vision model.
	AnalysisPrompt() string
}

// Config assembles a Builder. Assembler and Hooks are required.
type Config struct {
	Assembler *assembler.Assembler
	Hooks     Hooks
	Upstream  *PromptJSON
	PresetID  string
	Logger    *slog.Logger
}

// Builder runs the cascade for exactly one request and is then discarded.
// Not safe for concurrent use; each request constructs its own.
type Builder struct {
	asm      *assembler.Assembler
	hooks    Hooks
	upstream *PromptJSON
	presetID string
	logger   *slog.Logger
}

// NewBuilder creates a single-request cascade builder.
func NewBuilder(cfg Config) *Builder {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		asm:      cfg.Assembler,
		hooks:    cfg.Hooks,
		upstream: cfg.Upstream,
		presetID: cfg.PresetID,
		logger:   logger,
	}
}

// Assembler exposes the underlying assembler so callers can add request
// blocks before building.
func (b *Builder) Assembler() *assembler.Assembler {
	return b.asm
}

// Build runs the synchronous cascade: upstream reuse, then preset, then
// default assembly. First match wins.
func (b *Builder) Build() BuildResult {
	result, ok := b.buildDeterministic(uuid.NewString())
	if ok {
		return result
	}
	return b.buildDefault(result.RequestID)
}

// buildDeterministic attempts branches 1 and 2. When neither applies it
// returns ok=false with only the RequestID populated.
func (b *Builder) buildDeterministic(requestID string) (BuildResult, bool) {
	if b.upstream != nil && strings.TrimSpace(b.upstream.FullPrompt) != "" {
		b.logger.Debug("cascade: reusing upstream instruction", "request_id", requestID)
		return BuildResult{
			Prompt:    b.hooks.FromPromptJSON(b.upstream),
			Source:    SourcePromptJSON,
			RequestID: requestID,
		}, true
	}

	if b.presetID != "" && b.presetID != presets.Auto {
		b.logger.Debug("cascade: applying preset", "request_id", requestID, "preset", b.presetID)
		return BuildResult{
			Prompt:    b.hooks.FromPreset(b.presetID),
			Source:    SourcePreset,
			RequestID: requestID,
		}, true
	}

	return BuildResult{RequestID: requestID}, false
}

func (b *Builder) buildDefault(requestID string) BuildResult {
	return BuildResult{
		Prompt:    b.asm.Assemble(),
		Source:    SourceDefault,
		RequestID: requestID,
	}
}

// BuildWithAnalysis runs the cascade with a fourth, lowest-priority branch:
// when neither the upstream nor a preset applies, the supplied analysis
// function is awaited and its raw text parsed for a JSON payload. Any
// analysis failure is logged and degrades to default assembly; a broken
// vision call must never block generation outright.
func (b *Builder) BuildWithAnalysis(ctx context.Context, analyze AnalyzeFunc, images []string) BuildResult {
	requestID := uuid.NewString()

	if result, ok := b.buildDeterministic(requestID); ok {
		return result
	}

	if analyze == nil {
		return b.buildDefault(requestID)
	}

	raw, err := analyze(ctx, images, b.hooks.AnalysisPrompt())
	if err != nil {
		b.logger.Warn("cascade: analysis call failed, using default assembly",
			"request_id", requestID, "error", err)
		return b.buildDefault(requestID)
	}

	parsed, ok := extractAnalysis(raw)
	if !ok {
		b.logger.Warn("cascade: analysis output had no usable JSON, using default assembly",
			"request_id", requestID, "output_bytes", len(raw))
		return b.buildDefault(requestID)
	}

	return BuildResult{
		Prompt:         b.hooks.FromAnalysis(parsed),
		Source:         SourceAuto,
		AnalysisResult: parsed,
		RequestID:      requestID,
	}
}

// extractAnalysis recovers a JSON object from raw analysis text, retrying
// once with trailing-comma repair. Non-object payloads (arrays, scalars)
// count as failures: hooks consume keyed fields.
func extractAnalysis(raw string) (map[string]any, bool) {
	result := jsonx.Extract(raw)
	if !result.OK {
		if fixed := jsonx.TryFixJSON(raw); fixed != raw {
			result = jsonx.Extract(fixed)
		}
	}
	if !result.OK {
		return nil, false
	}

	obj, ok := result.Value.(map[string]any)
	if !ok {
		return nil, false
	}
	return obj, true
}
