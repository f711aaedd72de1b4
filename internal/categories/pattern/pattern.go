// Package pattern builds generation instructions for complex print and
// seamless-repeat patterns. It implements the cascade hooks; branch
// selection stays in the cascade.
package pattern

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/artfoundry/easel/internal/assembler"
	"github.com/artfoundry/easel/internal/cascade"
	"github.com/artfoundry/easel/internal/jsonx"
	"github.com/artfoundry/easel/internal/presets"
)

// Layout selects the pattern composition rules.
const (
	LayoutGraphic  = "graphic"  // single placed motif
	LayoutSeamless = "seamless" // tileable repeat
)

// Config carries the category-specific fields for one request.
type Config struct {
	Subject  string
	Layout   string // LayoutGraphic (default) or LayoutSeamless
	Elements []string
	Palette  string
	Notes    string

	PresetID string
	Upstream *cascade.PromptJSON
}

// RequiredAnalysisKeys are the keys the vision model must return.
var RequiredAnalysisKeys = []string{"subject", "style", "colors", "mood"}

// AnalysisSchema validates parsed vision-analysis payloads.
var AnalysisSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"subject": {"type": "string"},
		"style": {"type": "string"},
		"colors": {"type": ["string", "array"]},
		"mood": {"type": "string"},
		"layout": {"type": "string"}
	},
	"required": ["subject", "style", "colors", "mood"]
}`)

const analysisPrompt = `Analyze the reference images for a repeating pattern design.
Return ONLY a JSON object, no prose and no markdown, with exactly these keys:
{"subject": "<main motif>", "style": "<artistic style>", "colors": ["<dominant colors>"], "mood": "<overall mood>", "layout": "<graphic or seamless>"}`

type builder struct {
	cfg    Config
	layout string
	asm    *assembler.Assembler
	reg    *presets.Registry
	logger *slog.Logger
}

// New composes the default blocks for a pattern request and wraps them in
// a single-use cascade builder.
func New(cfg Config, reg *presets.Registry, logger *slog.Logger) *cascade.Builder {
	if logger == nil {
		logger = slog.Default()
	}
	b := &builder{
		cfg:    cfg,
		asm:    assembler.New(),
		reg:    reg,
		logger: logger,
	}
	b.compose(cfg.Layout)

	return cascade.NewBuilder(cascade.Config{
		Assembler: b.asm,
		Hooks:     b,
		Upstream:  cfg.Upstream,
		PresetID:  cfg.PresetID,
		Logger:    logger,
	})
}

// compose resets the assembler and lays down the category defaults for a
// layout. Core concept and hard rules share a priority on purpose: the
// stable sort keeps the rules directly under the concept.
func (b *builder) compose(layout string) {
	if layout != LayoutSeamless {
		layout = LayoutGraphic
	}
	b.layout = layout
	b.asm.Clear()

	b.asm.AddBlock("core_concept",
		"Design a textile print pattern suitable for production.", 90)
	b.asm.AddBlock("hard_rules",
		"Flat vector-style artwork. No mockups, no fabric folds, no photographic backgrounds.", 90)

	switch layout {
	case LayoutSeamless:
		b.asm.AddBlock("layout_rules",
			"Seamless repeat: the pattern must tile perfectly in all directions with no visible seams. Distribute motifs evenly with balanced negative space.", 80)
	default:
		b.asm.AddBlock("layout_rules",
			"Single placed graphic: one centered composition with clear silhouette, sized for chest or panel placement.", 80)
	}

	b.asm.AddBlock("subject", describeSubject(b.cfg.Subject, b.cfg.Elements), 75)
	b.asm.AddBlock("palette", describePalette(b.cfg.Palette), 65)
	b.asm.AddBlock("notes", b.cfg.Notes, 40)

	b.asm.AddModule(assembler.QualityModule("high"))
	b.asm.AddModule(assembler.NegativeConstraintsModule([]string{
		"watermarks", "text unless requested", "photorealistic rendering",
	}))
}

func describeSubject(subject string, elements []string) string {
	var parts []string
	if strings.TrimSpace(subject) != "" {
		parts = append(parts, "Main motif: "+strings.TrimSpace(subject)+".")
	}
	if len(elements) > 0 {
		parts = append(parts, "Supporting elements: "+strings.Join(elements, ", ")+".")
	}
	return strings.Join(parts, " ")
}

func describePalette(palette string) string {
	if strings.TrimSpace(palette) == "" {
		return ""
	}
	return "Color palette: " + strings.TrimSpace(palette) + "."
}

// FromPromptJSON keeps the upstream creative content verbatim at the top
// and appends the technical modules.
func (b *builder) FromPromptJSON(up *cascade.PromptJSON) string {
	b.asm.AddBlock("upstream_instruction", up.FullPrompt, 95)
	return b.asm.Assemble()
}

// FromPreset adds the named style's vocabulary. An unknown id logs and
// renders the defaults unchanged.
func (b *builder) FromPreset(presetID string) string {
	style, ok := b.reg.Get(presetID)
	if !ok {
		b.logger.Warn("unknown pattern preset, rendering defaults", "preset", presetID)
		return b.asm.Assemble()
	}

	if len(style.Elements) > 0 {
		b.asm.AddBlock("style_elements",
			"Incorporate these motifs: "+strings.Join(style.Elements, ", ")+".", 70)
	}
	if len(style.Colors) > 0 {
		b.asm.UpsertBlock("palette",
			"Color palette: "+strings.Join(style.Colors, ", ")+".", 65)
	}
	if len(style.Layouts) > 0 {
		b.asm.AddBlock("style_layout",
			"Arrange as: "+style.Layouts[0]+".", 68)
	}
	if len(style.Vibes) > 0 {
		b.asm.AddBlock("style_vibes",
			"Overall feel: "+strings.Join(style.Vibes, ", ")+".", 64)
	}
	return b.asm.Assemble()
}

// FromAnalysis personalizes the defaults with the parsed vision result.
// A layout suggestion that differs from the configured one recomposes the
// base blocks before applying the analyzed fields.
func (b *builder) FromAnalysis(parsed map[string]any) string {
	if layout := jsonx.StringField(parsed, "layout"); layout == LayoutGraphic || layout == LayoutSeamless {
		if layout != b.layout {
			b.compose(layout)
		}
	}

	if subject := jsonx.StringField(parsed, "subject"); subject != "" {
		b.asm.UpsertBlock("subject", "Main motif: "+subject+".", 75)
	}
	if style := jsonx.StringField(parsed, "style"); style != "" {
		b.asm.AddBlock("analyzed_style", "Artistic style: "+style+".", 70)
	}
	if colors := jsonx.StringField(parsed, "colors"); colors != "" {
		b.asm.UpsertBlock("palette", "Color palette: "+colors+".", 65)
	}
	if mood := jsonx.StringField(parsed, "mood"); mood != "" {
		b.asm.AddBlock("analyzed_mood", "Overall mood: "+mood+".", 64)
	}
	return b.asm.Assemble()
}

// AnalysisPrompt returns the strict-JSON analysis instruction.
func (b *builder) AnalysisPrompt() string {
	return analysisPrompt
}
