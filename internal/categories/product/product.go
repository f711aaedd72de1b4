// Package product builds generation instructions for product photography
// mockups (jewelry, apparel, packaged goods on styled sets).
package product

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/artfoundry/easel/internal/assembler"
	"github.com/artfoundry/easel/internal/cascade"
	"github.com/artfoundry/easel/internal/jsonx"
	"github.com/artfoundry/easel/internal/presets"
)

// Config carries the category-specific fields for one request.
type Config struct {
	Product   string
	Materials []string
	ModelDesc string // human model / display form, empty for tabletop
	Aspect    string // render aspect ratio, default 1:1
	Notes     string

	PresetID string
	Upstream *cascade.PromptJSON
}

// RequiredAnalysisKeys are the keys the vision model must return.
var RequiredAnalysisKeys = []string{"product_type", "materials", "colors", "scene"}

// AnalysisSchema validates parsed vision-analysis payloads.
var AnalysisSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"product_type": {"type": "string"},
		"materials": {"type": ["string", "array"]},
		"colors": {"type": ["string", "array"]},
		"scene": {"type": "string"}
	},
	"required": ["product_type", "materials", "colors", "scene"]
}`)

const analysisPrompt = `Analyze the reference product photos.
Return ONLY a JSON object, no prose and no markdown, with exactly these keys:
{"product_type": "<what the product is>", "materials": ["<visible materials>"], "colors": ["<dominant colors>"], "scene": "<suggested photography scene>"}`

type builder struct {
	cfg    Config
	asm    *assembler.Assembler
	reg    *presets.Registry
	logger *slog.Logger
}

// New composes the default blocks for a product-photography request and
// wraps them in a single-use cascade builder.
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
	b.compose()

	return cascade.NewBuilder(cascade.Config{
		Assembler: b.asm,
		Hooks:     b,
		Upstream:  cfg.Upstream,
		PresetID:  cfg.PresetID,
		Logger:    logger,
	})
}

func (b *builder) compose() {
	b.asm.AddBlock("core_concept",
		"Produce a commercial product photograph ready for an online storefront.", 90)
	b.asm.AddBlock("hard_rules",
		"The product must stay true to its reference: same shape, same branding, no invented details.", 90)

	b.asm.AddBlock("product", describeProduct(b.cfg.Product, b.cfg.Materials), 75)
	b.asm.AddBlock("notes", b.cfg.Notes, 40)

	b.asm.AddModule(assembler.ModelDescriptionModule(b.cfg.ModelDesc))
	b.asm.AddModule(assembler.QualityModule("high"))
	b.asm.AddModule(assembler.RenderSettingsModule(b.cfg.Aspect))
	b.asm.AddModule(assembler.NegativeConstraintsModule([]string{
		"watermarks", "text overlays", "extra logos", "duplicate products",
	}))
}

func describeProduct(product string, materials []string) string {
	var parts []string
	if strings.TrimSpace(product) != "" {
		parts = append(parts, "Product: "+strings.TrimSpace(product)+".")
	}
	if len(materials) > 0 {
		parts = append(parts, "Materials: "+strings.Join(materials, ", ")+".")
	}
	return strings.Join(parts, " ")
}

// FromPromptJSON keeps the upstream creative content verbatim at the top
// and appends the technical modules.
func (b *builder) FromPromptJSON(up *cascade.PromptJSON) string {
	b.asm.AddBlock("upstream_instruction", up.FullPrompt, 95)
	return b.asm.Assemble()
}

// FromPreset adds the named style's set description. An unknown id logs
// and renders the defaults unchanged.
func (b *builder) FromPreset(presetID string) string {
	style, ok := b.reg.Get(presetID)
	if !ok {
		b.logger.Warn("unknown product preset, rendering defaults", "preset", presetID)
		return b.asm.Assemble()
	}

	if style.Background != "" {
		b.asm.AddBlock("set_background", "Background: "+style.Background+".", 70)
	}
	if style.Lighting != "" {
		// Lighting reads best directly under the background description.
		if style.Background != "" {
			b.asm.InsertAfter("set_background", "set_lighting", "Lighting: "+style.Lighting+".")
		} else {
			b.asm.AddBlock("set_lighting", "Lighting: "+style.Lighting+".", 69)
		}
	}
	if len(style.Props) > 0 {
		b.asm.AddBlock("set_props", "Props: "+strings.Join(style.Props, ", ")+".", 66)
	}
	return b.asm.Assemble()
}

// FromAnalysis personalizes the defaults with the parsed vision result.
func (b *builder) FromAnalysis(parsed map[string]any) string {
	productType := jsonx.StringField(parsed, "product_type")
	materials := jsonx.StringList(parsed, "materials")
	if productType != "" || len(materials) > 0 {
		b.asm.UpsertBlock("product", describeProduct(productType, materials), 75)
	}
	if colors := jsonx.StringField(parsed, "colors"); colors != "" {
		b.asm.AddBlock("analyzed_colors", "Dominant colors: "+colors+".", 68)
	}
	if scene := jsonx.StringField(parsed, "scene"); scene != "" {
		b.asm.AddBlock("analyzed_scene", "Scene: "+scene+".", 70)
	}
	return b.asm.Assemble()
}

// AnalysisPrompt returns the strict-JSON analysis instruction.
func (b *builder) AnalysisPrompt() string {
	return analysisPrompt
}
