package assembler

import (
	"fmt"
	"strings"
)

// Module is a block-like unit produced by a shared factory. Type acts as
// the name, Text as the content. Factories are reused across category
// builders instead of inlining the same text everywhere.
type Module struct {
	Type     string
	Text     string
	Priority int
}

// Module priorities. Technical modules sit below creative blocks so they
// never displace the subject description.
const (
	priorityQuality  = 20
	priorityRender   = 18
	priorityModel    = 60
	priorityNegative = 10
)

// QualityModule returns the shared output-quality settings module.
func QualityModule(level string) Module {
	if level == "" {
		level = "high"
	}
	return Module{
		Type:     "quality_settings",
		Text:     fmt.Sprintf("Output quality: %s detail, sharp focus, professional color grading, no artifacts.", level),
		Priority: priorityQuality,
	}
}

// RenderSettingsModule returns resolution/aspect guidance for the target image.
func RenderSettingsModule(aspect string) Module {
	if aspect == "" {
		aspect = "1:1"
	}
	return Module{
		Type:     "render_settings",
		Text:     fmt.Sprintf("Render at %s aspect ratio with edge-to-edge composition.", aspect),
		Priority: priorityRender,
	}
}

// ModelDescriptionModule describes the human model or display form for
// product shots. Empty description produces an empty module, which the
// assembler drops.
func ModelDescriptionModule(desc string) Module {
	text := ""
	if strings.TrimSpace(desc) != "" {
		text = "Model / display form: " + strings.TrimSpace(desc)
	}
	return Module{
		Type:     "model_description",
		Text:     text,
		Priority: priorityModel,
	}
}

// NegativeConstraintsModule lists things the image must not contain.
func NegativeConstraintsModule(items []string) Module {
	text := ""
	if len(items) > 0 {
		text = "Do not include: " + strings.Join(items, ", ") + "."
	}
	return Module{
		Type:     "negative_constraints",
		Text:     text,
		Priority: priorityNegative,
	}
}
