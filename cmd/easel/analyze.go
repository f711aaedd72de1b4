package main

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/artfoundry/easel/internal/analysis"
	"github.com/artfoundry/easel/internal/cascade"
	"github.com/artfoundry/easel/internal/categories/pattern"
	"github.com/artfoundry/easel/internal/categories/product"
	"github.com/artfoundry/easel/internal/jsonx"
)

var (
	analyzeFlags  requestFlags
	analyzeImages []string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Assemble a generation instruction personalized by vision analysis",
	Long: `Analyze runs the full cascade. When neither an upstream instruction
nor a preset applies, the configured vision model describes the reference
images and the parsed result personalizes the prompt. Analysis failures
degrade to the category defaults; the command never fails because of them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(analyzeImages) == 0 {
			return fmt.Errorf("at least one --image is required")
		}

		mgr, registry, err := loadEnvironment()
		if err != nil {
			return err
		}
		applyConfigDefaults(cmd, &analyzeFlags, mgr.Get().Defaults)

		up, err := loadUpstream(analyzeFlags.promptJSON)
		if err != nil {
			return err
		}

		builder, err := newBuilder(&analyzeFlags, registry, up)
		if err != nil {
			return err
		}

		recorder := analysis.NewRecorder(0)
		clientCfg := mgr.Get().ToClientConfig()
		clientCfg.Recorder = recorder
		client := analysis.NewClient(clientCfg)

		res := builder.BuildWithAnalysis(cmd.Context(), client.Analyze, analyzeImages)

		if res.Source == cascade.SourceAuto {
			for _, issue := range analysisIssues(analyzeFlags.category, res.AnalysisResult) {
				slog.Warn("analysis result drifted from the expected shape",
					"category", analyzeFlags.category, "issue", issue)
			}
		}
		if rec := recorder.Last(); rec != nil {
			slog.Info("analysis call",
				"id", rec.ID, "model", rec.Model, "images", rec.Images,
				"duration", rec.Duration, "ok", rec.OK)
		}

		printResult(res)
		return nil
	},
}

// analysisIssues checks the parsed payload against the category's required
// keys and full JSON schema. Drift is reported, not fatal: the prompt was
// already personalized from whatever fields were usable.
func analysisIssues(category string, parsed map[string]any) []string {
	var (
		required []string
		schema   json.RawMessage
	)
	switch category {
	case "pattern":
		required = pattern.RequiredAnalysisKeys
		schema = pattern.AnalysisSchema
	case "product":
		required = product.RequiredAnalysisKeys
		schema = product.AnalysisSchema
	default:
		return nil
	}

	var issues []string
	if check := jsonx.ValidateRequiredKeys(parsed, required); !check.Valid {
		issues = append(issues, fmt.Sprintf("missing keys: %v", check.MissingKeys))
	}
	if err := jsonx.ValidateSchema(parsed, schema); err != nil {
		issues = append(issues, err.Error())
	}
	return issues
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVar(&analyzeFlags.category, "category", "pattern", "generation category: pattern or product")
	f.StringVar(&analyzeFlags.preset, "preset", "auto", "style preset id (auto = none)")
	f.StringVar(&analyzeFlags.promptJSON, "prompt-json", "", "path to an upstream instruction JSON file")
	f.StringVar(&analyzeFlags.subject, "subject", "", "pattern: main motif")
	f.StringVar(&analyzeFlags.layout, "layout", "graphic", "pattern: graphic or seamless")
	f.StringVar(&analyzeFlags.palette, "palette", "", "pattern: color palette")
	f.StringVar(&analyzeFlags.productStr, "product", "", "product: what the product is")
	f.StringVar(&analyzeFlags.modelDesc, "model-desc", "", "product: human model / display form")
	f.StringVar(&analyzeFlags.aspect, "aspect", "", "product: render aspect ratio")
	f.StringVar(&analyzeFlags.notes, "notes", "", "free-form notes appended near the end")
	f.StringArrayVar(&analyzeImages, "image", nil, "reference image URL or data URL (repeatable)")
}
