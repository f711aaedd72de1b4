package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/artfoundry/easel/internal/cascade"
	"github.com/artfoundry/easel/internal/categories/pattern"
	"github.com/artfoundry/easel/internal/categories/product"
	"github.com/artfoundry/easel/internal/config"
	"github.com/artfoundry/easel/internal/presets"
)

// requestFlags are the shared per-request flags of build and analyze.
type requestFlags struct {
	category   string
	preset     string
	promptJSON string // path to an upstream instruction JSON file
	subject    string
	layout     string
	elements   []string
	palette    string
	productStr string
	materials  []string
	modelDesc  string
	aspect     string
	notes      string
}

// loadEnvironment loads config and the preset registry, starting the
// hot-reload watchers. The watchers run for the life of the process;
// commands are single-shot so no explicit stop is needed.
func loadEnvironment() (*config.Manager, *presets.Registry, error) {
	mgr, err := config.NewManager(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	mgr.WatchConfig()

	cfg := mgr.Get()
	registry, err := presets.NewRegistry(cfg.Presets.OverridePath, slog.Default())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load presets: %w", err)
	}
	if cfg.Presets.Watch {
		if _, err := registry.Watch(); err != nil {
			slog.Warn("preset hot reload unavailable", "error", err)
		}
	}
	mgr.OnChange(func(updated *config.Config) {
		slog.Info("configuration reloaded",
			"vision_model", updated.Vision.Model,
			"preset_overrides", updated.Presets.OverridePath)
	})
	return mgr, registry, nil
}

// applyConfigDefaults seeds category and preset from the config file's
// defaults section. Explicitly set flags always win.
func applyConfigDefaults(cmd *cobra.Command, f *requestFlags, d config.DefaultsCfg) {
	if !cmd.Flags().Changed("category") && d.Category != "" {
		f.category = d.Category
	}
	if !cmd.Flags().Changed("preset") && d.Preset != "" {
		f.preset = d.Preset
	}
}

// loadUpstream reads an upstream instruction JSON file, if given.
func loadUpstream(path string) (*cascade.PromptJSON, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt JSON: %w", err)
	}
	var up cascade.PromptJSON
	if err := json.Unmarshal(data, &up); err != nil {
		return nil, fmt.Errorf("failed to parse prompt JSON: %w", err)
	}
	return &up, nil
}

// newBuilder constructs the category builder for the requested category.
func newBuilder(f *requestFlags, registry *presets.Registry, up *cascade.PromptJSON) (*cascade.Builder, error) {
	switch f.category {
	case "pattern":
		return pattern.New(pattern.Config{
			Subject:  f.subject,
			Layout:   f.layout,
			Elements: f.elements,
			Palette:  f.palette,
			Notes:    f.notes,
			PresetID: f.preset,
			Upstream: up,
		}, registry, slog.Default()), nil
	case "product":
		return product.New(product.Config{
			Product:   f.productStr,
			Materials: f.materials,
			ModelDesc: f.modelDesc,
			Aspect:    f.aspect,
			Notes:     f.notes,
			PresetID:  f.preset,
			Upstream:  up,
		}, registry, slog.Default()), nil
	default:
		return nil, fmt.Errorf("unknown category %q (expected pattern or product)", f.category)
	}
}

// printResult writes the build outcome to stdout.
func printResult(res cascade.BuildResult) {
	fmt.Printf("# source: %s\n", res.Source)
	fmt.Printf("# request: %s\n", res.RequestID)
	if res.AnalysisResult != nil {
		if data, err := json.Marshal(res.AnalysisResult); err == nil {
			fmt.Printf("# analysis: %s\n", data)
		}
	}
	fmt.Println()
	fmt.Println(res.Prompt)
}
