package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/artfoundry/easel/internal/config"
)

var buildFlags requestFlags

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Assemble a generation instruction without vision analysis",
	Long: `Build runs the synchronous cascade: an upstream instruction file
(--prompt-json) wins over a named preset (--preset), which wins over the
category defaults.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, registry, err := loadEnvironment()
		if err != nil {
			return err
		}
		applyConfigDefaults(cmd, &buildFlags, mgr.Get().Defaults)

		up, err := loadUpstream(buildFlags.promptJSON)
		if err != nil {
			return err
		}

		builder, err := newBuilder(&buildFlags, registry, up)
		if err != nil {
			return err
		}

		printResult(builder.Build())
		return nil
	},
}

func init() {
	f := buildCmd.Flags()
	f.StringVar(&buildFlags.category, "category", "pattern", "generation category: pattern or product")
	f.StringVar(&buildFlags.preset, "preset", "auto", "style preset id (auto = none)")
	f.StringVar(&buildFlags.promptJSON, "prompt-json", "", "path to an upstream instruction JSON file")
	f.StringVar(&buildFlags.subject, "subject", "", "pattern: main motif")
	f.StringVar(&buildFlags.layout, "layout", "graphic", "pattern: graphic or seamless")
	f.StringSliceVar(&buildFlags.elements, "element", nil, "pattern: supporting element (repeatable)")
	f.StringVar(&buildFlags.palette, "palette", "", "pattern: color palette")
	f.StringVar(&buildFlags.productStr, "product", "", "product: what the product is")
	f.StringSliceVar(&buildFlags.materials, "material", nil, "product: visible material (repeatable)")
	f.StringVar(&buildFlags.modelDesc, "model-desc", "", "product: human model / display form")
	f.StringVar(&buildFlags.aspect, "aspect", "", "product: render aspect ratio")
	f.StringVar(&buildFlags.notes, "notes", "", "free-form notes appended near the end")
}

var initConfigCmd = &cobra.Command{
	Use:   "init-config [path]",
	Short: "Write the default configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "config.yaml"
		if len(args) == 1 {
			path = args[0]
		}
		if err := config.WriteDefault(path); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", path)
		return nil
	},
}
