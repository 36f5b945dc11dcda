package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jo-hoe/fundusref/internal/core"
)

var (
	analyzeCategories []string
	analyzeOutDir     string
)

// categoriesCmd lists the selectable analysis categories
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the analysis categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, c := range core.Categories() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-22s %s\n", c.ID, c.Label)
		}
		return nil
	},
}

// analyzeCmd runs the placeholder detectors on an image file
var analyzeCmd = &cobra.Command{
	Use:   "analyze <image>",
	Short: "Run the placeholder detectors on a fundus image",
	Long: `Run the placeholder detectors of the selected categories on a fundus image.

Overlays and the optic disc schematic are written as PNG files into --out.
Without --out only the textual results are printed.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringSliceVar(&analyzeCategories, "category", nil, "Analysis category slug or label (repeatable)")
	analyzeCmd.Flags().StringVarP(&analyzeOutDir, "out", "o", "", "Directory for overlay PNGs")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}

	service, err := newCoreService(cmd.Context())
	if err != nil {
		return err
	}
	defer closeService(service)

	result, err := service.Analyze(cmd.Context(), core.AnalysisRequest{Image: data, Categories: analyzeCategories})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "session %s: %s %dx%d\n", result.SessionID, result.Format, result.Width, result.Height)

	files := map[string][]byte{}
	if analyzeOutDir != "" {
		files["uploaded.png"] = result.Thumbnail
	}
	for _, section := range result.Sections {
		fmt.Fprintf(out, "\n%s\n", section.Title)
		if disc := section.OpticDisc; disc != nil {
			area, rim := "unavailable", "unavailable"
			if disc.DiscArea != nil {
				area = fmt.Sprintf("%d", *disc.DiscArea)
			}
			if disc.RimArea != nil {
				rim = fmt.Sprintf("%.1f", *disc.RimArea)
			}
			fmt.Fprintf(out, "  Optic Disc Area: %s\n  Cup-to-Disc Ratio (CDR): %v\n  Neuroretinal Rim Area: %s\n", area, disc.CupToDiscRatio, rim)
			files[string(section.Category)+"-schematic.png"] = disc.Schematic
		}
		for _, overlay := range section.Overlays {
			name := fmt.Sprintf("%s-%s.png", section.Category, overlay.Detector)
			fmt.Fprintf(out, "  %s (%s)\n", overlay.Caption, name)
			files[name] = overlay.PNG
		}
		if section.Note != "" {
			fmt.Fprintf(out, "  %s\n", section.Note)
		}
	}

	if analyzeOutDir == "" {
		return nil
	}
	if err := os.MkdirAll(analyzeOutDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for name, png := range files {
		if err := os.WriteFile(filepath.Join(analyzeOutDir, name), png, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	fmt.Fprintf(out, "\nwrote %d files to %s\n", len(files), analyzeOutDir)
	return nil
}
