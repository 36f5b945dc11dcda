package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jo-hoe/fundusref/internal/grading"
	"github.com/jo-hoe/fundusref/internal/reference"
)

var amdFindings grading.AMDFindings

// gradeCmd evaluates one measurement against the reference criteria
var gradeCmd = &cobra.Command{
	Use:   "grade <disease> <feature> <value>",
	Short: "Evaluate a grader measurement against the reference thresholds",
	Example: `  fundusctl grade glaucoma "Cup-to-Disc Ratio" 0.65
  fundusctl grade diabetic-retinopathy Microaneurysms 3`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("%w: %q is not a number", grading.ErrInvalidMeasurement, args[2])
		}
		id, err := reference.ParseDiseaseID(args[0])
		if err != nil {
			return err
		}
		finding, err := grading.Evaluate(id, args[1], value)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s / %s = %v %s: %s (%s)\n",
			finding.Disease, finding.Feature, finding.Value, finding.Unit, finding.Status, finding.Detail)
		return nil
	},
}

// cdrCmd compares the vertical CDR of both eyes
var cdrCmd = &cobra.Command{
	Use:   "cdr-asymmetry <left> <right>",
	Short: "Compare the vertical cup-to-disc ratio of both eyes",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var ratios [2]float64
		for i, arg := range args {
			v, err := strconv.ParseFloat(arg, 64)
			if err != nil {
				return fmt.Errorf("%w: %q is not a number", grading.ErrInvalidMeasurement, arg)
			}
			ratios[i] = v
		}
		comparison, err := grading.CompareCDR(ratios[0], ratios[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "asymmetry %.2f suspicious=%t both-elevated=%t\n",
			comparison.Asymmetry, comparison.Suspicious, comparison.BothElevated)
		return nil
	},
}

// stageAMDCmd stages AMD from grader findings
var stageAMDCmd = &cobra.Command{
	Use:   "stage-amd",
	Short: "Stage AMD from the largest druse and late-stage findings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if amdFindings.LargestDrusenMicrons < 0 {
			return fmt.Errorf("%w: drusen diameter must not be negative", grading.ErrInvalidMeasurement)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "drusen %s, stage %s\n",
			grading.ClassifyDrusen(amdFindings.LargestDrusenMicrons), grading.StageAMD(amdFindings))
		return nil
	},
}

func init() {
	stageAMDCmd.Flags().Float64Var(&amdFindings.LargestDrusenMicrons, "drusen", 0, "Largest druse diameter in µm")
	stageAMDCmd.Flags().BoolVar(&amdFindings.PigmentaryChanges, "pigmentary-changes", false, "Pigmentary abnormalities present")
	stageAMDCmd.Flags().BoolVar(&amdFindings.GeographicAtrophy, "geographic-atrophy", false, "Geographic atrophy present")
	stageAMDCmd.Flags().BoolVar(&amdFindings.ChoroidalNeovascularization, "cnv", false, "Choroidal neovascularization present")
}
