package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jo-hoe/fundusref/internal/reference"
)

var lookupJSON bool

// diseasesCmd lists the reference diseases
var diseasesCmd = &cobra.Command{
	Use:   "diseases",
	Short: "List the diseases in navigation order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := newCoreService(cmd.Context())
		if err != nil {
			return err
		}
		defer closeService(service)

		diseases, err := service.Diseases(cmd.Context())
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tRECORDS")
		for _, d := range diseases {
			fmt.Fprintf(w, "%s\t%s\t%d\n", d.ID, d.Name, len(d.Parameters))
		}
		return w.Flush()
	},
}

// lookupCmd prints the reference page of one disease
var lookupCmd = &cobra.Command{
	Use:   "lookup <disease>",
	Short: "Show features, thresholds, tests and checks for a disease",
	Long: `Show the reference page of a disease.

The disease may be given as slug (glaucoma, amd, cscr, ...) or display name.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := newCoreService(cmd.Context())
		if err != nil {
			return err
		}
		defer closeService(service)

		disease, err := service.Lookup(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if lookupJSON {
			return writeJSON(cmd.OutOrStdout(), disease)
		}
		return writeDisease(cmd.OutOrStdout(), disease)
	},
}

// testsCmd prints when additional imaging is recommended
var testsCmd = &cobra.Command{
	Use:   "tests",
	Short: "Show when OCT, FA and OCTA are recommended",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "When Additional Tests Are Recommended?")
		for _, group := range reference.TestGuide() {
			fmt.Fprintf(out, "\n%s\n", group.Name)
			for _, ind := range group.Indications {
				fmt.Fprintf(out, "  - %s: %s\n", ind.Modality, ind.Indication)
			}
		}
		return nil
	},
}

func init() {
	lookupCmd.Flags().BoolVar(&lookupJSON, "json", false, "Print the reference page as JSON")
}

func writeDisease(out io.Writer, d *reference.Disease) error {
	fmt.Fprintf(out, "%s\n\nVisual Features to Consider\n", d.Title)
	for _, f := range d.Features {
		fmt.Fprintf(out, "  - %s\n", f)
	}

	fmt.Fprintln(out, "\nThreshold Values and Abnormalities")
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  FEATURE\tNORMAL\tABNORMAL\tDECISION")
	for _, p := range d.Parameters {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", p.DisplayLabel(), p.NormalThreshold, p.AbnormalThreshold, p.DecisionNote)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out, "\nAdditional Tests")
	for _, t := range d.AdditionalTests {
		fmt.Fprintf(out, "  - %s\n", t)
	}
	fmt.Fprintln(out, "\nLogics and Checks")
	for _, c := range d.Checks {
		fmt.Fprintf(out, "  - %s\n", c)
	}
	return nil
}

func writeJSON(out io.Writer, v any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
