package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"imgstudio/internal/presets"
)

var presetsCmd = &cobra.Command{
	Use:   "presets [sizes|styles|negative|schedulers]",
	Short: "List size, style and negative-prompt presets",
	Args:  cobra.MaximumNArgs(1),
	ValidArgs: []string{
		"sizes", "styles", "negative", "schedulers",
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		which := ""
		if len(args) == 1 {
			which = args[0]
		}

		switch which {
		case "":
			printPresets(out, "Sizes", presets.Sizes)
			printPresets(out, "Styles", presets.Styles)
			printPresets(out, "Negative prompts", presets.NegativePrompts)
			printSchedulers(out)
		case "sizes":
			printPresets(out, "Sizes", presets.Sizes)
		case "styles":
			printPresets(out, "Styles", presets.Styles)
		case "negative":
			printPresets(out, "Negative prompts", presets.NegativePrompts)
		case "schedulers":
			printSchedulers(out)
		default:
			return fmt.Errorf("unknown preset list '%s'", which)
		}
		return nil
	},
}

func printPresets(w io.Writer, title string, list []presets.Preset) {
	fmt.Fprintf(w, "%s:\n", title)
	for _, p := range list {
		fmt.Fprintf(w, "  %-18s %-28s %s\n", p.Key, p.Label, p.Value)
	}
	fmt.Fprintln(w)
}

func printSchedulers(w io.Writer) {
	fmt.Fprintln(w, "Schedulers (Hugging Face):")
	for _, s := range presets.Schedulers {
		fmt.Fprintf(w, "  %s\n", s)
	}
	fmt.Fprintln(w)
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}
