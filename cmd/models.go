package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"imgstudio/internal/catalog"
	"imgstudio/internal/discovery"
	"imgstudio/internal/providers"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Show the models available to a profile",
}

var modelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List built-in models for the profile's provider",
	Long:  "List the built-in model catalog of the active (or --profile) profile's provider, grouped by category",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := loadState()
		if err != nil {
			return err
		}
		p, err := st.profile("")
		if err != nil {
			return err
		}

		models := providers.HardcodedModels(p.Provider)
		fmt.Fprintf(cmd.OutOrStdout(), "Models for %s (%s): %d\n", p.Name, p.Provider, models.Len())
		printGroups(cmd.OutOrStdout(), models)
		return nil
	},
}

var modelsDiscoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Discover models from the provider and merge them with the built-in list",
	Long: `Query the provider for its model list and merge the result over the
built-in catalog. Discovery failures are reported but never fatal.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := loadState()
		if err != nil {
			return err
		}
		p, err := st.profile("")
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), discovery.DefaultTimeout)
		defer cancel()
		found, summary := discovery.Run(ctx, discovery.ForProfile(p, nil))

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, summary)
		merged := providers.MergeForProvider(p.Provider, found)
		fmt.Fprintf(out, "Models for %s (%s): %d\n", p.Name, p.Provider, merged.Len())
		printGroups(out, merged)
		return nil
	},
}

func printGroups(w io.Writer, c catalog.Catalog) {
	for _, g := range catalog.GroupByCategory(c) {
		fmt.Fprintf(w, "\n%s\n", g.Category)
		for _, d := range g.Models.Descriptors() {
			fmt.Fprintf(w, "  %-40s %s\n", d.ID, d.Label())
		}
	}
}

func init() {
	rootCmd.AddCommand(modelsCmd)
	modelsCmd.AddCommand(modelsListCmd, modelsDiscoverCmd)
}
