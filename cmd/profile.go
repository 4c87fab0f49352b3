package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"imgstudio/config/models"
	"imgstudio/internal/compatibility"
	"imgstudio/internal/providers"
	"imgstudio/internal/utils"
)

// profileFlags holds the editable profile fields shared by add and edit
type profileFlags struct {
	name     string
	provider string
	url      string
	key      string
	authMode string
	referrer string
	token    string
	encrypt  bool
}

var (
	addFlags      profileFlags
	editFlags     profileFlags
	renderEncrypt bool

	validateJSON    bool
	validateVerbose bool
	validateRender  bool
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage provider profiles",
	Long: `Manage provider profiles stored in the secrets file.

Commands that change profiles print the updated secrets document on stdout;
redirect it to the secrets file to keep the change.`,
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all profiles",
	Long:  "List all profiles from the secrets file; * marks the active one",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := loadState()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		w := tabwriter.NewWriter(out, 0, 2, 2, ' ', 0)
		fmt.Fprintln(w, "  NAME\tPROVIDER\tURL\tCREDENTIALS\tVALIDATED")
		active := st.profiles.ActiveName()
		for _, p := range st.profiles.List() {
			marker := " "
			if p.Name == active {
				marker = "*"
			}
			validated := "no"
			if p.Validated {
				validated = "yes"
			}
			fmt.Fprintf(w, "%s %s\t%s\t%s\t%s\t%s\n", marker, p.Name, p.Provider, p.BaseURL, credentialSummary(p), validated)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintln(out, "\n* indicates the active profile")
		return nil
	},
}

// credentialSummary shows the masked credential a profile authenticates with
func credentialSummary(p models.Profile) string {
	switch {
	case p.APIKey != "":
		return "key " + utils.MaskAPIKey(p.APIKey)
	case p.EffectiveAuthMode() == models.AuthToken:
		return "token " + utils.MaskAPIKey(p.Token)
	case p.EffectiveAuthMode() == models.AuthReferrer:
		return "referrer " + p.Referrer
	default:
		return "free"
	}
}

var profileAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a new profile",
	Long: `Add a new profile and print the updated secrets document.

Examples:
  imgstudio profile add work --provider navyai --key sk-xxx
  imgstudio profile add hf --provider huggingface --key hf_xxx --encrypt
  imgstudio profile add pol --provider pollinations --auth-mode token --token tok`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := loadState()
		if err != nil {
			return err
		}

		p := models.Profile{
			Name:     args[0],
			Provider: addFlags.provider,
			BaseURL:  addFlags.url,
			APIKey:   addFlags.key,
			AuthMode: models.AuthMode(addFlags.authMode),
			Referrer: addFlags.referrer,
			Token:    addFlags.token,
		}
		if err := st.profiles.Add(p); err != nil {
			return err
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "Profile added: %s\n", p.Name)
		return st.render(cmd.OutOrStdout(), cmd.ErrOrStderr(), addFlags.encrypt)
	},
}

var profileEditCmd = &cobra.Command{
	Use:   "edit <name>",
	Short: "Edit a profile",
	Long: `Change fields of a profile and print the updated secrets document.
Only the flags given are changed; --name renames the profile.

Examples:
  imgstudio profile edit work --key sk-new
  imgstudio profile edit work --name office --url https://api.navy/v1`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := loadState()
		if err != nil {
			return err
		}

		p, err := st.profiles.Get(args[0])
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		changed := 0
		apply := func(flag string, dst *string, value string) {
			if flags.Changed(flag) {
				*dst = value
				changed++
			}
		}
		apply("name", &p.Name, editFlags.name)
		apply("provider", &p.Provider, editFlags.provider)
		apply("url", &p.BaseURL, editFlags.url)
		apply("key", &p.APIKey, editFlags.key)
		apply("referrer", &p.Referrer, editFlags.referrer)
		apply("token", &p.Token, editFlags.token)
		if flags.Changed("auth-mode") {
			p.AuthMode = models.AuthMode(editFlags.authMode)
			changed++
		}
		if changed == 0 {
			return fmt.Errorf("nothing to change; pass at least one field flag")
		}
		if flags.Changed("provider") && !flags.Changed("url") {
			if provider, err := providers.Get(p.Provider); err == nil {
				p.BaseURL = provider.DefaultBaseURL()
			}
		}
		p.Validated = false

		saved, err := st.profiles.Save(args[0], p)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "Profile updated: %s (%d fields changed)\n", saved.Name, changed)
		return st.render(cmd.OutOrStdout(), cmd.ErrOrStderr(), editFlags.encrypt)
	},
}

var profileRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a profile",
	Long:  "Remove a profile and print the updated secrets document. The last profile cannot be removed.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := loadState()
		if err != nil {
			return err
		}
		if err := st.profiles.Remove(args[0]); err != nil {
			return err
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "Profile removed: %s\n", args[0])
		return st.render(cmd.OutOrStdout(), cmd.ErrOrStderr(), renderEncrypt)
	},
}

var profileUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Make a profile active",
	Long:  "Make a profile active and print the updated secrets document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := loadState()
		if err != nil {
			return err
		}
		if err := st.profiles.SetActive(args[0]); err != nil {
			return err
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "Active profile: %s\n", args[0])
		return st.render(cmd.OutOrStdout(), cmd.ErrOrStderr(), renderEncrypt)
	},
}

var profileValidateCmd = &cobra.Command{
	Use:   "validate [name]",
	Short: "Check a profile's credentials",
	Long: `Check a profile's credentials against its provider.

Exit codes: 0 valid, 1 invalid, 2 valid with warnings.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := loadState()
		if err != nil {
			return err
		}

		var name string
		if len(args) == 1 {
			name = args[0]
		}
		p, err := st.profile(name)
		if err != nil {
			return err
		}

		reporter := compatibility.NewReporter(
			cmd.OutOrStdout(),
			compatibility.WithJSONOutput(validateJSON),
			compatibility.WithVerboseOutput(validateVerbose),
		)

		tester, err := compatibility.NewTester(p)
		if err != nil {
			_ = reporter.ReportError(err, compatibility.ErrorCategoryUnknown)
			os.Exit(compatibility.ExitCodeFailure)
		}
		if !validateJSON {
			fmt.Fprintf(cmd.OutOrStdout(), "Validating credentials for: %s\n\n", p.Name)
		}

		result := tester.Run(context.Background())
		if err := reporter.Report(p.Name, result); err != nil {
			return fmt.Errorf("failed to report results: %w", err)
		}

		if validateRender {
			if err := st.profiles.SetValidated(p.Name, result.Success); err != nil {
				return err
			}
			if err := st.render(cmd.ErrOrStderr(), cmd.ErrOrStderr(), renderEncrypt); err != nil {
				return err
			}
		}

		_, exitCode := compatibility.DetermineLevel(result.Checks)
		if exitCode != compatibility.ExitCodeSuccess {
			os.Exit(exitCode)
		}
		return nil
	},
}

func bindProfileFlags(cmd *cobra.Command, f *profileFlags, rename bool) {
	if rename {
		cmd.Flags().StringVar(&f.name, "name", "", "New profile name")
	}
	cmd.Flags().StringVar(&f.provider, "provider", providers.Pollinations, "Provider id (pollinations, navyai, huggingface, openai-compatible)")
	cmd.Flags().StringVarP(&f.url, "url", "u", "", "API base URL (defaults to the provider's)")
	cmd.Flags().StringVarP(&f.key, "key", "k", "", "API key")
	cmd.Flags().StringVar(&f.authMode, "auth-mode", string(models.AuthFree), "Pollinations auth mode (free, referrer, token)")
	cmd.Flags().StringVar(&f.referrer, "referrer", "", "Pollinations referrer")
	cmd.Flags().StringVar(&f.token, "token", "", "Pollinations token")
	cmd.Flags().BoolVar(&f.encrypt, "encrypt", false, "Encrypt credentials in the printed document")
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileListCmd, profileAddCmd, profileEditCmd, profileRemoveCmd, profileUseCmd, profileValidateCmd)

	bindProfileFlags(profileAddCmd, &addFlags, false)
	bindProfileFlags(profileEditCmd, &editFlags, true)

	for _, c := range []*cobra.Command{profileRemoveCmd, profileUseCmd, profileValidateCmd} {
		c.Flags().BoolVar(&renderEncrypt, "encrypt", false, "Encrypt credentials in the printed document")
	}
	profileValidateCmd.Flags().BoolVarP(&validateJSON, "json", "j", false, "JSON format output")
	profileValidateCmd.Flags().BoolVarP(&validateVerbose, "verbose", "v", false, "List the image models found")
	profileValidateCmd.Flags().BoolVar(&validateRender, "render", false, "Print the secrets document with the validated flag updated (to stderr)")
}
