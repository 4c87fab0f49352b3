package cmd

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"imgstudio/internal/logging"
)

// Version information
var (
	version string
	commit  string
	date    string
)

// SetVersionInfo sets the version information
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

var (
	logLevel    string
	profileName string
)

var rootCmd = &cobra.Command{
	Use:   "imgstudio",
	Short: "Terminal studio for AI image generation",
	Long: `Generate images from text prompts with Pollinations, NavyAI, Hugging Face
or any OpenAI-compatible image API.

Profiles are read from the secrets file ($IMGSTUDIO_SECRETS or
$XDG_CONFIG_HOME/imgstudio/secrets.yaml). Run without arguments on a terminal
to open the interactive studio.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Setup(logging.ResolveLevel(logLevel), os.Stderr)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if !isInteractive() {
			return cmd.Help()
		}
		return runTUI(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); defaults to $"+logging.EnvLevel)
	rootCmd.PersistentFlags().StringVarP(&profileName, "profile", "p", "", "Profile to use instead of the active one")
}

// isInteractive reports whether stdin and stdout are both terminals
func isInteractive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
}

// Execute executes the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(`imgstudio {{.Version}}
Commit: ` + commit + `
Date: ` + date + `
`)

	return rootCmd.Execute()
}
