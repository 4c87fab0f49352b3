package cmd

import (
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"imgstudio/internal/export"
	"imgstudio/internal/generation"
	"imgstudio/internal/logging"
	"imgstudio/internal/session"
	"imgstudio/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:     "studio",
	Aliases: []string{"tui"},
	Short:   "Open the interactive image studio",
	Args:    cobra.NoArgs,
	RunE:    runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// logFilePath is where logs go while the studio owns the terminal.
func logFilePath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	dir = filepath.Join(dir, "imgstudio")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "imgstudio.log"), nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	st, err := loadState()
	if err != nil {
		return err
	}
	if profileName != "" {
		if err := st.profiles.SetActive(profileName); err != nil {
			return err
		}
	}

	if path, err := logFilePath(); err == nil {
		if closer, err := logging.OpenFile(path); err == nil {
			defer closer.Close()
		}
	}
	log.WithField("profile", st.profiles.ActiveName()).Info("starting studio")

	sess := session.New(st.profiles, st.settings)
	return tui.Run(sess, tui.Deps{
		Dispatcher: generation.NewDispatcher(generation.WithTimeout(st.settings.RequestTimeout)),
		Exporter:   export.NewExporter(st.settings.OutputDir),
	})
}
