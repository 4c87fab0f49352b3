package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"

	"imgstudio/config"
	"imgstudio/config/models"
)

// stubState serves a fixed secrets document to the commands under test.
func stubState(t *testing.T, active string, profiles ...models.Profile) *state {
	t.Helper()
	file := &models.File{Active: active, Profiles: profiles}
	st := &state{file: file, profiles: config.NewManager(file), settings: config.DefaultSettings()}

	orig := loadState
	loadState = func() (*state, error) { return st, nil }
	t.Cleanup(func() { loadState = orig })
	return st
}

// runCmd calls c's RunE with captured stdout and stderr.
func runCmd(t *testing.T, c *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	c.SetOut(&out)
	c.SetErr(&errOut)
	t.Cleanup(func() {
		c.SetOut(nil)
		c.SetErr(nil)
	})
	err := c.RunE(c, args)
	return out.String(), errOut.String(), err
}

func TestStateProfile(t *testing.T) {
	st := stubState(t, "b",
		models.Profile{Name: "a", Provider: "pollinations"},
		models.Profile{Name: "b", Provider: "navyai", APIKey: "sk"},
	)

	tests := []struct {
		name     string
		explicit string
		flag     string
		want     string
		wantErr  bool
	}{
		{"active by default", "", "", "b", false},
		{"--profile flag", "", "a", "a", false},
		{"explicit wins", "b", "a", "b", false},
		{"missing", "zzz", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profileName = tt.flag
			defer func() { profileName = "" }()

			p, err := st.profile(tt.explicit)
			if (err != nil) != tt.wantErr {
				t.Fatalf("profile() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && p.Name != tt.want {
				t.Errorf("profile() = %q, want %q", p.Name, tt.want)
			}
		})
	}
}

func TestRootCmd(t *testing.T) {
	if rootCmd.Use != "imgstudio" {
		t.Errorf("rootCmd.Use = %q, want imgstudio", rootCmd.Use)
	}
	for _, flag := range []string{"log-level", "profile"} {
		if rootCmd.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("rootCmd should have persistent flag --%s", flag)
		}
	}

	want := map[string]bool{"profile": false, "models": false, "presets": false, "generate": false, "studio": false}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("rootCmd is missing subcommand %q", name)
		}
	}
}

func TestTuiCmd(t *testing.T) {
	if tuiCmd.RunE == nil {
		t.Fatal("tuiCmd.RunE should not be nil")
	}
	if len(tuiCmd.Aliases) == 0 || tuiCmd.Aliases[0] != "tui" {
		t.Errorf("tuiCmd.Aliases = %v, want tui", tuiCmd.Aliases)
	}
	if err := tuiCmd.Args(tuiCmd, []string{"extra"}); err == nil {
		t.Error("tuiCmd should reject arguments")
	}
}
