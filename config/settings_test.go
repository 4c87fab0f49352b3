package config

import (
	"testing"
	"time"

	"imgstudio/config/models"
)

func TestResolveSettings(t *testing.T) {
	tests := []struct {
		name    string
		raw     models.Settings
		env     string
		want    Settings
		wantErr bool
	}{
		{"defaults", models.Settings{}, "", DefaultSettings(), false},
		{
			name: "overrides",
			raw:  models.Settings{MaxHistory: 5, MaxFavorites: 7, RequestTimeout: "30s", OutputDir: "out"},
			want: Settings{MaxHistory: 5, MaxFavorites: 7, RequestTimeout: 30 * time.Second, OutputDir: "out"},
		},
		{
			name: "env output dir wins",
			raw:  models.Settings{OutputDir: "out"},
			env:  "/srv/images",
			want: Settings{MaxHistory: 25, MaxFavorites: 50, RequestTimeout: 180 * time.Second, OutputDir: "/srv/images"},
		},
		{"bad timeout", models.Settings{RequestTimeout: "soon"}, "", Settings{}, true},
		{"negative cap", models.Settings{MaxHistory: -1}, "", Settings{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvOutputDir, tt.env)
			got, err := ResolveSettings(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveSettings() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ResolveSettings() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
