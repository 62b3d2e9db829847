package model_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/CZERTAINLY/class-lens/internal/model"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Parallel()
	tests := []struct {
		scenario string
		given    string
		then     model.Config
		wantErr  bool
		cueErr   bool
	}{
		{
			scenario: "full config",
			given: `
version: 0
classpath:
  - build/classes
  - lib/app.jar!/com/example
exclude:
  - /generated/
digest: true
jobs: 8
verbose: true
log: stdout
`,
			then: model.Config{
				Version:   0,
				Classpath: []string{"build/classes", "lib/app.jar!/com/example"},
				Exclude:   []string{"/generated/"},
				Digest:    true,
				Jobs:      8,
				Verbose:   true,
				Log:       model.LogStdout,
			},
		},
		{
			scenario: "invalid log destination",
			given:    "log: syslog\n",
			wantErr:  true,
			cueErr:   true,
		},
		{
			scenario: "negative jobs",
			given:    "jobs: -1\n",
			wantErr:  true,
			cueErr:   true,
		},
		{
			scenario: "unknown field",
			given:    "frobnicate: true\n",
			wantErr:  true,
			cueErr:   true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.scenario, func(t *testing.T) {
			t.Parallel()
			cfg, err := model.LoadConfig(strings.NewReader(tt.given))
			if tt.wantErr {
				require.Error(t, err)
				if tt.cueErr {
					var cuerr model.CueError
					require.True(t, errors.As(err, &cuerr), "expected CueError, got %v", err)
				}
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.then, cfg)
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := model.LoadConfig(strings.NewReader("version: 0\n"))
	require.NoError(t, err)
	require.Empty(t, cfg.Classpath)
	require.Empty(t, cfg.Exclude)
	require.False(t, cfg.Digest)
	require.Equal(t, 4, cfg.Jobs)
	require.False(t, cfg.Verbose)
	require.Equal(t, model.LogStderr, cfg.Log)
}

func TestLoadConfigExpandsEnv(t *testing.T) {
	t.Setenv("CLASS_LENS_TEST_HOME", "/opt/app")
	cfg, err := model.LoadConfig(strings.NewReader(
		"classpath: [\"${CLASS_LENS_TEST_HOME}/lib/app.jar\"]\n"))
	require.NoError(t, err)
	require.Equal(t, []string{"/opt/app/lib/app.jar"}, cfg.Classpath)
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()
	cfg := model.DefaultConfig()
	require.Equal(t, model.LogStderr, cfg.Log)
	require.NotZero(t, cfg.Jobs)
	require.Empty(t, cfg.Classpath)
}
