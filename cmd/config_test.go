package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/coreos/pkg/capnslog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig(t *testing.T) {
	testcases := []struct {
		name     string
		in       string
		expected Config
		err      string
	}{
		{
			name:     "empty file keeps defaults",
			in:       "",
			expected: DefaultConfig(),
		},
		{
			name: "all fields",
			in:   "prompt: 'lox> '\nhistory_file: /tmp/lox.history\nlog_level: debug\necho: false\n",
			expected: Config{
				Prompt:      "lox> ",
				HistoryFile: "/tmp/lox.history",
				LogLevel:    "debug",
				Echo:        false,
			},
		},
		{
			name:     "partial override",
			in:       "prompt: '$ '\n",
			expected: Config{Prompt: "$ ", LogLevel: "NOTICE", Echo: true},
		},
		{
			name: "unknown field",
			in:   "colour: true\n",
			err:  "field colour not found",
		},
		{
			name: "bad level",
			in:   "log_level: loud\n",
			err:  "invalid config",
		},
		{
			name: "bad type",
			in:   "echo: [1]\n",
			err:  "invalid config",
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "treelox.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tc.in), 0o600))

			cfg, err := LoadConfig(path)
			if tc.err != "" {
				assert.ErrorContains(t, err, tc.err)
				assert.ErrorIs(t, err, ErrConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, cfg)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfigLevel(t *testing.T) {
	for in, expected := range map[string]capnslog.LogLevel{
		"NOTICE":  capnslog.NOTICE,
		"debug":   capnslog.DEBUG,
		"t":       capnslog.TRACE,
		"Warning": capnslog.WARNING,
	} {
		level, err := Config{LogLevel: in}.Level()
		require.NoError(t, err, in)
		assert.Equal(t, expected, level, in)
	}

	_, err := Config{LogLevel: strings.Repeat("x", 3)}.Level()
	assert.Error(t, err)
}
