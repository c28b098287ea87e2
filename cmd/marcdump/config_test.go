package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/joshuapare/marckit/pkg/charset"
	"github.com/joshuapare/marckit/pkg/marc"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, "line", cfg.Format)
	require.Equal(t, " $", cfg.SubfieldSeparator)
	require.Equal(t, "\n", cfg.LineTerminator)
	require.Equal(t, "info", cfg.Logging.Level)

	opts, err := cfg.Options()
	require.NoError(t, err)
	require.Equal(t, marc.ModeLine, opts.Mode)
	require.Nil(t, opts.Converter)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marcdump.yaml")
	data, err := yaml.Marshal(map[string]any{
		"format":       "marcxchange",
		"leader_spec":  "9='a'",
		"from_charset": "iso-8859-1",
		"logging":      map[string]any{"level": "debug"},
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "marcxchange", cfg.Format)
	require.Equal(t, "debug", cfg.Logging.Level)
	require.Equal(t, " $", cfg.SubfieldSeparator, "unset keys keep defaults")

	opts, err := cfg.Options()
	require.NoError(t, err)
	require.Equal(t, marc.ModeMarcXchange, opts.Mode)
	require.Equal(t, "9='a'", opts.LeaderSpec)
	require.NotNil(t, opts.Converter)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: [unclosed"), 0o600))
	_, err = LoadConfig(path)
	require.Error(t, err)
}

func TestConfigOptions_Errors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Format = "json"
	_, err := cfg.Options()
	require.ErrorIs(t, err, marc.ErrUnknownMode)

	cfg = DefaultConfig()
	cfg.ToCharset = "no-such-charset"
	_, err = cfg.Options()
	require.ErrorIs(t, err, charset.ErrUnsupported)
}
