package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.StringP("experiment", "e", DefaultExperiment, "")
	fs.StringP("out", "o", DefaultOutDir, "")
	fs.String("plot", "", "")
	fs.Bool("no-csv", false, "")
	fs.String("format", DefaultFormat, "")
	fs.String("config", "", "")
	return fs
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "connective.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("", testFlags())
	require.NoError(t, err)

	assert.Equal(t, DefaultExperiment, cfg.Experiment)
	assert.Equal(t, DefaultOutDir, cfg.OutDir)
	assert.Equal(t, DefaultFormat, cfg.Format)
	assert.True(t, cfg.WriteCSV)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, cfg.Plot)
	assert.Empty(t, cfg.File)
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfig(t, "experiment: four_corner\nout_dir: results\nplot: plot.svg\nwrite_csv: false\n")

	cfg, err := LoadConfig(path, testFlags())
	require.NoError(t, err)

	assert.Equal(t, "four_corner", cfg.Experiment)
	assert.Equal(t, "results", cfg.OutDir)
	assert.Equal(t, "plot.svg", cfg.Plot)
	assert.False(t, cfg.WriteCSV)
	assert.Equal(t, path, cfg.File)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), testFlags())
	require.Error(t, err)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "out_dir: from-file\n")
	t.Setenv("CONNECTIVE_OUT_DIR", "from-env")

	cfg, err := LoadConfig(path, testFlags())
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.OutDir)
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("CONNECTIVE_EXPERIMENT", "commutative")
	t.Setenv("CONNECTIVE_OUT_DIR", "from-env")

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"-e", "four_corner"}))

	cfg, err := LoadConfig("", fs)
	require.NoError(t, err)
	assert.Equal(t, "four_corner", cfg.Experiment)
	// Unchanged flags leave lower layers alone.
	assert.Equal(t, "from-env", cfg.OutDir)
}

func TestLoadConfig_FlagNamesMapToKeys(t *testing.T) {
	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--out", "results", "--no-csv", "--config", "ignored.yaml"}))

	cfg, err := LoadConfig("", fs)
	require.NoError(t, err)
	assert.Equal(t, "results", cfg.OutDir)
	assert.False(t, cfg.WriteCSV)
}

func TestLoadConfig_InvalidFormat(t *testing.T) {
	path := writeConfig(t, "format: xml\n")

	_, err := LoadConfig(path, testFlags())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestLoadConfig_NilFlags(t *testing.T) {
	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultExperiment, cfg.Experiment)
}
