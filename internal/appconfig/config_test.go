package appconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmptyPathReturnsZeroProfile(t *testing.T) {
	p, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, &Profile{}, p)
}

func TestLoad_MissingFileReturnsZeroProfile(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, &Profile{}, p)
}

func TestLoad_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.yaml")
	content := `
default_unit: celsius
output_dir: /data/csv
log_dir: /data/logs
log_retain_days: 30
checksum_mode: twos_complement
alarm_overrides:
  N12345:
    cht: 420
    tit: 1650
    oil: 245
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "celsius", p.DefaultUnit)
	assert.Equal(t, "/data/csv", p.OutputDir)
	assert.Equal(t, "/data/logs", p.LogDir)
	assert.Equal(t, 30, p.LogRetainDays)
	assert.Equal(t, "twos_complement", p.ChecksumMode)
	require.Contains(t, p.AlarmOverrides, "N12345")
	assert.Equal(t, 420, p.AlarmOverrides["N12345"].CHT)
	assert.Equal(t, 1650, p.AlarmOverrides["N12345"].TIT)
	assert.Equal(t, 245, p.AlarmOverrides["N12345"].Oil)
}

func TestLoad_MalformedYAMLErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("not: [valid"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
