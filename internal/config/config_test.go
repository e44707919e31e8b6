package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644))
	return dir
}

func TestLoadConfigDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	dataDir := t.TempDir()
	dir := writeConfig(t, `
server:
  mode: debug
data:
  database_files:
    - `+filepath.Join(dataDir, "db.json")+`
  learning_dir: `+filepath.Join(dataDir, "learning")+`
storage:
  type: local
  local_path: `+filepath.Join(dataDir, "storage")+`
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []int{1, 3, 7, 14, 30}, cfg.Learning.ReviewIntervals)
	assert.Equal(t, 10, cfg.Learning.DailyGoal)
	assert.Equal(t, 5, cfg.Learning.StudyCreditMinutes)
	assert.Equal(t, "03:00", cfg.Snapshot.DailyAt)

	// 학습 디렉터리가 만들어진다
	info, err := os.Stat(cfg.Data.LearningDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLoadConfigRejectsEmptyDatabaseList(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	dir := writeConfig(t, `
server:
  mode: debug
data:
  database_files: []
`)

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}

func TestLoadConfigRejectsBadIntervals(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	dataDir := t.TempDir()
	dir := writeConfig(t, `
data:
  database_files:
    - `+filepath.Join(dataDir, "db.json")+`
  learning_dir: `+filepath.Join(dataDir, "learning")+`
learning:
  review_intervals: [1, -3, 7]
`)

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}
