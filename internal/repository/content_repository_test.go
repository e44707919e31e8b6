package repository

import (
	"os"
	"path/filepath"
	"testing"

	"hanja_edu_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mainDatabaseJSON = `{
  "basic": {
    "name": "기초 한자",
    "levels": {
      "level_8": {
        "name": "8급",
        "characters": [
          {"character": "水", "meaning": "물 수", "pronunciation": "수", "stroke_count": 4, "level": "8급"},
          {"character": "火", "meaning": "불 화", "pronunciation": "화", "stroke_count": 4, "level": "8급"},
          {"character": "水", "meaning": "중복된 물 수", "pronunciation": "수", "stroke_count": 4, "level": "8급"}
        ]
      }
    }
  }
}`

const backupDatabaseJSON = `{
  "basic": {
    "name": "백업",
    "levels": {
      "level_8": {
        "name": "8급",
        "characters": [
          {"character": "木", "meaning": "나무 목", "pronunciation": "목", "stroke_count": 4, "level": "8급"}
        ]
      }
    }
  }
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestGradeConversion(t *testing.T) {
	assert.Equal(t, 1, GradeFromLevel("8급"))
	assert.Equal(t, 8, GradeFromLevel("1급"))
	assert.Equal(t, 0, GradeFromLevel("없는급"))

	assert.Equal(t, "8급", LevelFromGrade(1))
	assert.Equal(t, "1급", LevelFromGrade(8))
	assert.Equal(t, "", LevelFromGrade(99))
}

func TestContentRepositoryLoads(t *testing.T) {
	dir := t.TempDir()
	dbPath := writeFile(t, dir, "hanja_database_main.json", mainDatabaseJSON)

	repo, err := NewContentRepository(config.DataConfig{DatabaseFiles: []string{dbPath}})
	require.NoError(t, err)

	t.Run("duplicates keep the first occurrence", func(t *testing.T) {
		assert.Equal(t, 2, repo.Count())
		ch := repo.ByCharacter("水")
		require.NotNil(t, ch)
		assert.Equal(t, "물 수", ch.Meaning)
	})

	t.Run("grade is derived from the level name", func(t *testing.T) {
		ch := repo.ByCharacter("火")
		require.NotNil(t, ch)
		assert.Equal(t, 1, ch.Grade)
		assert.Len(t, repo.ByGrade(1), 2)
	})

	t.Run("source reports the backing file", func(t *testing.T) {
		assert.Equal(t, dbPath, repo.Source())
	})
}

func TestContentRepositoryCandidateOrder(t *testing.T) {
	dir := t.TempDir()
	backupPath := writeFile(t, dir, "hanja_database_backup.json", backupDatabaseJSON)
	missing := filepath.Join(dir, "hanja_database_main.json")

	// 첫 후보가 없으면 다음 후보로 넘어간다
	repo, err := NewContentRepository(config.DataConfig{
		DatabaseFiles: []string{missing, backupPath},
	})
	require.NoError(t, err)
	assert.Equal(t, backupPath, repo.Source())
	assert.NotNil(t, repo.ByCharacter("木"))
	assert.Nil(t, repo.ByCharacter("水"))
}

func TestContentRepositoryNoReadableCandidate(t *testing.T) {
	dir := t.TempDir()
	_, err := NewContentRepository(config.DataConfig{
		DatabaseFiles: []string{filepath.Join(dir, "missing.json")},
	})
	assert.Error(t, err)
}

func TestContentRepositoryReload(t *testing.T) {
	dir := t.TempDir()
	dbPath := writeFile(t, dir, "hanja_database_main.json", backupDatabaseJSON)

	repo, err := NewContentRepository(config.DataConfig{DatabaseFiles: []string{dbPath}})
	require.NoError(t, err)
	require.Equal(t, 1, repo.Count())

	// 파일 교체 후 재적재
	writeFile(t, dir, "hanja_database_main.json", mainDatabaseJSON)
	require.NoError(t, repo.Reload())
	assert.Equal(t, 2, repo.Count())
	assert.NotNil(t, repo.ByCharacter("水"))
}

func TestStrokeData(t *testing.T) {
	dir := t.TempDir()
	dbPath := writeFile(t, dir, "db.json", mainDatabaseJSON)
	strokesDir := filepath.Join(dir, "strokes")
	require.NoError(t, os.MkdirAll(strokesDir, 0755))
	writeFile(t, strokesDir, "水.json", `{"strokes":[]}`)

	repo, err := NewContentRepository(config.DataConfig{
		DatabaseFiles: []string{dbPath},
		StrokesDir:    strokesDir,
	})
	require.NoError(t, err)

	raw, err := repo.StrokeData("水")
	require.NoError(t, err)
	assert.JSONEq(t, `{"strokes":[]}`, string(raw))

	raw, err = repo.StrokeData("火")
	require.NoError(t, err)
	assert.Nil(t, raw)
}
