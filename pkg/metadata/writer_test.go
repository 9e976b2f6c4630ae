package metadata

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shouni/chart-image-kit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSidecarPath(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "bar_42.json"), SidecarPath(filepath.Join("out", "bar_42.png")))
	assert.Equal(t, "stacked_bar_100_7.json", SidecarPath("stacked_bar_100_7.jpg"))
}

func TestWriteAndRead(t *testing.T) {
	rec := domain.ChartRecord{
		Filename:  "pie_3.png",
		ChartType: domain.ChartPie,
		AnswerKey: domain.AnswerMaxCategory,
		Answer:    "B",
		Variation: domain.Variation{ColorScheme: "set2", NumSlices: 4},
		Question:  "Which category has the largest proportion?",
	}

	t.Run("2スペースのインデントで書き出す", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pie_3.json")
		require.NoError(t, Write(path, rec))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "{\n  \"answer\": \"B\",\n"))
		assert.Contains(t, string(data), "\n    \"color_scheme\": \"set2\"")
		assert.True(t, strings.HasSuffix(string(data), "}\n"))

		got, err := Read(path)
		require.NoError(t, err)
		assert.Equal(t, rec, got)
	})

	t.Run("既存のサイドカーを置き換えて一時ファイルを残さない", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "pie_3.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"stale": true}`), 0o644))

		require.NoError(t, Write(path, rec))

		got, err := Read(path)
		require.NoError(t, err)
		assert.Equal(t, rec, got)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("ディレクトリがない場合はエラー", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "pie_3.json")
		err := Write(path, rec)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("壊れた JSON は読み込みエラー", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
		_, err := Read(path)
		assert.Error(t, err)
	})
}
