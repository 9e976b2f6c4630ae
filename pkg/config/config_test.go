package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/chart-image-kit/pkg/domain"
	"github.com/shouni/chart-image-kit/pkg/generator"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	t.Run("YAML を読み込み既定値とマージする", func(t *testing.T) {
		path := writeFile(t, "chartgen.yaml", `
output_dir: ./out
image_format: jpg
overlay_opacity: 0.3
sizes:
  bar: {width: 400, height: 250}
`)
		cfg, err := LoadFile(path)
		require.NoError(t, err)

		assert.Equal(t, "./out", cfg.OutputDir)
		assert.Equal(t, "jpg", cfg.ImageFormat)
		assert.Equal(t, 0.3, *cfg.OverlayOpacity)
		assert.Equal(t, 95, cfg.JPEGQuality)
		assert.Equal(t, generator.Size{Width: 400, Height: 250}, cfg.Sizes["bar"])
		assert.Equal(t, generator.Size{Width: 700, Height: 500}, cfg.Sizes["choropleth"])
	})

	t.Run("JSON を読み込む", func(t *testing.T) {
		path := writeFile(t, "chartgen.json", `{"jpeg_quality": 80, "default_size": {"width": 224, "height": 224}}`)
		cfg, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, 80, cfg.JPEGQuality)
		assert.Equal(t, generator.Size{Width: 224, Height: 224}, cfg.DefaultSize)
	})

	t.Run("環境変数を展開する", func(t *testing.T) {
		t.Setenv("CHARTGEN_TEST_DIR", "/tmp/charts-env")
		path := writeFile(t, "chartgen.yml", "output_dir: ${CHARTGEN_TEST_DIR}\n")
		cfg, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "/tmp/charts-env", cfg.OutputDir)
	})

	t.Run("不透明度 0 を明示できる", func(t *testing.T) {
		path := writeFile(t, "chartgen.yaml", "overlay_opacity: 0\n")
		cfg, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, 0.0, *cfg.OverlayOpacity)
	})

	t.Run("存在しないファイル", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.ErrorIs(t, err, ErrConfigNotFound)
	})

	t.Run("未対応の拡張子", func(t *testing.T) {
		path := writeFile(t, "chartgen.toml", "output_dir = 'x'")
		_, err := LoadFile(path)
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("ディレクトリを指定した場合", func(t *testing.T) {
		_, err := LoadFile(t.TempDir())
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("壊れた YAML", func(t *testing.T) {
		path := writeFile(t, "chartgen.yaml", "output_dir: [unterminated")
		_, err := LoadFile(path)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		config string
	}{
		{"画像形式", "image_format: gif"},
		{"不透明度", "overlay_opacity: 1.5"},
		{"JPEG 品質", "jpeg_quality: 101"},
		{"既定サイズ", "default_size: {width: -1, height: 10}"},
		{"未知の種別", "sizes:\n  radar: {width: 10, height: 10}"},
		{"種別ごとのサイズ", "sizes:\n  pie: {width: 0, height: 10}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.config), FormatYAML)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestConfig_Settings(t *testing.T) {
	cfg, err := Load(strings.NewReader("image_format: PNG\nsizes:\n  Treemap: {width: 600, height: 600}\n"), FormatYAML)
	require.NoError(t, err)

	s := cfg.Settings()
	assert.Equal(t, "png", s.ImageFormat)
	assert.Equal(t, generator.Size{Width: 600, Height: 600}, s.SizeFor(domain.ChartTreemap))
	assert.Equal(t, generator.Size{Width: 300, Height: 300}, s.SizeFor(domain.ChartBar))
	assert.Equal(t, 0.15, s.OverlayOpacity)
}
