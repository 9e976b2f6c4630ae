package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/shouni/chart-image-kit/pkg/domain"
	"github.com/shouni/chart-image-kit/pkg/generator"
)

var (
	ErrConfigNotFound    = errors.New("config file not found")
	ErrInvalidConfig     = errors.New("invalid config")
	ErrUnsupportedFormat = errors.New("unsupported config format")
)

// Format は設定ファイルの形式です。
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Config は設定ファイルの内容です。省略された項目には既定値が入ります。
type Config struct {
	OutputDir      string                    `yaml:"output_dir" json:"output_dir"`
	ImageFormat    string                    `yaml:"image_format" json:"image_format"`
	OverlayOpacity *float64                  `yaml:"overlay_opacity" json:"overlay_opacity"`
	JPEGQuality    int                       `yaml:"jpeg_quality" json:"jpeg_quality"`
	DefaultSize    generator.Size            `yaml:"default_size" json:"default_size"`
	Sizes          map[string]generator.Size `yaml:"sizes" json:"sizes"`
}

// Default は既定の設定を返します。
func Default() *Config {
	s := generator.DefaultSettings()
	sizes := make(map[string]generator.Size, len(s.Sizes))
	for t, size := range s.Sizes {
		sizes[string(t)] = size
	}
	opacity := s.OverlayOpacity
	return &Config{
		OutputDir:      s.OutputDir,
		ImageFormat:    s.ImageFormat,
		OverlayOpacity: &opacity,
		JPEGQuality:    s.JPEGQuality,
		DefaultSize:    s.DefaultSize,
		Sizes:          sizes,
	}
}

// LoadFile は拡張子から形式を判定して設定ファイルを読み込みます。
func LoadFile(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("設定ファイルにアクセスできません: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrInvalidConfig, path)
	}

	var format Format
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		format = FormatYAML
	case ".json":
		format = FormatJSON
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("設定ファイルを開けません: %w", err)
	}
	defer f.Close()

	return Load(f, format)
}

// Load は reader から設定を読み込み、環境変数を展開してから検証します。
// sizes は既定のサイズ表に上書きでマージされます。
func Load(r io.Reader, format Format) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("設定の読み込みに失敗しました: %w", err)
	}
	data = []byte(os.ExpandEnv(string(data)))

	var file Config
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &file)
	case FormatJSON:
		err = json.Unmarshal(data, &file)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	cfg := Default()
	cfg.merge(file)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) merge(o Config) {
	if o.OutputDir != "" {
		c.OutputDir = o.OutputDir
	}
	if o.ImageFormat != "" {
		c.ImageFormat = o.ImageFormat
	}
	if o.OverlayOpacity != nil {
		c.OverlayOpacity = o.OverlayOpacity
	}
	if o.JPEGQuality != 0 {
		c.JPEGQuality = o.JPEGQuality
	}
	if o.DefaultSize != (generator.Size{}) {
		c.DefaultSize = o.DefaultSize
	}
	for k, v := range o.Sizes {
		c.Sizes[strings.ToLower(k)] = v
	}
}

// Validate は設定値の範囲と種別名を検証します。
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("%w: output_dir is required", ErrInvalidConfig)
	}
	switch strings.ToLower(c.ImageFormat) {
	case "png", "jpg", "jpeg":
	default:
		return fmt.Errorf("%w: image_format must be png or jpg, got %q", ErrInvalidConfig, c.ImageFormat)
	}
	if c.OverlayOpacity == nil || *c.OverlayOpacity < 0 || *c.OverlayOpacity > 1 {
		return fmt.Errorf("%w: overlay_opacity must be within [0, 1]", ErrInvalidConfig)
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("%w: jpeg_quality must be within [1, 100], got %d", ErrInvalidConfig, c.JPEGQuality)
	}
	if c.DefaultSize.Width <= 0 || c.DefaultSize.Height <= 0 {
		return fmt.Errorf("%w: default_size must be positive", ErrInvalidConfig)
	}
	for name, size := range c.Sizes {
		if _, err := domain.ParseChartType(name); err != nil {
			return fmt.Errorf("%w: sizes: %v", ErrInvalidConfig, err)
		}
		if size.Width <= 0 || size.Height <= 0 {
			return fmt.Errorf("%w: sizes.%s must be positive", ErrInvalidConfig, name)
		}
	}
	return nil
}

// Settings は ChartCore 用の設定に変換します。Validate 済みであることが前提です。
func (c *Config) Settings() generator.Settings {
	sizes := make(map[domain.ChartType]generator.Size, len(c.Sizes))
	for name, size := range c.Sizes {
		if t, err := domain.ParseChartType(name); err == nil {
			sizes[t] = size
		}
	}
	return generator.Settings{
		OutputDir:      c.OutputDir,
		ImageFormat:    strings.ToLower(c.ImageFormat),
		DefaultSize:    c.DefaultSize,
		Sizes:          sizes,
		OverlayOpacity: *c.OverlayOpacity,
		JPEGQuality:    c.JPEGQuality,
	}
}
