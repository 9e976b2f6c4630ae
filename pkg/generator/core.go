package generator

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/shouni/chart-image-kit/pkg/domain"
	"github.com/shouni/chart-image-kit/pkg/imgutil"
	"github.com/shouni/chart-image-kit/pkg/metadata"
	"github.com/shouni/chart-image-kit/pkg/utils"
)

// Settings は ChartCore の出力先と後処理の設定です。
type Settings struct {
	OutputDir      string
	ImageFormat    string // png または jpg
	DefaultSize    Size
	Sizes          map[domain.ChartType]Size
	OverlayOpacity float64
	JPEGQuality    int
}

// DefaultSettings は既定の設定を返します。
func DefaultSettings() Settings {
	return Settings{
		OutputDir:      DefaultOutputDir,
		ImageFormat:    DefaultImageFormat,
		DefaultSize:    Size{Width: DefaultWidth, Height: DefaultHeight},
		Sizes:          DefaultSizes(),
		OverlayOpacity: imgutil.DefaultOverlayOpacity,
		JPEGQuality:    imgutil.DefaultJPEGQuality,
	}
}

// SizeFor はチャート種別の描画サイズを返します。
func (s Settings) SizeFor(t domain.ChartType) Size {
	if size, ok := s.Sizes[t]; ok {
		return size
	}
	return s.DefaultSize
}

// ChartCore はデータ合成・描画・正規化・メタデータ出力を1回の呼び出しで行う基盤クラスです。
// 呼び出しごとに乱数生成器を作るため、複数の goroutine から同時に使えます。
type ChartCore struct {
	renderer ChartRenderer
	settings Settings
}

// NewChartCore は依存関係を注入して ChartCore を初期化します。
// 出力ディレクトリが存在しない場合は作成します。
func NewChartCore(renderer ChartRenderer, settings Settings) (*ChartCore, error) {
	if renderer == nil {
		return nil, fmt.Errorf("renderer is required")
	}
	if settings.OutputDir == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	if settings.DefaultSize.Width <= 0 || settings.DefaultSize.Height <= 0 {
		return nil, fmt.Errorf("default size must be positive: %+v", settings.DefaultSize)
	}
	format := strings.ToLower(settings.ImageFormat)
	switch format {
	case "":
		format = DefaultImageFormat
	case "png", "jpg", "jpeg":
	default:
		return nil, fmt.Errorf("unsupported image format: %s", settings.ImageFormat)
	}
	settings.ImageFormat = format
	if settings.OverlayOpacity < 0 || settings.OverlayOpacity > 1 {
		return nil, fmt.Errorf("%w: %v", imgutil.ErrInvalidOpacity, settings.OverlayOpacity)
	}

	if err := os.MkdirAll(settings.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("出力ディレクトリの作成に失敗しました: %w", err)
	}

	return &ChartCore{renderer: renderer, settings: settings}, nil
}

// Settings は現在の設定を返します。
func (c *ChartCore) Settings() Settings {
	return c.settings
}

// Generate はチャート画像とメタデータを1組生成します。
// 同じシードとオプションからは同じデータ・画像・答えが得られます。
func (c *ChartCore) Generate(ctx context.Context, req domain.ChartRequest) (*domain.ChartResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.Options == nil {
		return nil, fmt.Errorf("%w: options are required", domain.ErrInvalidOptions)
	}

	chartType := req.Options.ChartType()
	seed := utils.DereferenceSeed(req.Seed)
	fail := func(stage Stage, err error) error {
		return &GenerationError{ChartType: chartType, Seed: seed, Stage: stage, Err: err}
	}

	if err := req.Options.Validate(); err != nil {
		return nil, fail(StageValidate, err)
	}

	// 乱数はオーバーレイ色、データ、スタイルの順に引く
	rng := utils.NewRand(seed)
	overlay := utils.PastelRGBA(rng)
	size := c.settings.SizeFor(chartType)

	p, err := synthesize(ctx, rng, req.Options, size, overlay)
	if err != nil {
		return nil, fail(StageSynthesize, err)
	}

	baseName := fmt.Sprintf("%s_%d", chartType, seed)
	imagePath := filepath.Join(c.settings.OutputDir, baseName+"."+c.settings.ImageFormat)
	p.record.Filename = filepath.Base(imagePath)
	p.record.Question = labelOr(req.Question, DefaultQuestions[chartType])

	if err := c.renderToFile(ctx, p.spec, imagePath); err != nil {
		return nil, fail(StageRender, err)
	}

	opts := imgutil.NormalizeOptions{
		Size:           size.Width,
		OverlayOpacity: &c.settings.OverlayOpacity,
		JPEGQuality:    c.settings.JPEGQuality,
	}
	if p.overlay {
		opts.Overlay = &overlay
	}
	if err := imgutil.NormalizeFile(imagePath, opts); err != nil {
		c.discard(ctx, imagePath)
		return nil, fail(StageNormalize, err)
	}

	metaPath := metadata.SidecarPath(imagePath)
	if err := metadata.Write(metaPath, p.record); err != nil {
		c.discard(ctx, imagePath)
		return nil, fail(StageMetadata, err)
	}

	slog.InfoContext(ctx, "チャートを生成しました",
		"chart_type", chartType, "seed", seed, "path", imagePath, "answer", p.record.Answer)

	return &domain.ChartResult{
		ImagePath:    imagePath,
		MetadataPath: metaPath,
		Record:       p.record,
		UsedSeed:     seed,
	}, nil
}

// discard はメタデータを伴わない画像を残さないよう、途中まで書いた画像を消します。
func (c *ChartCore) discard(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		slog.WarnContext(ctx, "途中の画像を削除できませんでした", "path", path, "error", err)
	}
}

func (c *ChartCore) renderToFile(ctx context.Context, spec domain.ChartSpec, path string) error {
	var buf bytes.Buffer
	if err := c.renderer.Render(ctx, spec, &buf); err != nil {
		return err
	}
	if _, err := imgutil.DecodeBytes(buf.Bytes()); err != nil {
		return fmt.Errorf("描画結果を画像として読み込めません: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("画像の書き込みに失敗しました (%s): %w", path, err)
	}
	return nil
}
