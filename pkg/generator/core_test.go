package generator

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/chart-image-kit/pkg/domain"
	"github.com/shouni/chart-image-kit/pkg/imgutil"
	"github.com/shouni/chart-image-kit/pkg/metadata"
	"github.com/shouni/chart-image-kit/pkg/utils"
)

func testSettings(t *testing.T) Settings {
	t.Helper()
	s := DefaultSettings()
	s.OutputDir = filepath.Join(t.TempDir(), "charts")
	return s
}

func seedPtr(v int64) *int64 { return &v }

func TestNewChartCore(t *testing.T) {
	t.Run("レンダラーが nil ならエラー", func(t *testing.T) {
		_, err := NewChartCore(nil, testSettings(t))
		assert.Error(t, err)
	})

	t.Run("出力ディレクトリが空ならエラー", func(t *testing.T) {
		s := testSettings(t)
		s.OutputDir = ""
		_, err := NewChartCore(newMockRenderer(), s)
		assert.Error(t, err)
	})

	t.Run("未対応の画像形式はエラー", func(t *testing.T) {
		s := testSettings(t)
		s.ImageFormat = "gif"
		_, err := NewChartCore(newMockRenderer(), s)
		assert.Error(t, err)
	})

	t.Run("不透明度が範囲外ならエラー", func(t *testing.T) {
		s := testSettings(t)
		s.OverlayOpacity = 1.5
		_, err := NewChartCore(newMockRenderer(), s)
		assert.ErrorIs(t, err, imgutil.ErrInvalidOpacity)
	})

	t.Run("出力ディレクトリを作成する", func(t *testing.T) {
		s := testSettings(t)
		core, err := NewChartCore(newMockRenderer(), s)
		require.NoError(t, err)
		assert.DirExists(t, s.OutputDir)
		assert.Equal(t, "png", core.Settings().ImageFormat)
	})
}

func TestChartCore_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("棒グラフの画像とメタデータを書き出す", func(t *testing.T) {
		renderer := newMockRenderer()
		s := testSettings(t)
		core, err := NewChartCore(renderer, s)
		require.NoError(t, err)

		res, err := core.Generate(ctx, domain.ChartRequest{Seed: seedPtr(42), Options: domain.BarOptions{}})
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(s.OutputDir, "bar_42.png"), res.ImagePath)
		assert.Equal(t, filepath.Join(s.OutputDir, "bar_42.json"), res.MetadataPath)
		assert.Equal(t, int64(42), res.UsedSeed)

		spec := renderer.lastSpec()
		assert.ElementsMatch(t, []string{"A", "B", "C", "D"}, spec.Categories)

		rec, err := metadata.Read(res.MetadataPath)
		require.NoError(t, err)
		assert.Equal(t, "bar_42.png", rec.Filename)
		assert.Equal(t, domain.ChartBar, rec.ChartType)
		assert.Equal(t, domain.AnswerMaxCategory, rec.AnswerKey)
		assert.Equal(t, DefaultQuestions[domain.ChartBar], rec.Question)
		assert.Equal(t, 4, rec.Variation.NumBars)

		want := spec.Categories[0]
		best := spec.Values()[0]
		for i, v := range spec.Values() {
			if v > best {
				best, want = v, spec.Categories[i]
			}
		}
		assert.Equal(t, want, rec.Answer)
	})

	t.Run("画像は正方形に正規化されオーバーレイが重なる", func(t *testing.T) {
		renderer := newMockRenderer()
		core, err := NewChartCore(renderer, testSettings(t))
		require.NoError(t, err)

		res, err := core.Generate(ctx, domain.ChartRequest{Seed: seedPtr(7), Options: domain.PieOptions{}})
		require.NoError(t, err)

		got, err := imaging.Open(res.ImagePath)
		require.NoError(t, err)
		assert.Equal(t, 300, got.Bounds().Dx())
		assert.Equal(t, 300, got.Bounds().Dy())

		overlay := utils.PastelRGBA(utils.NewRand(7))
		want, err := imgutil.Normalize(mockChartImage(300, 200), 300, &overlay, imgutil.DefaultOverlayOpacity)
		require.NoError(t, err)
		assert.Equal(t, want.Pix, imaging.Clone(got).Pix)
	})

	t.Run("ツリーマップにはオーバーレイを重ねない", func(t *testing.T) {
		renderer := newMockRenderer()
		core, err := NewChartCore(renderer, testSettings(t))
		require.NoError(t, err)

		res, err := core.Generate(ctx, domain.ChartRequest{Seed: seedPtr(3), Options: domain.TreemapOptions{}})
		require.NoError(t, err)

		got, err := imaging.Open(res.ImagePath)
		require.NoError(t, err)
		assert.Equal(t, 500, got.Bounds().Dx())

		want, err := imgutil.Normalize(mockChartImage(300, 200), 500, nil, imgutil.DefaultOverlayOpacity)
		require.NoError(t, err)
		assert.Equal(t, want.Pix, imaging.Clone(got).Pix)

		overlay := utils.PastelRGBA(utils.NewRand(3))
		assert.Equal(t, overlay.String(), renderer.lastSpec().Background)
		assert.Equal(t, overlay.String(), res.Record.Variation.BackgroundColor)
	})

	t.Run("同じシードからは同じ出力が得られる", func(t *testing.T) {
		var images, metas [][]byte
		for range 2 {
			core, err := NewChartCore(newMockRenderer(), testSettings(t))
			require.NoError(t, err)
			res, err := core.Generate(ctx, domain.ChartRequest{Seed: seedPtr(99), Options: domain.HistogramOptions{Distribution: domain.DistBimodal}})
			require.NoError(t, err)

			img, err := os.ReadFile(res.ImagePath)
			require.NoError(t, err)
			meta, err := os.ReadFile(res.MetadataPath)
			require.NoError(t, err)
			images = append(images, img)
			metas = append(metas, meta)
		}
		assert.Equal(t, images[0], images[1])
		assert.Equal(t, metas[0], metas[1])
	})

	t.Run("シードが nil なら 0 として扱う", func(t *testing.T) {
		core, err := NewChartCore(newMockRenderer(), testSettings(t))
		require.NoError(t, err)

		res, err := core.Generate(ctx, domain.ChartRequest{Options: domain.LineOptions{}, Question: "Where is the peak?"})
		require.NoError(t, err)
		assert.Equal(t, int64(0), res.UsedSeed)
		assert.Equal(t, "line_0.png", res.Record.Filename)
		assert.Equal(t, "Where is the peak?", res.Record.Question)
	})

	t.Run("JPEG 形式で出力できる", func(t *testing.T) {
		s := testSettings(t)
		s.ImageFormat = "jpg"
		core, err := NewChartCore(newMockRenderer(), s)
		require.NoError(t, err)

		res, err := core.Generate(ctx, domain.ChartRequest{Seed: seedPtr(1), Options: domain.ScatterOptions{}})
		require.NoError(t, err)
		assert.Equal(t, ".jpg", filepath.Ext(res.ImagePath))

		data, err := os.ReadFile(res.ImagePath)
		require.NoError(t, err)
		_, err = png.Decode(bytes.NewReader(data))
		assert.Error(t, err, "PNG のままではないはずなのだ")
		_, err = imaging.Decode(bytes.NewReader(data))
		assert.NoError(t, err)
	})
}

func TestChartCore_GenerateErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("オプションが nil ならエラー", func(t *testing.T) {
		core, err := NewChartCore(newMockRenderer(), testSettings(t))
		require.NoError(t, err)
		_, err = core.Generate(ctx, domain.ChartRequest{})
		assert.ErrorIs(t, err, domain.ErrInvalidOptions)
	})

	t.Run("不正なオプションは validate 段階で失敗する", func(t *testing.T) {
		core, err := NewChartCore(newMockRenderer(), testSettings(t))
		require.NoError(t, err)
		_, err = core.Generate(ctx, domain.ChartRequest{Options: domain.BarOptions{NumBars: 27}})

		var genErr *GenerationError
		require.ErrorAs(t, err, &genErr)
		assert.Equal(t, StageValidate, genErr.Stage)
		assert.Equal(t, domain.ChartBar, genErr.ChartType)
		assert.ErrorIs(t, err, domain.ErrInvalidOptions)
	})

	t.Run("描画の失敗は render 段階として報告される", func(t *testing.T) {
		renderer := newMockRenderer()
		renderer.err = errMockRender
		s := testSettings(t)
		core, err := NewChartCore(renderer, s)
		require.NoError(t, err)

		_, err = core.Generate(ctx, domain.ChartRequest{Seed: seedPtr(5), Options: domain.PieOptions{}})

		var genErr *GenerationError
		require.ErrorAs(t, err, &genErr)
		assert.Equal(t, StageRender, genErr.Stage)
		assert.Equal(t, int64(5), genErr.Seed)
		assert.ErrorIs(t, err, errMockRender)
		assert.NoFileExists(t, filepath.Join(s.OutputDir, "pie_5.json"))
	})

	t.Run("画像でない描画結果は render 段階で失敗する", func(t *testing.T) {
		renderer := newMockRenderer()
		renderer.broken = true
		s := testSettings(t)
		core, err := NewChartCore(renderer, s)
		require.NoError(t, err)

		_, err = core.Generate(ctx, domain.ChartRequest{Options: domain.LineOptions{}})

		var genErr *GenerationError
		require.ErrorAs(t, err, &genErr)
		assert.Equal(t, StageRender, genErr.Stage)
		assert.NoFileExists(t, filepath.Join(s.OutputDir, "line_0.png"))
	})

	t.Run("正規化に失敗したら画像を残さない", func(t *testing.T) {
		s := testSettings(t)
		core, err := NewChartCore(newMockRenderer(), s)
		require.NoError(t, err)
		core.settings.OverlayOpacity = 1.5

		_, err = core.Generate(ctx, domain.ChartRequest{Seed: seedPtr(3), Options: domain.PieOptions{}})

		var genErr *GenerationError
		require.ErrorAs(t, err, &genErr)
		assert.Equal(t, StageNormalize, genErr.Stage)
		assert.ErrorIs(t, err, imgutil.ErrInvalidOpacity)
		assert.NoFileExists(t, filepath.Join(s.OutputDir, "pie_3.png"))
		assert.NoFileExists(t, filepath.Join(s.OutputDir, "pie_3.json"))
	})

	t.Run("メタデータの書き込みに失敗したら画像を残さない", func(t *testing.T) {
		s := testSettings(t)
		core, err := NewChartCore(newMockRenderer(), s)
		require.NoError(t, err)

		// サイドカーの位置を中身のあるディレクトリで塞ぐ
		blocker := filepath.Join(s.OutputDir, "bar_1.json")
		require.NoError(t, os.MkdirAll(filepath.Join(blocker, "keep"), 0o755))

		_, err = core.Generate(ctx, domain.ChartRequest{Seed: seedPtr(1), Options: domain.BarOptions{}})

		var genErr *GenerationError
		require.ErrorAs(t, err, &genErr)
		assert.Equal(t, StageMetadata, genErr.Stage)
		assert.NoFileExists(t, filepath.Join(s.OutputDir, "bar_1.png"))
		assert.DirExists(t, blocker)

		entries, err := os.ReadDir(s.OutputDir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("キャンセル済みのコンテキストでは何もしない", func(t *testing.T) {
		renderer := newMockRenderer()
		core, err := NewChartCore(renderer, testSettings(t))
		require.NoError(t, err)

		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err = core.Generate(cctx, domain.ChartRequest{Options: domain.BarOptions{}})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, renderer.specs)
	})
}
