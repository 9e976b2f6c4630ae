package imgutil

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"github.com/disintegration/imaging"
	"github.com/google/renameio/v2"
)

// DefaultOverlayOpacity は半透明オーバーレイの既定の不透明度です。
const DefaultOverlayOpacity = 0.15

var (
	// ErrInvalidSize は最小辺長が正でない場合に返されます。
	ErrInvalidSize = errors.New("size must be positive")
	// ErrInvalidOpacity は不透明度が 0-1 の範囲外の場合に返されます。
	ErrInvalidOpacity = errors.New("opacity must be between 0 and 1")
)

// NormalizeOptions は NormalizeFile の設定です。
type NormalizeOptions struct {
	// Size は出力する正方形の最小辺長です。
	Size int
	// Overlay が nil の場合、オーバーレイは合成しません。
	Overlay *RGBA
	// OverlayOpacity が nil の場合は DefaultOverlayOpacity を使います。
	OverlayOpacity *float64
	// Destination が空の場合は入力ファイルを上書きします。
	Destination string
	// JPEGQuality は出力先が JPEG の場合の品質です。0 は既定値です。
	JPEGQuality int
}

func (o NormalizeOptions) opacity() float64 {
	if o.OverlayOpacity == nil {
		return DefaultOverlayOpacity
	}
	return *o.OverlayOpacity
}

// CanvasSide は正方形キャンバスの辺長 max(size, w, h) を返します。
func CanvasSide(size, w, h int) int {
	return max(size, w, h)
}

// PasteOffset は辺長 side のキャンバス中央に w×h の画像を置く左上座標を返します。
func PasteOffset(side, w, h int) image.Point {
	return image.Pt((side-w)/2, (side-h)/2)
}

// Normalize は src を白い正方形キャンバスの中央に貼り付け、
// overlay が指定されていれば不透明度 opacity で全面に重ねます。
// 結果は常に不透明です。
func Normalize(src image.Image, size int, overlay *RGBA, opacity float64) (*image.NRGBA, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	if opacity < 0 || opacity > 1 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOpacity, opacity)
	}

	b := src.Bounds()
	side := CanvasSide(size, b.Dx(), b.Dy())

	canvas := imaging.New(side, side, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	// ソースのアルファをマスクとして貼り付け
	canvas = imaging.Overlay(canvas, src, PasteOffset(side, b.Dx(), b.Dy()), 1.0)

	if overlay != nil {
		layer := imaging.New(side, side, overlay.WithOpacity(opacity))
		canvas = imaging.Overlay(canvas, layer, image.Point{}, 1.0)
	}

	flatten(canvas)
	return canvas, nil
}

// NormalizeFile は path の画像を読み込んで Normalize し、書き出します。
// 出力は renameio で原子的に置き換えるため、失敗しても元のファイルは壊れません。
func NormalizeFile(path string, opts NormalizeOptions) error {
	src, err := imaging.Open(path)
	if err != nil {
		return fmt.Errorf("画像の読み込みに失敗しました (%s): %w", path, err)
	}

	out, err := Normalize(src, opts.Size, opts.Overlay, opts.opacity())
	if err != nil {
		return err
	}

	dst := opts.Destination
	if dst == "" {
		dst = path
	}
	if err := writeAtomic(dst, out, opts.JPEGQuality); err != nil {
		return err
	}

	slog.Debug("画像を正規化しました", "path", dst, "side", out.Bounds().Dx(), "overlay", opts.Overlay != nil)
	return nil
}

func writeAtomic(dst string, img image.Image, quality int) error {
	format, err := imaging.FormatFromFilename(dst)
	if err != nil {
		return fmt.Errorf("出力形式を判定できません (%s): %w", dst, err)
	}

	pending, err := renameio.NewPendingFile(dst, renameio.WithPermissions(0o644), renameio.WithExistingPermissions())
	if err != nil {
		return fmt.Errorf("一時ファイルの作成に失敗しました: %w", err)
	}
	defer pending.Cleanup()

	if err := EncodeImage(pending, img, format, quality); err != nil {
		return fmt.Errorf("画像のエンコードに失敗しました (%s): %w", dst, err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("画像の書き込みに失敗しました (%s): %w", dst, err)
	}
	return nil
}

// NormalizeBytes はエンコード済みの画像 data を Normalize し、
// dst の拡張子から判定した形式で再エンコードして返します。
// リモートの入出力など、ファイルを直接扱えない経路で使います。
func NormalizeBytes(data []byte, dst string, opts NormalizeOptions) ([]byte, error) {
	format, err := imaging.FormatFromFilename(dst)
	if err != nil {
		return nil, fmt.Errorf("出力形式を判定できません (%s): %w", dst, err)
	}

	src, err := DecodeBytes(data)
	if err != nil {
		return nil, err
	}

	out, err := Normalize(src, opts.Size, opts.Overlay, opts.opacity())
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := EncodeImage(&buf, out, format, opts.JPEGQuality); err != nil {
		return nil, fmt.Errorf("画像のエンコードに失敗しました (%s): %w", dst, err)
	}
	return buf.Bytes(), nil
}

// flatten はアルファチャンネルを破棄します。
func flatten(img *image.NRGBA) {
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
}
