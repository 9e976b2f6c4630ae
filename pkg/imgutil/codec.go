package imgutil

import (
	"bytes"
	"image"
	"io"

	"github.com/disintegration/imaging"
)

// DefaultJPEGQuality は品質が指定されていない場合の JPEG 品質です。
const DefaultJPEGQuality = 95

// DecodeBytes は画像データ (PNG, JPEG, GIF, TIFF, BMP) をデコードします。
func DecodeBytes(data []byte) (image.Image, error) {
	return imaging.Decode(bytes.NewReader(data))
}

// EncodeImage は img を format で w に書き出します。
// quality は JPEG の場合のみ使われ、0 以下なら DefaultJPEGQuality です。
func EncodeImage(w io.Writer, img image.Image, format imaging.Format, quality int) error {
	if quality <= 0 {
		quality = DefaultJPEGQuality
	}
	return imaging.Encode(w, img, format, imaging.JPEGQuality(quality))
}
