package imgutil

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidColor は rgba(...) 形式として解釈できない文字列に対して返されます。
var ErrInvalidColor = errors.New("invalid rgba color")

// RGBA は 0-255 のチャンネルと 0-1 のアルファを持つ色です。
type RGBA struct {
	R, G, B uint8
	A       float64
}

// ParseRGBA は "rgba(r,g,b,a)" または "rgb(r,g,b)" を解釈します。
func ParseRGBA(s string) (RGBA, error) {
	str := strings.ToLower(strings.TrimSpace(s))
	var body string
	var want int
	switch {
	case strings.HasPrefix(str, "rgba(") && strings.HasSuffix(str, ")"):
		body, want = str[len("rgba("):len(str)-1], 4
	case strings.HasPrefix(str, "rgb(") && strings.HasSuffix(str, ")"):
		body, want = str[len("rgb("):len(str)-1], 3
	default:
		return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	parts := strings.Split(body, ",")
	if len(parts) != want {
		return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || v < 0 || v > 255 {
			return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		ch[i] = uint8(v)
	}

	alpha := 1.0
	if want == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		alpha = a
	}
	return RGBA{R: ch[0], G: ch[1], B: ch[2], A: alpha}, nil
}

// String は "rgba(r,g,b,a)" 形式で返します。アルファは常に小数点付きです。
func (c RGBA) String() string {
	a := strconv.FormatFloat(c.A, 'f', -1, 64)
	if !strings.Contains(a, ".") {
		a += ".0"
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", c.R, c.G, c.B, a)
}

// NRGBA は A を 0-255 に丸めた color.NRGBA を返します。
func (c RGBA) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(c.A * 255))}
}

// WithOpacity はチャンネルを保ったまま不透明度 opacity を持つ色を返します。
// オーバーレイ色そのもののアルファは無視され、255*opacity の小数部は切り捨てます。
func (c RGBA) WithOpacity(opacity float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(255 * opacity)}
}
