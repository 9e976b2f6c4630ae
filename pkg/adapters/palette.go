package adapters

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/plot/palette/brewer"
)

// ColorBrewer にない配色。名前は生成側が選ぶ値と一致させています。
var hexPalettes = map[string][]string{
	"category10": {"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd", "#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf"},
	"tableau10":  {"#4c78a8", "#f58518", "#e45756", "#72b7b2", "#54a24b", "#eeca3b", "#b279a2", "#ff9da6", "#9d755d", "#bab0ac"},
	"pastel":     {"#66c5cc", "#f6cf71", "#f89c74", "#dcb0f2", "#87c55f", "#9eb9f3", "#fe88b1", "#c9db74", "#8be0a4", "#b497e7", "#d3b484", "#b3b3b3"},
}

// ColorBrewer の質的配色。いずれも最大 8 色です。
var brewerQualitative = map[string]string{
	"dark2":  "Dark2",
	"set2":   "Set2",
	"accent": "Accent",
}

const brewerQualitativeClasses = 8

var (
	palettes = loadPalettes()
	// 9 段階の Blues。連続値は隣り合う段の間を線形補間します。
	bluesStops = mustBrewer(brewer.TypeSequential, "Blues", 9)
)

func loadPalettes() map[string][]drawing.Color {
	out := make(map[string][]drawing.Color, len(hexPalettes)+len(brewerQualitative))
	for name, hexes := range hexPalettes {
		colors := make([]drawing.Color, len(hexes))
		for i, h := range hexes {
			colors[i] = drawing.ColorFromHex(strings.TrimPrefix(h, "#"))
		}
		out[name] = colors
	}
	for name, id := range brewerQualitative {
		out[name] = mustBrewer(brewer.TypeQualitative, id, brewerQualitativeClasses)
	}
	return out
}

// mustBrewer は組み込みの ColorBrewer パレットを読み込みます。
// 名前と色数は固定値なので、失敗はプログラムの誤りです。
func mustBrewer(typ brewer.PaletteType, name string, n int) []drawing.Color {
	p, err := brewer.GetPalette(typ, name, n)
	if err != nil {
		panic(fmt.Sprintf("adapters: %v", err))
	}
	colors := p.Colors()
	out := make([]drawing.Color, len(colors))
	for i, c := range colors {
		out[i] = toDrawing(c)
	}
	return out
}

func toDrawing(c color.Color) drawing.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return drawing.Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

// 名前付きの単色。
var namedColors = map[string]string{
	"red":    "#ff0000",
	"blue":   "#0000ff",
	"teal":   "#008080",
	"orange": "#ffa500",
	"black":  "#000000",
	"white":  "#ffffff",
}

// HasScheme は配色スキームが定義されているかを返します。
func HasScheme(name string) bool {
	_, ok := palettes[strings.ToLower(name)]
	return ok
}

// schemeColors は name の配色から n 色を返します。色数が足りない場合は循環します。
func schemeColors(name string, n int) ([]drawing.Color, error) {
	colors, ok := palettes[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: unknown color scheme %q", ErrInvalidSpec, name)
	}
	out := make([]drawing.Color, n)
	for i := range out {
		out[i] = colors[i%len(colors)]
	}
	return out, nil
}

// parseColor は名前付きの色、#rrggbb、rgb()/rgba() を解釈します。
func parseColor(s string) (drawing.Color, error) {
	str := strings.ToLower(strings.TrimSpace(s))
	if hex, ok := namedColors[str]; ok {
		str = hex
	}
	switch {
	case strings.HasPrefix(str, "#") && (len(str) == 7 || len(str) == 4):
		return drawing.ColorFromHex(str[1:]), nil
	case strings.HasPrefix(str, "rgb"):
		return drawing.ParseColor(str), nil
	}
	return drawing.Color{}, fmt.Errorf("%w: unknown color %q", ErrInvalidSpec, s)
}

// bluesAt は t (0-1) に対応する Blues スケールの色を返します。
func bluesAt(t float64) drawing.Color {
	t = min(max(t, 0), 1)
	pos := t * float64(len(bluesStops)-1)
	i := int(pos)
	if i >= len(bluesStops)-1 {
		return bluesStops[len(bluesStops)-1]
	}
	frac := pos - float64(i)
	lo, hi := bluesStops[i], bluesStops[i+1]
	lerp := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*frac + 0.5)
	}
	return drawing.Color{
		R: lerp(lo.R, hi.R),
		G: lerp(lo.G, hi.G),
		B: lerp(lo.B, hi.B),
		A: 255,
	}
}

// withAlpha は color.Color に不透明度 opacity (0-1) を適用した NRGBA を返します。
func withAlpha(c drawing.Color, opacity float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(255 * opacity)}
}
