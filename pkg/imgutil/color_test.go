package imgutil

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRGBA(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    RGBA
		wantErr bool
	}{
		{"rgba", "rgba(230,241,250,1.0)", RGBA{230, 241, 250, 1}, false},
		{"空白と大文字", " RGBA( 1, 2, 3, 0.5 ) ", RGBA{1, 2, 3, 0.5}, false},
		{"rgb", "rgb(10,20,30)", RGBA{10, 20, 30, 1}, false},
		{"範囲外のチャンネル", "rgba(256,0,0,1)", RGBA{}, true},
		{"範囲外のアルファ", "rgba(0,0,0,1.5)", RGBA{}, true},
		{"要素数の不一致", "rgba(0,0,0)", RGBA{}, true},
		{"16進数は不可", "#ffffff", RGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRGBA(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidColor)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRGBA_String(t *testing.T) {
	assert.Equal(t, "rgba(230,241,250,1.0)", RGBA{230, 241, 250, 1}.String())
	assert.Equal(t, "rgba(1,2,3,0.5)", RGBA{1, 2, 3, 0.5}.String())

	c, err := ParseRGBA(RGBA{220, 255, 230, 1}.String())
	require.NoError(t, err)
	assert.Equal(t, RGBA{220, 255, 230, 1}, c)
}

func TestRGBA_WithOpacity(t *testing.T) {
	c := RGBA{10, 20, 30, 1}
	assert.Equal(t, color.NRGBA{10, 20, 30, 38}, c.WithOpacity(0.15))
	assert.Equal(t, color.NRGBA{10, 20, 30, 255}, c.WithOpacity(1))
	// 255*0.5 = 127.5 は切り捨てる
	assert.Equal(t, color.NRGBA{10, 20, 30, 127}, c.WithOpacity(0.5))
	assert.Equal(t, color.NRGBA{10, 20, 30, 255}, c.NRGBA())
}
