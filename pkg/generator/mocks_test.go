package generator

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"sync"

	"github.com/shouni/chart-image-kit/pkg/domain"
)

// --- Mocks ---

// mockRenderer は固定寸法の PNG を書き出すテスト用レンダラーなのだ。
type mockRenderer struct {
	mu     sync.Mutex
	width  int
	height int
	err    error
	broken bool // true の場合は画像ではないバイト列を書くのだ
	specs  []domain.ChartSpec
}

func newMockRenderer() *mockRenderer {
	return &mockRenderer{width: 300, height: 200}
}

func (m *mockRenderer) Render(ctx context.Context, spec domain.ChartSpec, w io.Writer) error {
	m.mu.Lock()
	m.specs = append(m.specs, spec)
	m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	if m.broken {
		_, err := io.WriteString(w, "not a png")
		return err
	}
	return png.Encode(w, mockChartImage(m.width, m.height))
}

// lastSpec は最後に描画を依頼された定義を返すのだ。
func (m *mockRenderer) lastSpec() domain.ChartSpec {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.specs[len(m.specs)-1]
}

// mockChartImage は縞模様の入った不透明な画像を作るのだ。
func mockChartImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.RGBA{R: 255, G: 255, B: 255, A: 255}
			if (x/10)%2 == 0 {
				c = color.RGBA{R: 31, G: 119, B: 180, A: 255}
			}
			img.Set(x, y, c)
		}
	}
	return img
}

var errMockRender = errors.New("mock render failure")
