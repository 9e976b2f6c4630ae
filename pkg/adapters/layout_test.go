package adapters

import (
	"math"
	"testing"

	"github.com/shouni/chart-image-kit/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestSquarify(t *testing.T) {
	values := []float64{30, 10, 60, 20, 50, 30}
	bounds := rect{X: 0, Y: 24, W: 500, H: 476}
	cells := squarify(values, bounds)

	total := 0.0
	for _, v := range values {
		total += v
	}

	covered := 0.0
	for i, c := range cells {
		area := c.W * c.H
		covered += area
		// 面積は値に比例
		assert.InDelta(t, values[i]/total*bounds.W*bounds.H, area, 1e-6)
		// 領域内に収まる
		assert.GreaterOrEqual(t, c.X, bounds.X-1e-9)
		assert.GreaterOrEqual(t, c.Y, bounds.Y-1e-9)
		assert.LessOrEqual(t, c.X+c.W, bounds.X+bounds.W+1e-6)
		assert.LessOrEqual(t, c.Y+c.H, bounds.Y+bounds.H+1e-6)
	}
	assert.InDelta(t, bounds.W*bounds.H, covered, 1e-6)

	// 最大の値が最大の矩形になる
	largest := 0
	for i, c := range cells {
		if c.W*c.H > cells[largest].W*cells[largest].H {
			largest = i
		}
	}
	assert.Equal(t, 2, largest)
}

func TestSquarify_Degenerate(t *testing.T) {
	cells := squarify([]float64{0, 0}, rect{W: 10, H: 10})
	assert.Equal(t, []rect{{}, {}}, cells)

	cells = squarify([]float64{5}, rect{W: 10, H: 20})
	assert.Equal(t, []rect{{X: 0, Y: 0, W: 10, H: 20}}, cells)
	assert.False(t, math.IsNaN(cells[0].W))
}

func TestStateTiles(t *testing.T) {
	assert.Len(t, stateTiles, 50)

	seen := map[tile]string{}
	for _, st := range domain.USStates {
		pos, ok := stateTiles[st]
		if !assert.True(t, ok, "missing tile for %s", st) {
			continue
		}
		assert.True(t, pos.Row >= 0 && pos.Row < tileRows, st)
		assert.True(t, pos.Col >= 0 && pos.Col < tileCols, st)
		if other, dup := seen[pos]; dup {
			t.Errorf("%s and %s share tile %v", st, other, pos)
		}
		seen[pos] = st
	}
}
