package adapters

import (
	"math"
	"sort"
)

// rect は描画領域上の矩形です。
type rect struct {
	X, Y, W, H float64
}

// squarify は values の大きさに比例する面積で bounds を分割します。
// 縦横比が1に近くなるよう大きい順に行を詰め、結果は values と同じ順で返します。
func squarify(values []float64, bounds rect) []rect {
	out := make([]rect, len(values))
	total := 0.0
	for _, v := range values {
		total += math.Max(v, 0)
	}
	if total == 0 || bounds.W <= 0 || bounds.H <= 0 {
		return out
	}

	order := make([]int, len(values))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return values[order[a]] > values[order[b]] })

	scale := bounds.W * bounds.H / total
	areas := make([]float64, len(values))
	for i, v := range values {
		areas[i] = math.Max(v, 0) * scale
	}

	free := bounds
	var row []int
	for k := 0; k < len(order); {
		idx := order[k]
		side := math.Min(free.W, free.H)
		if len(row) == 0 || worstRatio(areas, append(row, idx), side) <= worstRatio(areas, row, side) {
			row = append(row, idx)
			k++
			continue
		}
		free = layoutRow(areas, row, free, out)
		row = row[:0]
	}
	if len(row) > 0 {
		layoutRow(areas, row, free, out)
	}
	return out
}

// worstRatio は row を長さ side の辺に沿って並べたときの最悪の縦横比です。
func worstRatio(areas []float64, row []int, side float64) float64 {
	sum, lo, hi := 0.0, math.Inf(1), 0.0
	for _, i := range row {
		sum += areas[i]
		lo = math.Min(lo, areas[i])
		hi = math.Max(hi, areas[i])
	}
	if sum == 0 || lo == 0 {
		return math.Inf(1)
	}
	s2, w2 := sum*sum, side*side
	return math.Max(w2*hi/s2, s2/(w2*lo))
}

// layoutRow は row を free の短辺に沿って配置し、残りの領域を返します。
func layoutRow(areas []float64, row []int, free rect, out []rect) rect {
	sum := 0.0
	for _, i := range row {
		sum += areas[i]
	}
	if sum == 0 {
		for _, i := range row {
			out[i] = rect{X: free.X, Y: free.Y}
		}
		return free
	}

	if free.W >= free.H {
		// 左端に縦一列
		colW := sum / free.H
		y := free.Y
		for _, i := range row {
			h := areas[i] / colW
			out[i] = rect{X: free.X, Y: y, W: colW, H: h}
			y += h
		}
		return rect{X: free.X + colW, Y: free.Y, W: free.W - colW, H: free.H}
	}

	// 上端に横一行
	rowH := sum / free.W
	x := free.X
	for _, i := range row {
		w := areas[i] / rowH
		out[i] = rect{X: x, Y: free.Y, W: w, H: rowH}
		x += w
	}
	return rect{X: free.X, Y: free.Y + rowH, W: free.W, H: free.H - rowH}
}
