package adapters

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/shouni/chart-image-kit/pkg/domain"
)

var (
	// ErrUnsupportedMark は描画できない Mark が指定された場合に返されます。
	ErrUnsupportedMark = errors.New("unsupported mark")
	// ErrInvalidSpec は ChartSpec の内容が Mark の要求を満たさない場合に返されます。
	ErrInvalidSpec = errors.New("invalid chart spec")
)

type renderFunc func(spec domain.ChartSpec, w io.Writer) error

// ChartRenderer は ChartSpec を PNG として描画するアダプターです。
// Mark ごとに gonum/plot、go-chart、gg のいずれかのバックエンドへ振り分けます。
type ChartRenderer struct {
	handlers map[domain.Mark]renderFunc
}

// NewChartRenderer は全ての Mark を登録した ChartRenderer を返します。
func NewChartRenderer() *ChartRenderer {
	return &ChartRenderer{
		handlers: map[domain.Mark]renderFunc{
			// gonum/plot
			domain.MarkBar:        renderBar,
			domain.MarkStackedBar: renderStackedBar,
			domain.MarkHistogram:  renderHistogram,
			domain.MarkPoint:      renderScatter,
			domain.MarkCircle:     renderBubble,
			// go-chart
			domain.MarkArc:           renderPie,
			domain.MarkLine:          renderLine,
			domain.MarkArea:          renderArea,
			domain.MarkStackedArea:   renderStackedArea,
			domain.MarkNormalizedBar: renderNormalizedBar,
			// gg
			domain.MarkTreemap: renderTreemap,
			domain.MarkTileMap: renderTileMap,
		},
	}
}

// Marks は描画可能な Mark を名前順で返します。
func (r *ChartRenderer) Marks() []domain.Mark {
	marks := make([]domain.Mark, 0, len(r.handlers))
	for m := range r.handlers {
		marks = append(marks, m)
	}
	slices.Sort(marks)
	return marks
}

// Render は spec を描画して PNG を w に書き込みます。
func (r *ChartRenderer) Render(ctx context.Context, spec domain.ChartSpec, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return fmt.Errorf("%w: size must be positive, got %dx%d", ErrInvalidSpec, spec.Width, spec.Height)
	}

	h, ok := r.handlers[spec.Mark]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedMark, spec.Mark)
	}

	slog.DebugContext(ctx, "チャートを描画します", "mark", spec.Mark, "width", spec.Width, "height", spec.Height)
	if err := h(spec, w); err != nil {
		return fmt.Errorf("%s の描画に失敗しました: %w", spec.Mark, err)
	}
	return nil
}

func requireCategories(spec domain.ChartSpec) error {
	values := spec.Values()
	if len(spec.Categories) == 0 || len(values) != len(spec.Categories) {
		return fmt.Errorf("%w: %d categories for %d values", ErrInvalidSpec, len(spec.Categories), len(values))
	}
	return nil
}

func requireSeries(spec domain.ChartSpec, width int) error {
	if len(spec.Series) == 0 {
		return fmt.Errorf("%w: no series", ErrInvalidSpec)
	}
	for _, s := range spec.Series {
		if len(s.Values) != width {
			return fmt.Errorf("%w: series %q has %d values, want %d", ErrInvalidSpec, s.Name, len(s.Values), width)
		}
	}
	return nil
}
