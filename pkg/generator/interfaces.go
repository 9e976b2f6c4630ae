package generator

import (
	"context"
	"io"

	"github.com/shouni/chart-image-kit/pkg/domain"
)

// ChartRenderer は ChartSpec を画像として描画するバックエンドです。
type ChartRenderer interface {
	// Render は spec を描画し、エンコード済みの画像を w に書き込みます。
	Render(ctx context.Context, spec domain.ChartSpec, w io.Writer) error
}

// ChartGenerator はビジネスロジック層が利用する統合窓口です。
type ChartGenerator interface {
	Generate(ctx context.Context, req domain.ChartRequest) (*domain.ChartResult, error)
}
