package imgutil

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// ImageSource はローカルパス、gs:// や s3:// の URI、http(s) の URL から
// エンコード済みの画像データを読み込みます。
type ImageSource struct {
	reader     remoteio.InputReader
	httpClient httpkit.ClientInterface
}

// NewImageSource は依存関係を注入して ImageSource を生成します。
func NewImageSource(reader remoteio.InputReader, httpClient httpkit.ClientInterface) (*ImageSource, error) {
	if reader == nil {
		return nil, fmt.Errorf("reader is required")
	}
	if httpClient == nil {
		return nil, fmt.Errorf("httpClient is required")
	}
	return &ImageSource{
		reader:     reader,
		httpClient: httpClient,
	}, nil
}

// IsHTTPURL は path が http(s) の URL かを判定します。
func IsHTTPURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// Fetch は path の内容をすべて読み込みます。
func (s *ImageSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	if IsHTTPURL(path) {
		data, err := s.httpClient.FetchBytes(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("画像の取得に失敗しました (%s): %w", path, err)
		}
		return data, nil
	}

	rc, err := s.reader.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("画像を開けませんでした (%s): %w", path, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("画像の読み込みに失敗しました (%s): %w", path, err)
	}
	return data, nil
}
