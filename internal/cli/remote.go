package cli

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"time"

	"github.com/shouni/go-remote-io/pkg/gcsfactory"
	"github.com/shouni/go-remote-io/pkg/remoteio"
	"github.com/shouni/go-remote-io/pkg/s3factory"
)

const defaultHTTPTimeout = 30 * time.Second

// ioFactoryFunc は URI のスキームに対応するストレージのファクトリを生成します。
type ioFactoryFunc func(ctx context.Context, uri string) (remoteio.IOFactory, error)

// newIOFactory は gs:// なら GCS、s3:// なら S3 のファクトリを返します。
func newIOFactory(ctx context.Context, uri string) (remoteio.IOFactory, error) {
	switch {
	case remoteio.IsGCSURI(uri):
		return gcsfactory.New(ctx)
	case remoteio.IsS3URI(uri):
		return s3factory.New(ctx)
	default:
		return nil, fmt.Errorf("リモートURIではありません: %s", uri)
	}
}

func nopClose() error { return nil }

// inputReader は uri を読むための InputReader を返します。
// クラウドのクライアントはリモート URI の場合だけ生成します。
func (a *App) inputReader(ctx context.Context, uri string) (remoteio.InputReader, func() error, error) {
	if !remoteio.IsRemoteURI(uri) {
		return remoteio.NewUniversalInputReader(nil, nil), nopClose, nil
	}
	f, err := a.newIOFactory(ctx, uri)
	if err != nil {
		return nil, nil, err
	}
	r, err := f.InputReader()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return r, f.Close, nil
}

// outputWriter は uri へ書くための OutputWriter を返します。
func (a *App) outputWriter(ctx context.Context, uri string) (remoteio.OutputWriter, func() error, error) {
	if !remoteio.IsRemoteURI(uri) {
		return remoteio.NewUniversalIOWriter(nil, nil), nopClose, nil
	}
	f, err := a.newIOFactory(ctx, uri)
	if err != nil {
		return nil, nil, err
	}
	w, err := f.OutputWriter()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return w, f.Close, nil
}

// contentType は拡張子から MIME タイプを推定します。
func contentType(uri string) string {
	if ct := mime.TypeByExtension(path.Ext(uri)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// writeAll は r の内容を w 経由で uri に書き込みます。
func writeAll(ctx context.Context, w remoteio.OutputWriter, uri string, r io.Reader) error {
	if err := w.Write(ctx, uri, r, contentType(uri)); err != nil {
		return fmt.Errorf("画像の書き込みに失敗しました (%s): %w", uri, err)
	}
	return nil
}
