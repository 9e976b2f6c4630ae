package imgutil

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/shouni/go-http-kit/pkg/httpkit"
)

var errMockNotFound = errors.New("object not found")

// mockReader はパスごとの内容をメモリから返すのだ
type mockReader struct {
	objects map[string][]byte
	opened  []string
}

func (m *mockReader) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	m.opened = append(m.opened, path)
	data, ok := m.objects[path]
	if !ok {
		return nil, errMockNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *mockReader) List(ctx context.Context, path string, fn func(string) error) error {
	return nil
}

// mockHTTPClient は FetchBytes だけを差し替えるのだ
type mockHTTPClient struct {
	httpkit.ClientInterface
	data    []byte
	err     error
	fetched []string
}

func (m *mockHTTPClient) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	m.fetched = append(m.fetched, url)
	return m.data, m.err
}
