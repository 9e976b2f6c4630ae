package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"

	"github.com/shouni/go-remote-io/pkg/remoteio"
)

var errMockNotFound = errors.New("object not found")

// mockStore は GCS / S3 のバケットをメモリで再現するのだ
type mockStore struct {
	mu           sync.Mutex
	objects      map[string][]byte
	contentTypes map[string]string
	closed       int
}

func newMockStore() *mockStore {
	return &mockStore{objects: map[string][]byte{}, contentTypes: map[string]string{}}
}

func (m *mockStore) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[uri]
	if !ok {
		return nil, errMockNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *mockStore) List(ctx context.Context, uri string, fn func(string) error) error {
	return nil
}

func (m *mockStore) Write(ctx context.Context, uri string, r io.Reader, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[uri] = data
	m.contentTypes[uri] = contentType
	return nil
}

// mockFactory は mockStore を InputReader / OutputWriter として渡すのだ
type mockFactory struct {
	store *mockStore
}

func (f *mockFactory) Close() error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	f.store.closed++
	return nil
}

func (f *mockFactory) InputReader() (remoteio.InputReader, error) { return f.store, nil }

func (f *mockFactory) OutputWriter() (remoteio.OutputWriter, error) { return f.store, nil }

func (f *mockFactory) URLSigner() (remoteio.URLSigner, error) { return nil, nil }
