package util

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("hello"))
	}))
	defer srv.Close()

	b, err := GetBytes(context.Background(), srv.URL+"/ok?key=secret", 0)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))

	_, err = GetBytes(context.Background(), srv.URL+"/missing?key=secret", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
	assert.NotContains(t, err.Error(), "secret")
}

func TestGetBytesConnectionErrorHidesQuery(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	_, err := GetBytes(context.Background(), addr+"/x?key=secret", 0)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "secret")
}

func TestGetBytesCapsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("a", 64)))
	}))
	defer srv.Close()

	old := MaxBodySize
	MaxBodySize = 16
	defer func() { MaxBodySize = old }()

	_, err := GetBytes(context.Background(), srv.URL, 0)
	assert.ErrorIs(t, err, ErrBodyTooLarge)

	MaxBodySize = 64
	b, err := GetBytes(context.Background(), srv.URL, 0)
	require.NoError(t, err)
	assert.Len(t, b, 64)
}

func TestEnsureParentDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a", "b", "decks.db")
	require.NoError(t, EnsureParentDir(file))
	info, err := os.Stat(filepath.Dir(file))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	assert.NoError(t, EnsureParentDir("decks.db"))
}
